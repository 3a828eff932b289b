// Package descriptor defines the identifiers the registry resolves.
//
// A Descriptor names one definition: a prefix (the language or qualifier),
// a namespace, a name and a DefType. Descriptors are comparable values and
// can be used directly as map keys; the zero Descriptor means "none".
//
// # Qualified names
//
// Markup descriptors separate namespace and name with a colon
// (markup://test:button); script, style and type descriptors use a dot
// (js://test.button, css://test.button, java://lang.String). Several
// definitions may share a qualified name, for example a controller and a
// renderer of the same bundle, so caches key on Key() which adds the type.
//
// # Bundles
//
// Descriptors with the same namespace and name form a bundle. A markup
// descriptor owns the bundle; BundleMembers lists the script and style
// descriptors that may accompany it.
//
// # Filters
//
// Filter matches descriptors by glob patterns over prefix, namespace and
// name, optionally restricted to a set of DefTypes. Matching is delegated to
// doublestar and is case-insensitive.
package descriptor
