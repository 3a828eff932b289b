package descriptor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const wildcardChars = "*?[{"

// Filter selects descriptors by glob patterns and optional def types.
type Filter struct {
	prefix    string
	namespace string
	name      string
	types     []DefType
}

// ParseFilter reads "[prefix://]namespace:name" where each part may use
// glob wildcards. Parts match case-sensitively. Without a prefix the filter uses the default prefix shared
// by types, or "*" when they have none in common.
func ParseFilter(pattern string, types ...DefType) (Filter, error) {
	for _, t := range types {
		if !t.Valid() {
			return Filter{}, fmt.Errorf("%w: unknown def type %q", ErrInvalidDescriptor, t)
		}
	}

	rest := strings.TrimSpace(pattern)
	prefix := commonPrefix(types)
	if i := strings.Index(rest, prefixSeparator); i >= 0 {
		prefix, rest = rest[:i], rest[i+len(prefixSeparator):]
	}

	ns, name, ok := splitName(rest)
	if !ok || prefix == "" {
		return Filter{}, fmt.Errorf("%w: filter %q", ErrInvalidDescriptor, pattern)
	}
	for _, part := range []string{prefix, ns, name} {
		if !doublestar.ValidatePattern(part) {
			return Filter{}, fmt.Errorf("%w: bad pattern %q in filter %q", ErrInvalidDescriptor, part, pattern)
		}
	}

	sorted := append([]DefType(nil), types...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return Filter{
		prefix:    prefix,
		namespace: ns,
		name:      name,
		types:     dedupe(sorted),
	}, nil
}

// MustParseFilter is ParseFilter for literals known to be valid.
func MustParseFilter(pattern string, types ...DefType) Filter {
	f, err := ParseFilter(pattern, types...)
	if err != nil {
		panic(err)
	}
	return f
}

func commonPrefix(types []DefType) string {
	if len(types) == 0 {
		return "*"
	}
	p := types[0].DefaultPrefix()
	for _, t := range types[1:] {
		if t.DefaultPrefix() != p {
			return "*"
		}
	}
	return p
}

func dedupe(types []DefType) []DefType {
	out := types[:0]
	for i, t := range types {
		if i == 0 || t != types[i-1] {
			out = append(out, t)
		}
	}
	return out
}

func hasWildcard(s string) bool {
	return strings.ContainsAny(s, wildcardChars)
}

// match is case-sensitive, like descriptor equality, so a constant filter
// selects exactly what Descriptor returns.
func match(pattern, value string) bool {
	ok, err := doublestar.Match(pattern, value)
	return err == nil && ok
}

// Prefix returns the prefix pattern.
func (f Filter) Prefix() string { return f.prefix }

// Namespace returns the namespace pattern.
func (f Filter) Namespace() string { return f.namespace }

// Name returns the name pattern.
func (f Filter) Name() string { return f.name }

// Types returns the def types the filter is restricted to; nil means any.
func (f Filter) Types() []DefType {
	return append([]DefType(nil), f.types...)
}

// IsConstant reports whether the filter names exactly one descriptor.
func (f Filter) IsConstant() bool {
	return len(f.types) == 1 && !hasWildcard(f.prefix) && !hasWildcard(f.namespace) && !hasWildcard(f.name)
}

// Descriptor returns the single descriptor of a constant filter.
func (f Filter) Descriptor() (Descriptor, bool) {
	if !f.IsConstant() {
		return Descriptor{}, false
	}
	return Descriptor{Prefix: f.prefix, Namespace: f.namespace, Name: f.name, DefType: f.types[0]}, true
}

// NamespaceWildcard reports whether the namespace part is a pattern.
func (f Filter) NamespaceWildcard() bool {
	return hasWildcard(f.namespace)
}

// PrefixWildcard reports whether the prefix part is a pattern.
func (f Filter) PrefixWildcard() bool {
	return hasWildcard(f.prefix)
}

// MatchesType reports whether t is allowed by the filter.
func (f Filter) MatchesType(t DefType) bool {
	if len(f.types) == 0 {
		return true
	}
	for _, ft := range f.types {
		if ft == t {
			return true
		}
	}
	return false
}

// Matches reports whether d is selected by the filter.
func (f Filter) Matches(d Descriptor) bool {
	return f.MatchesType(d.DefType) &&
		match(f.prefix, d.Prefix) &&
		match(f.namespace, d.Namespace) &&
		match(f.name, d.Name)
}

// MayMatch reports whether a provider serving the given prefixes,
// namespaces and types could hold a match. A "*" entry means any value.
func (f Filter) MayMatch(prefixes, namespaces []string, types []DefType) bool {
	if !anyMatch(f.prefix, prefixes) || !anyMatch(f.namespace, namespaces) {
		return false
	}
	if len(f.types) == 0 {
		return len(types) > 0
	}
	for _, t := range types {
		if f.MatchesType(t) {
			return true
		}
	}
	return false
}

func anyMatch(pattern string, values []string) bool {
	for _, v := range values {
		if v == "*" || match(pattern, v) {
			return true
		}
	}
	return false
}

// String is the canonical prefix://namespace:name form.
func (f Filter) String() string {
	return f.prefix + prefixSeparator + f.namespace + ":" + f.name
}

// Key is the filtered-search cache key: String() plus the type restriction.
func (f Filter) Key() string {
	if len(f.types) == 0 {
		return f.String() + "|*"
	}
	parts := make([]string, len(f.types))
	for i, t := range f.types {
		parts[i] = string(t)
	}
	return f.String() + "|" + strings.Join(parts, ",")
}
