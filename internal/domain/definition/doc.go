// Package definition holds the contract between the registry core and
// the artifacts it compiles.
//
// A Definition moves through a one-way lifecycle: parsed (invalid), then
// ValidateDefinition, ValidateReferences and finally MarkValid. The registry
// drives these phases; a definition must never be handed to a caller before
// IsValid reports true.
//
// The error taxonomy of the registry lives here too. Each kind is a typed
// error that also matches a sentinel through errors.Is:
//
//	var nf *definition.NotFoundError
//	if errors.As(err, &nf) { ... nf.Descriptor ... }
//	if errors.Is(err, definition.ErrNoAccess) { ... }
package definition
