package definition

import (
	"context"

	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// Definition is a compiled artifact for one descriptor.
type Definition interface {
	Descriptor() descriptor.Descriptor
	Access() Access
	// OwnHash digests this definition's own content, not its dependencies.
	OwnHash() string

	IsValid() bool
	// MarkValid flips the validity flag. It is never reset.
	MarkValid()
	// ValidateDefinition checks the definition in isolation.
	ValidateDefinition() error
	// ValidateReferences checks references against the rest of the resolved set.
	ValidateReferences(rc ReferenceContext) error

	// AppendDependencies adds direct dependencies to deps.
	AppendDependencies(deps descriptor.Set)
	// AppendSupers adds supertype descriptors to supers.
	AppendSupers(supers descriptor.Set) error
}

// ReferenceContext is what reference validation may consult. Lookups see
// every definition of the resolution in progress.
type ReferenceContext interface {
	GetDef(ctx context.Context, d descriptor.Descriptor) (Definition, error)
	AssertAccess(ctx context.Context, referencing descriptor.Descriptor, def Definition) error
	Context() context.Context
}

// ClientLibrary is an external script or stylesheet a definition needs on the client.
type ClientLibrary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// LibraryProvider is implemented by definitions that declare client libraries.
type LibraryProvider interface {
	ClientLibraries() []ClientLibrary
}
