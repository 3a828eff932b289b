package registry

import (
	"context"

	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// SubRegistry provides definitions for the namespaces, prefixes and types it declares.
type SubRegistry interface {
	Name() string

	// GetDef returns an unvalidated definition, or a NotFoundError.
	GetDef(ctx context.Context, d descriptor.Descriptor) (definition.Definition, error)
	Exists(ctx context.Context, d descriptor.Descriptor) bool
	Find(ctx context.Context, f descriptor.Filter) ([]descriptor.Descriptor, error)
	HasFind() bool

	// Namespaces, Prefixes and DefTypes may contain "*" to mean any.
	Namespaces() []string
	Prefixes() []string
	DefTypes() []descriptor.DefType

	// IsCacheable reports whether definitions may enter the shared caches.
	IsCacheable() bool
	// IsStatic reports whether the set of descriptors never changes at runtime.
	IsStatic() bool
}

// covers reports whether sr is responsible for d.
func covers(sr SubRegistry, d descriptor.Descriptor) bool {
	return contains(sr.Prefixes(), d.Prefix) && contains(sr.Namespaces(), d.Namespace) && hasType(sr.DefTypes(), d.DefType)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == "*" || s == v {
			return true
		}
	}
	return false
}

func hasType(types []descriptor.DefType, t descriptor.DefType) bool {
	for _, dt := range types {
		if dt == t {
			return true
		}
	}
	return false
}
