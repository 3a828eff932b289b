package defs

import (
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

var _ definition.Definition = (*TypeDef)(nil)

// TypeDef is a primitive attribute type such as java://lang.String.
// Types are globally accessible and always valid.
type TypeDef struct {
	base
}

func NewTypeDef(d descriptor.Descriptor) *TypeDef {
	t := &TypeDef{base: newBase(d, definition.Access{
		Level:          definition.AccessGlobal,
		Authentication: definition.Unauthenticated,
	}, d.Key())}
	t.MarkValid()
	return t
}

func (t *TypeDef) ValidateDefinition() error { return nil }

// TypeDescriptor maps an attribute type name to its TYPE descriptor.
// Bare names live in "lang"; a trailing "[]" is ignored.
func TypeDescriptor(name string) (descriptor.Descriptor, error) {
	if n := len(name); n > 2 && name[n-2:] == "[]" {
		name = name[:n-2]
	}
	for i := 0; i < len(name); i++ {
		if name[i] == '.' || name[i] == ':' {
			return descriptor.Parse(name, descriptor.Type)
		}
	}
	return descriptor.Parse("lang."+name, descriptor.Type)
}
