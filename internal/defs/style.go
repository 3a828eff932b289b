package defs

import (
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

var _ definition.Definition = (*StyleDef)(nil)

// StyleDef is the stylesheet of a bundle.
type StyleDef struct {
	base
	Source string
}

func NewStyleDef(d descriptor.Descriptor, content string) *StyleDef {
	return &StyleDef{base: newBase(d, definition.DefaultAccess(), content), Source: content}
}

func (s *StyleDef) ValidateDefinition() error {
	if msg := balanced(s.Source, "{", "}"); msg != "" {
		return definition.NewInvalid(s.desc, "CSS Parser Error: %s", msg)
	}
	return nil
}
