package defs

import (
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// ParseOptions tune Parse.
type ParseOptions struct {
	// Members are the bundle files present next to a markup source.
	Members []descriptor.Descriptor
	// LintScripts turns on the object literal check for script sources.
	LintScripts bool
}

// Parse builds an unvalidated definition for d from its source text.
func Parse(d descriptor.Descriptor, content string, opts ParseOptions) (definition.Definition, error) {
	switch d.DefType {
	case descriptor.Application, descriptor.Component, descriptor.Interface, descriptor.Event:
		return ParseMarkup(d, content, opts.Members)
	case descriptor.Controller, descriptor.Helper, descriptor.Renderer, descriptor.Provider:
		return NewScriptDef(d, content, opts.LintScripts), nil
	case descriptor.Style:
		return NewStyleDef(d, content), nil
	case descriptor.Type:
		return NewTypeDef(d), nil
	default:
		return nil, definition.NewInvalid(d, "no parser for %s", d.DefType)
	}
}
