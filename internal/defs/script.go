package defs

import (
	"regexp"
	"strings"

	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// emptyValue catches "key: }" and "key: ," in an object literal.
var emptyValue = regexp.MustCompile(`:\s*[},]`)

var _ definition.Definition = (*ScriptDef)(nil)

// ScriptDef is a controller, helper, renderer or provider of a bundle.
type ScriptDef struct {
	base
	Source string
	// lint is set for sources from validating loaders.
	lint bool
}

// NewScriptDef builds an unvalidated script definition. With lint set,
// ValidateDefinition checks the object literal.
func NewScriptDef(d descriptor.Descriptor, content string, lint bool) *ScriptDef {
	return &ScriptDef{
		base:   newBase(d, definition.DefaultAccess(), content),
		Source: content,
		lint:   lint,
	}
}

func (s *ScriptDef) ValidateDefinition() error {
	if !s.lint {
		return nil
	}
	if err := lintScript(s.Source); err != "" {
		return definition.NewInvalid(s.desc, "JS Processing Error: %s (%s)", s.desc.Bundle(descriptor.Component).QualifiedName(), err)
	}
	return nil
}

// lintScript returns a description of the first problem, or "".
func lintScript(src string) string {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return ""
	}
	if msg := balanced(trimmed, "({[", ")}]"); msg != "" {
		return msg
	}
	if emptyValue.MatchString(trimmed) {
		return "property without value"
	}
	return ""
}

// balanced checks open/close pairs outside string literals.
func balanced(src, opens, closes string) string {
	var (
		stack []byte
		quote byte
	)
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch {
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case strings.IndexByte(opens, c) >= 0:
			stack = append(stack, c)
		case strings.IndexByte(closes, c) >= 0:
			want := opens[strings.IndexByte(closes, c)]
			if len(stack) == 0 || stack[len(stack)-1] != want {
				return "unexpected " + string(c)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if quote != 0 {
		return "unterminated string"
	}
	if len(stack) > 0 {
		return "unclosed " + string(stack[len(stack)-1])
	}
	return ""
}
