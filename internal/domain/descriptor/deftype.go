package descriptor

import (
	"fmt"
	"strings"
)

// DefType is the kind of definition a descriptor names.
type DefType string

const (
	Application DefType = "APPLICATION"
	Component   DefType = "COMPONENT"
	Interface   DefType = "INTERFACE"
	Event       DefType = "EVENT"
	Controller  DefType = "CONTROLLER"
	Helper      DefType = "HELPER"
	Renderer    DefType = "RENDERER"
	Provider    DefType = "PROVIDER"
	Style       DefType = "STYLE"
	Type        DefType = "TYPE"
)

// Prefixes.
const (
	MarkupPrefix = "markup"
	JSPrefix     = "js"
	CSSPrefix    = "css"
	JavaPrefix   = "java"
)

// AllDefTypes lists every known DefType in declaration order.
var AllDefTypes = []DefType{
	Application, Component, Interface, Event,
	Controller, Helper, Renderer, Provider,
	Style, Type,
}

// MarkupDefTypes are the types whose source is markup.
var MarkupDefTypes = []DefType{Application, Component, Interface, Event}

// ScriptDefTypes are the bundle members written in JavaScript.
var ScriptDefTypes = []DefType{Controller, Helper, Renderer, Provider}

// ParseDefType maps a case-insensitive name to a DefType.
func ParseDefType(s string) (DefType, error) {
	t := DefType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown def type %q", ErrInvalidDescriptor, s)
	}
	return t, nil
}

// Valid reports whether t is a known DefType.
func (t DefType) Valid() bool {
	for _, known := range AllDefTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultPrefix returns the prefix used when a descriptor omits one.
func (t DefType) DefaultPrefix() string {
	switch t {
	case Controller, Helper, Renderer, Provider:
		return JSPrefix
	case Style:
		return CSSPrefix
	case Type:
		return JavaPrefix
	default:
		return MarkupPrefix
	}
}

// IsMarkup reports whether t is defined in markup.
func (t DefType) IsMarkup() bool {
	return t.DefaultPrefix() == MarkupPrefix
}

func (t DefType) String() string {
	return string(t)
}

// separator returns the namespace/name separator for a prefix.
func separator(prefix string) string {
	if prefix == MarkupPrefix {
		return ":"
	}
	return "."
}
