package defs

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// Built-in supertypes.
var (
	RootComponent = descriptor.New("aura", "rootComponent", descriptor.Component)
	BaseComponent = descriptor.New("aura", "component", descriptor.Component)
	BaseApp       = descriptor.New("aura", "application", descriptor.Application)
)

// markupKeys are the top-level keys a markup document may use.
var markupKeys = map[string]bool{
	"description":    true,
	"access":         true,
	"authentication": true,
	"extends":        true,
	"extensible":     true,
	"abstract":       true,
	"implements":     true,
	"attributes":     true,
	"events":         true,
	"components":     true,
	"dependencies":   true,
	"libraries":      true,
}

// markupDoc is the YAML shape of a markup source.
type markupDoc struct {
	Description    string          `yaml:"description"`
	Access         string          `yaml:"access"`
	Authentication string          `yaml:"authentication"`
	Extends        string          `yaml:"extends"`
	Extensible     bool            `yaml:"extensible"`
	Abstract       bool            `yaml:"abstract"`
	Implements     []string        `yaml:"implements"`
	Attributes     []attributeDoc  `yaml:"attributes"`
	Events         []eventDoc      `yaml:"events"`
	Components     []string        `yaml:"components"`
	Dependencies   []dependencyDoc `yaml:"dependencies"`
	Libraries      []libraryDoc    `yaml:"libraries"`
}

type attributeDoc struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
	Default  string `yaml:"default"`
}

type eventDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type dependencyDoc struct {
	Resource string `yaml:"resource"`
	Type     string `yaml:"type"`
}

type libraryDoc struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Type string `yaml:"type"`
}

// Attribute is a declared attribute of a markup definition.
type Attribute struct {
	Name     string
	Type     descriptor.Descriptor
	Required bool
	Default  string
}

// RegisteredEvent is an event a markup definition may fire.
type RegisteredEvent struct {
	Name string
	Type descriptor.Descriptor
}

var (
	_ definition.Definition      = (*MarkupDef)(nil)
	_ definition.LibraryProvider = (*MarkupDef)(nil)
)

// MarkupDef is an application, component, interface or event.
type MarkupDef struct {
	base

	Description  string
	Extends      descriptor.Descriptor
	Extensible   bool
	Abstract     bool
	Implements   []descriptor.Descriptor
	Attributes   []Attribute
	Events       []RegisteredEvent
	Components   []descriptor.Descriptor
	Dependencies []descriptor.Descriptor
	Libraries    []definition.ClientLibrary
	// Members are the script and style files of the bundle that existed at parse time.
	Members []descriptor.Descriptor

	// problems are structural issues found while parsing, reported by ValidateDefinition.
	problems []string
}

// ParseMarkup parses a YAML markup source. Malformed YAML fails here;
// every other problem is reported by ValidateDefinition.
func ParseMarkup(d descriptor.Descriptor, content string, members []descriptor.Descriptor) (*MarkupDef, error) {
	if !d.DefType.IsMarkup() {
		return nil, definition.NewInvalid(d, "not a markup descriptor")
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		return nil, definition.WrapInvalid(d, err, "Malformed markup")
	}

	m := &MarkupDef{Members: append([]descriptor.Descriptor(nil), members...)}
	var doc markupDoc
	if len(root.Content) > 0 {
		body := root.Content[0]
		if body.Kind != yaml.MappingNode {
			return nil, definition.NewInvalid(d, "Malformed markup: expected a mapping")
		}
		for i := 0; i+1 < len(body.Content); i += 2 {
			if key := body.Content[i].Value; !markupKeys[key] {
				m.problems = append(m.problems, fmt.Sprintf("Invalid attribute %q", key))
			}
		}
		if err := body.Decode(&doc); err != nil {
			return nil, definition.WrapInvalid(d, err, "Malformed markup")
		}
	}

	access, err := definition.ParseAccess(doc.Access, doc.Authentication)
	if err != nil {
		m.problems = append(m.problems, err.Error())
		access = definition.DefaultAccess()
	}
	m.base = newBase(d, access, content)
	m.Description = doc.Description
	m.Extensible = doc.Extensible
	m.Abstract = doc.Abstract

	if doc.Extends != "" {
		m.Extends = m.ref(doc.Extends, d.DefType, "extends")
	} else {
		m.Extends = implicitSuper(d)
	}
	for _, s := range doc.Implements {
		m.Implements = appendRef(m.Implements, m.ref(s, descriptor.Interface, "implements"))
	}
	for _, s := range doc.Components {
		m.Components = appendRef(m.Components, m.ref(s, descriptor.Component, "components"))
	}
	for _, a := range doc.Attributes {
		attr := Attribute{Name: a.Name, Required: a.Required, Default: a.Default}
		typeName := a.Type
		if typeName == "" {
			typeName = "String"
		}
		if td, err := TypeDescriptor(typeName); err != nil {
			m.problems = append(m.problems, fmt.Sprintf("Invalid attribute type %q on %q", typeName, a.Name))
		} else {
			attr.Type = td
		}
		m.Attributes = append(m.Attributes, attr)
	}
	for _, e := range doc.Events {
		ev := RegisteredEvent{Name: e.Name}
		if e.Type != "" {
			ev.Type = m.ref(e.Type, descriptor.Event, "events")
		}
		m.Events = append(m.Events, ev)
	}
	for _, dep := range doc.Dependencies {
		t := descriptor.Component
		if dep.Type != "" {
			if t, err = descriptor.ParseDefType(dep.Type); err != nil {
				m.problems = append(m.problems, fmt.Sprintf("Invalid dependency type %q", dep.Type))
				continue
			}
		}
		m.Dependencies = appendRef(m.Dependencies, m.ref(dep.Resource, t, "dependencies"))
	}
	for _, lib := range doc.Libraries {
		libType := strings.ToUpper(lib.Type)
		if libType == "" {
			libType = "JS"
		}
		m.Libraries = append(m.Libraries, definition.ClientLibrary{Name: lib.Name, URL: lib.URL, Type: libType})
	}

	return m, nil
}

// implicitSuper is the base type a markup definition extends when it names none.
func implicitSuper(d descriptor.Descriptor) descriptor.Descriptor {
	switch {
	case d.DefType == descriptor.Component && d != RootComponent && d != BaseComponent:
		return BaseComponent
	case d.DefType == descriptor.Application && d != BaseApp:
		return BaseApp
	default:
		return descriptor.Descriptor{}
	}
}

// ref parses a reference. "TYPE@qualified" names the type explicitly.
func (m *MarkupDef) ref(s string, t descriptor.DefType, field string) descriptor.Descriptor {
	var (
		d   descriptor.Descriptor
		err error
	)
	if strings.Contains(s, "@") {
		d, err = descriptor.ParseKey(s)
	} else {
		d, err = descriptor.Parse(s, t)
	}
	if err != nil {
		m.problems = append(m.problems, fmt.Sprintf("Invalid %s reference %q", field, s))
		return descriptor.Descriptor{}
	}
	return d
}

func appendRef(refs []descriptor.Descriptor, d descriptor.Descriptor) []descriptor.Descriptor {
	if d.IsZero() {
		return refs
	}
	return append(refs, d)
}

func (m *MarkupDef) ValidateDefinition() error {
	if len(m.problems) > 0 {
		return definition.NewInvalid(m.desc, "%s", m.problems[0])
	}

	seen := make(map[string]bool, len(m.Attributes))
	for _, a := range m.Attributes {
		if a.Name == "" {
			return definition.NewInvalid(m.desc, "Attribute name is required")
		}
		key := strings.ToLower(a.Name)
		if seen[key] {
			return definition.NewInvalid(m.desc, "Duplicate attribute %q", a.Name)
		}
		seen[key] = true
	}
	for _, e := range m.Events {
		if e.Name == "" {
			return definition.NewInvalid(m.desc, "Registered event name is required")
		}
		if e.Type.IsZero() {
			return definition.NewInvalid(m.desc, "Registered event %q has no type", e.Name)
		}
	}
	for _, lib := range m.Libraries {
		if lib.Name == "" && lib.URL == "" {
			return definition.NewInvalid(m.desc, "Client library needs a name or url")
		}
	}
	if m.desc.DefType == descriptor.Interface && len(m.Components) > 0 {
		return definition.NewInvalid(m.desc, "Interfaces cannot contain components")
	}
	if m.Extends == m.desc {
		return definition.NewInvalid(m.desc, "%s cannot extend itself", m.desc)
	}
	return nil
}

// AppendSupers adds the extended and implemented descriptors.
func (m *MarkupDef) AppendSupers(supers descriptor.Set) error {
	supers.Add(m.Extends)
	for _, d := range m.Implements {
		supers.Add(d)
	}
	return nil
}

// AppendDependencies adds inner components, explicit dependencies, event and
// attribute types and the bundle members.
func (m *MarkupDef) AppendDependencies(deps descriptor.Set) {
	for _, d := range m.Components {
		deps.Add(d)
	}
	for _, d := range m.Dependencies {
		deps.Add(d)
	}
	for _, e := range m.Events {
		deps.Add(e.Type)
	}
	for _, a := range m.Attributes {
		deps.Add(a.Type)
	}
	for _, d := range m.Members {
		deps.Add(d)
	}
}

// ValidateReferences checks that every referenced definition exists and is
// accessible, that supertypes are extensible and that inner components are concrete.
func (m *MarkupDef) ValidateReferences(rc definition.ReferenceContext) error {
	ctx := rc.Context()

	if !m.Extends.IsZero() {
		super, err := m.resolve(rc, m.Extends)
		if err != nil {
			return err
		}
		if sm, ok := super.(*MarkupDef); ok && !sm.Extensible {
			return definition.NewInvalid(m.desc, "%s cannot extend non-extensible %s", m.desc, m.Extends)
		}
	}
	for _, d := range m.Implements {
		if _, err := m.resolve(rc, d); err != nil {
			return err
		}
	}
	for _, d := range m.Components {
		inner, err := m.resolve(rc, d)
		if err != nil {
			return err
		}
		if im, ok := inner.(*MarkupDef); ok && im.Abstract {
			return definition.NewInvalid(m.desc, "Cannot instantiate abstract component %s", d)
		}
	}
	for _, e := range m.Events {
		if _, err := m.resolve(rc, e.Type); err != nil {
			return err
		}
	}
	for _, d := range m.Dependencies {
		if _, err := rc.GetDef(ctx, d); err != nil {
			return m.referrerOf(err)
		}
	}
	for _, a := range m.Attributes {
		if _, err := rc.GetDef(ctx, a.Type); err != nil {
			return m.referrerOf(err)
		}
	}
	return nil
}

// resolve fetches a referenced definition and checks access to it.
func (m *MarkupDef) resolve(rc definition.ReferenceContext, d descriptor.Descriptor) (definition.Definition, error) {
	ctx := rc.Context()
	def, err := rc.GetDef(ctx, d)
	if err != nil {
		return nil, m.referrerOf(err)
	}
	if err := rc.AssertAccess(ctx, m.desc, def); err != nil {
		return nil, err
	}
	return def, nil
}

// referrerOf names m as the referrer of a not-found error.
func (m *MarkupDef) referrerOf(err error) error {
	var nf *definition.NotFoundError
	if errors.As(err, &nf) && nf.Referrer.IsZero() {
		return &definition.NotFoundError{Descriptor: nf.Descriptor, Referrer: m.desc}
	}
	return err
}

// ClientLibraries returns the declared client libraries.
func (m *MarkupDef) ClientLibraries() []definition.ClientLibrary {
	return m.Libraries
}
