// Package testutil builds definition sources for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/source"
)

// Source is one generated definition source.
type Source struct {
	Descriptor descriptor.Descriptor
	Content    string
}

// Builder accumulates definition sources and writes them out.
type Builder struct {
	t       *testing.T
	sources []Source
}

// NewBuilder creates an empty builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

func (b *Builder) withMarkup(ns, name string, typ descriptor.DefType, opts []MarkupOption) *Builder {
	b.t.Helper()
	var m markupData
	for _, opt := range opts {
		opt(&m)
	}
	content := ""
	if !isEmpty(m) {
		out, err := yaml.Marshal(m)
		require.NoError(b.t, err)
		content = string(out)
	}
	return b.WithSource(descriptor.New(ns, name, typ), content)
}

// isEmpty reports a document with no fields set.
func isEmpty(m markupData) bool {
	return m.Description == "" && m.Access == "" && m.Authentication == "" && m.Extends == "" &&
		!m.Extensible && !m.Abstract && len(m.Implements) == 0 && len(m.Attributes) == 0 &&
		len(m.Events) == 0 && len(m.Components) == 0 && len(m.Dependencies) == 0 && len(m.Libraries) == 0
}

// WithComponent adds a component bundle's markup.
func (b *Builder) WithComponent(ns, name string, opts ...MarkupOption) *Builder {
	return b.withMarkup(ns, name, descriptor.Component, opts)
}

// WithApplication adds an application bundle's markup.
func (b *Builder) WithApplication(ns, name string, opts ...MarkupOption) *Builder {
	return b.withMarkup(ns, name, descriptor.Application, opts)
}

// WithInterface adds an interface.
func (b *Builder) WithInterface(ns, name string, opts ...MarkupOption) *Builder {
	return b.withMarkup(ns, name, descriptor.Interface, opts)
}

// WithEvent adds an event.
func (b *Builder) WithEvent(ns, name string, opts ...MarkupOption) *Builder {
	return b.withMarkup(ns, name, descriptor.Event, opts)
}

// WithController adds a controller to the ns:name bundle.
func (b *Builder) WithController(ns, name, content string) *Builder {
	return b.WithSource(descriptor.New(ns, name, descriptor.Controller), content)
}

// WithHelper adds a helper to the ns:name bundle.
func (b *Builder) WithHelper(ns, name, content string) *Builder {
	return b.WithSource(descriptor.New(ns, name, descriptor.Helper), content)
}

// WithStyle adds a stylesheet to the ns:name bundle.
func (b *Builder) WithStyle(ns, name, content string) *Builder {
	return b.WithSource(descriptor.New(ns, name, descriptor.Style), content)
}

// WithSource adds raw content for d.
func (b *Builder) WithSource(d descriptor.Descriptor, content string) *Builder {
	b.sources = append(b.sources, Source{Descriptor: d, Content: content})
	return b
}

// Sources returns everything added so far, in insertion order.
func (b *Builder) Sources() []Source {
	return append([]Source(nil), b.sources...)
}

// Build writes the sources as a bundle tree under a fresh temp directory
// and returns its root.
func (b *Builder) Build() string {
	b.t.Helper()
	root := b.t.TempDir()
	b.BuildIn(root)
	return root
}

// BuildIn writes the sources as <root>/<ns>/<name>/<file>.
func (b *Builder) BuildIn(root string) {
	b.t.Helper()
	for _, s := range b.sources {
		rel, ok := source.PathFor(s.Descriptor)
		require.True(b.t, ok, "no bundle path for %s", s.Descriptor)
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(b.t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(b.t, os.WriteFile(p, []byte(s.Content), 0o600))
	}
}

// LoadInto puts every source into a string loader.
func (b *Builder) LoadInto(l *source.StringLoader) {
	for _, s := range b.sources {
		l.Put(s.Descriptor, s.Content)
	}
}
