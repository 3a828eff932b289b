// Package subregistry holds the registry's definition providers: parsed
// sources from any loader and the static primitive types.
package subregistry

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/defreg/internal/defs"
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/registry"
	"github.com/zjrosen/defreg/internal/source"
)

var _ registry.SubRegistry = (*SourceRegistry)(nil)

// SourceRegistry parses definitions out of a source loader. Internal loaders
// are cacheable and static and get script linting; custom ones are neither.
type SourceRegistry struct {
	loader source.Loader
}

func NewSourceRegistry(loader source.Loader) *SourceRegistry {
	return &SourceRegistry{loader: loader}
}

// Loader returns the backing loader.
func (r *SourceRegistry) Loader() source.Loader { return r.loader }

func (r *SourceRegistry) Name() string                   { return r.loader.Name() }
func (r *SourceRegistry) HasFind() bool                  { return true }
func (r *SourceRegistry) Namespaces() []string           { return r.loader.Namespaces() }
func (r *SourceRegistry) Prefixes() []string             { return r.loader.Prefixes() }
func (r *SourceRegistry) DefTypes() []descriptor.DefType { return r.loader.DefTypes() }
func (r *SourceRegistry) IsCacheable() bool              { return r.internal() }
func (r *SourceRegistry) IsStatic() bool                 { return r.internal() }

func (r *SourceRegistry) internal() bool {
	return r.loader.Access() == source.Internal
}

// GetDef parses d's source. A markup definition records the bundle members
// present in the loader at this moment.
func (r *SourceRegistry) GetDef(ctx context.Context, d descriptor.Descriptor) (definition.Definition, error) {
	src, err := r.loader.Get(ctx, d)
	if errors.Is(err, source.ErrNotFound) {
		return nil, definition.NewNotFound(d)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s from %s: %w", d, r.loader.Name(), err)
	}

	var members []descriptor.Descriptor
	for _, m := range d.BundleMembers() {
		if r.loader.Exists(ctx, m) {
			members = append(members, m)
		}
	}

	def, err := defs.Parse(d, src.Content, defs.ParseOptions{
		Members:     members,
		LintScripts: r.internal(),
	})
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatRegistry, "parsed", "descriptor", d, "loader", r.loader.Name(), "members", len(members))
	return def, nil
}

func (r *SourceRegistry) Exists(ctx context.Context, d descriptor.Descriptor) bool {
	return r.loader.Exists(ctx, d)
}

func (r *SourceRegistry) Find(ctx context.Context, f descriptor.Filter) ([]descriptor.Descriptor, error) {
	found, err := r.loader.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find %s in %s: %w", f, r.loader.Name(), err)
	}
	return found, nil
}
