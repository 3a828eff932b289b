package subregistry

import (
	"context"

	"github.com/zjrosen/defreg/internal/defs"
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/registry"
)

var _ registry.SubRegistry = (*TypeRegistry)(nil)

// DefaultTypes are the attribute types every registry knows.
var DefaultTypes = []string{
	"lang.String", "lang.Integer", "lang.Long", "lang.Double", "lang.Decimal",
	"lang.Boolean", "lang.Date", "lang.DateTime", "lang.Object",
	"lang.List", "lang.Map", "lang.Set",
	"aura.Component", "aura.Action",
}

// TypeRegistry serves a fixed set of java:// types.
type TypeRegistry struct {
	types      map[descriptor.Descriptor]*defs.TypeDef
	namespaces []string
}

// NewTypeRegistry registers each qualified type name; names that do not
// parse are skipped. With no names it uses DefaultTypes.
func NewTypeRegistry(names ...string) *TypeRegistry {
	if len(names) == 0 {
		names = DefaultTypes
	}
	r := &TypeRegistry{types: make(map[descriptor.Descriptor]*defs.TypeDef, len(names))}
	seen := map[string]bool{}
	for _, n := range names {
		d, err := descriptor.Parse(n, descriptor.Type)
		if err != nil {
			continue
		}
		r.types[d] = defs.NewTypeDef(d)
		if !seen[d.Namespace] {
			seen[d.Namespace] = true
			r.namespaces = append(r.namespaces, d.Namespace)
		}
	}
	return r
}

func (r *TypeRegistry) Name() string                   { return "types" }
func (r *TypeRegistry) HasFind() bool                  { return true }
func (r *TypeRegistry) Namespaces() []string           { return r.namespaces }
func (r *TypeRegistry) Prefixes() []string             { return []string{descriptor.JavaPrefix} }
func (r *TypeRegistry) DefTypes() []descriptor.DefType { return []descriptor.DefType{descriptor.Type} }
func (r *TypeRegistry) IsCacheable() bool              { return true }
func (r *TypeRegistry) IsStatic() bool                 { return true }

func (r *TypeRegistry) GetDef(_ context.Context, d descriptor.Descriptor) (definition.Definition, error) {
	if t, ok := r.types[d]; ok {
		return t, nil
	}
	return nil, definition.NewNotFound(d)
}

func (r *TypeRegistry) Exists(_ context.Context, d descriptor.Descriptor) bool {
	_, ok := r.types[d]
	return ok
}

func (r *TypeRegistry) Find(_ context.Context, f descriptor.Filter) ([]descriptor.Descriptor, error) {
	var out []descriptor.Descriptor
	for d := range r.types {
		if f.Matches(d) {
			out = append(out, d)
		}
	}
	descriptor.Sort(out)
	return out, nil
}
