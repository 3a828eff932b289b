package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// Context is the state of one logical request: its id, its authentication
// state and the definitions local to it.
type Context struct {
	id            string
	authenticated bool

	mu      sync.RWMutex
	local   map[descriptor.Descriptor]definition.Definition
	dynamic descriptor.Set
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// Unauthenticated marks the request as anonymous.
func Unauthenticated() ContextOption {
	return func(c *Context) { c.authenticated = false }
}

// WithRequestID overrides the generated request id.
func WithRequestID(id string) ContextOption {
	return func(c *Context) { c.id = id }
}

func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		id:            uuid.NewString(),
		authenticated: true,
		local:         make(map[descriptor.Descriptor]definition.Definition),
		dynamic:       descriptor.NewSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) ID() string { return c.id }

func (c *Context) Authenticated() bool { return c.authenticated }

// AddDynamicDef makes def visible to this request only. It shadows every
// sub-registry and cache for its descriptor.
func (c *Context) AddDynamicDef(def definition.Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local[def.Descriptor()] = def
	c.dynamic.Add(def.Descriptor())
}

// IsDynamic reports whether d was added with AddDynamicDef.
func (c *Context) IsDynamic(d descriptor.Descriptor) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dynamic.Contains(d)
}

// LocalDef returns the request-local definition of d.
func (c *Context) LocalDef(d descriptor.Descriptor) (definition.Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.local[d]
	return def, ok
}

// LocalDescriptors lists the request-local descriptors, sorted.
func (c *Context) LocalDescriptors() []descriptor.Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]descriptor.Descriptor, 0, len(c.local))
	for d := range c.local {
		out = append(out, d)
	}
	descriptor.Sort(out)
	return out
}

func (c *Context) put(def definition.Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local[def.Descriptor()] = def
}
