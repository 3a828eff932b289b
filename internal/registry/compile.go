package registry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/defreg/internal/defcache"
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/tracing"
)

// Validation phases, as recorded in metrics.
const (
	phaseDefinition = "definition"
	phaseReferences = "references"
	phaseMarkValid  = "mark_valid"
)

// compile returns root's dependency entry, building it when neither the
// local table nor the shared tier has one. The caller holds the write lock.
// A root that does not exist yields a nil entry and no error.
func (r *Registry) compile(ctx context.Context, root descriptor.Descriptor) (*defcache.DependencyEntry, error) {
	key := defcache.DependencyKey("", root)
	if e, ok := r.localEntry(key); ok {
		return e, e.Err
	}
	if e, ok := r.caches.DependencyEntry(ctx, "", root); ok {
		r.adopt(e)
		return e, nil
	}

	ctx, span := tracing.Start(ctx, r.tracer, tracing.SpanCompile, attribute.String(tracing.AttrDescriptor, root.String()))
	start := time.Now()
	gen := r.caches.Generation()

	entry, err := r.build(ctx, span, root, gen)
	r.metrics.Compiled(time.Since(start), err)
	tracing.End(span, err)

	if err != nil {
		log.ErrorErr(log.CatRegistry, "compile failed", err, "root", root, "request", r.rctx.ID())
		r.entries[key] = &defcache.DependencyEntry{Root: root, Err: err, Generation: gen}
		return nil, err
	}
	if entry == nil {
		log.Debug(log.CatRegistry, "root not found", "root", root)
		return nil, nil
	}
	r.remember(entry)
	log.Debug(log.CatRegistry, "compiled", "root", root, "uid", entry.UID, "deps", entry.Deps.Len())
	return entry, nil
}

// adopt takes over a shared entry: its definitions become request local.
func (r *Registry) adopt(e *defcache.DependencyEntry) {
	for _, def := range e.Defs {
		r.rctx.put(def)
	}
	r.remember(e)
}

func (r *Registry) remember(e *defcache.DependencyEntry) {
	r.entries[defcache.DependencyKey("", e.Root)] = e
	r.entries[defcache.DependencyKey(e.UID, e.Root)] = e
	r.byUID[e.UID] = e
}

// compilation is the state of one build: every definition of the set and the
// ones that still have to pass validation, both in discovery order.
type compilation struct {
	r     *Registry
	ctx   context.Context
	defs  map[descriptor.Descriptor]definition.Definition
	order []descriptor.Descriptor
	fresh []definition.Definition
	// shared marks definitions that may enter the shared tier.
	shared map[descriptor.Descriptor]bool
}

// build resolves the dependency set of root and runs the validation pipeline
// over it: structure during discovery, then staging of the whole set, then
// references, then validity. Nothing is committed unless every step passed.
func (r *Registry) build(ctx context.Context, span trace.Span, root descriptor.Descriptor, gen uint64) (*defcache.DependencyEntry, error) {
	c := &compilation{
		r:      r,
		ctx:    ctx,
		defs:   make(map[descriptor.Descriptor]definition.Definition),
		shared: make(map[descriptor.Descriptor]bool),
	}

	found, err := c.resolve(root)
	if err != nil || !found {
		return nil, err
	}
	span.AddEvent(tracing.EventResolved, trace.WithAttributes(attribute.Int(tracing.AttrDepCount, len(c.defs))))

	// The set is staged: c.defs is what reference validation sees.
	span.AddEvent(tracing.EventStaged)
	rc := refContext{c: c}
	for _, def := range c.fresh {
		r.metrics.Validation(phaseReferences)
		if err := def.ValidateReferences(rc); err != nil {
			return nil, err
		}
	}
	span.AddEvent(tracing.EventReferenced)

	for _, def := range c.fresh {
		r.metrics.Validation(phaseMarkValid)
		def.MarkValid()
	}

	entry := &defcache.DependencyEntry{
		UID:        ComputeUID(c.defs),
		Root:       root,
		Deps:       descriptor.NewSet(c.order...),
		Defs:       c.defs,
		Generation: gen,
	}
	c.commit(entry)
	span.AddEvent(tracing.EventCommitted)
	return entry, nil
}

// resolve walks the frontier from root. Each definition is fetched once and,
// unless already valid, checked in isolation before its dependencies and
// supertypes join the frontier. It reports false when root does not exist.
func (c *compilation) resolve(root descriptor.Descriptor) (bool, error) {
	type pending struct {
		d        descriptor.Descriptor
		referrer descriptor.Descriptor
	}
	frontier := []pending{{d: root}}

	for len(frontier) > 0 {
		next := frontier[0]
		frontier = frontier[1:]
		if _, seen := c.defs[next.d]; seen {
			continue
		}

		def, shared, err := c.r.fetch(c.ctx, next.d)
		if err != nil {
			return false, err
		}
		if def == nil {
			if next.d == root {
				return false, nil
			}
			return false, &definition.NotFoundError{Descriptor: next.d, Referrer: next.referrer}
		}

		c.defs[next.d] = def
		c.order = append(c.order, next.d)
		c.shared[next.d] = shared

		if !def.IsValid() {
			c.r.metrics.Validation(phaseDefinition)
			if err := def.ValidateDefinition(); err != nil {
				return false, err
			}
			c.fresh = append(c.fresh, def)
		}

		refs := descriptor.NewSet()
		def.AppendDependencies(refs)
		if err := def.AppendSupers(refs); err != nil {
			return false, err
		}
		for _, d := range refs.Sorted() {
			if _, seen := c.defs[d]; !seen {
				frontier = append(frontier, pending{d: d, referrer: next.d})
			}
		}
	}
	return true, nil
}

// commit publishes a fully validated set: every definition becomes request
// local, shareable ones enter the definitions cache and a fully shareable
// entry enters the dependency cache. Sharing is skipped when a source changed
// while the set was being built.
func (c *compilation) commit(entry *defcache.DependencyEntry) {
	r := c.r
	current := r.caches.Generation() == entry.Generation

	allShared := true
	for _, d := range c.order {
		def := c.defs[d]
		r.rctx.put(def)
		if !c.shared[d] {
			allShared = false
			continue
		}
		if current {
			r.caches.PutDefinition(c.ctx, def)
		}
	}
	if allShared && current {
		r.caches.PutDependencyEntry(c.ctx, "", entry)
		r.caches.PutDependencyEntry(c.ctx, entry.UID, entry)
	}
}

// fetch finds d in the request-local table, then the shared definitions cache,
// then the first covering sub-registry that has it. A nil definition means d
// does not exist. The bool reports whether d may enter the shared tier.
func (r *Registry) fetch(ctx context.Context, d descriptor.Descriptor) (definition.Definition, bool, error) {
	if def, ok := r.rctx.LocalDef(d); ok {
		return def, !r.rctx.IsDynamic(d) && r.shareable(d), nil
	}

	share := r.shareable(d)
	if share {
		if e, ok := r.caches.Definition(ctx, d); ok {
			if e.Absent() {
				return nil, true, nil
			}
			return e.Def, true, nil
		}
	}

	for _, sr := range r.subs {
		if !covers(sr, d) || !sr.Exists(ctx, d) {
			continue
		}
		def, err := sr.GetDef(ctx, d)
		if definition.IsNotFoundFor(err, d) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return def, r.shares(sr, d), nil
	}

	if share {
		r.caches.PutAbsent(ctx, d)
	}
	return nil, share, nil
}

// refContext serves reference validation: the staged set first, then the
// registry through paths that assume the write lock is held.
type refContext struct {
	c *compilation
}

func (rc refContext) Context() context.Context { return rc.c.ctx }

func (rc refContext) GetDef(ctx context.Context, d descriptor.Descriptor) (definition.Definition, error) {
	if def, ok := rc.c.defs[d]; ok {
		return def, nil
	}
	def, err := rc.c.r.getDefLocked(ctx, d)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, definition.NewNotFound(d)
	}
	return def, nil
}

func (rc refContext) AssertAccess(ctx context.Context, referencing descriptor.Descriptor, def definition.Definition) error {
	return rc.c.r.guard.Assert(ctx, referencing, def)
}
