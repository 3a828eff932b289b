package registry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/defreg/internal/access"
	"github.com/zjrosen/defreg/internal/defcache"
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/metrics"
	"github.com/zjrosen/defreg/internal/tracing"
)

// Registry answers definition lookups for one request Context. All public
// operations are serialized by one RWMutex: lookups share the read lock and
// compilation holds the write lock.
type Registry struct {
	mu sync.RWMutex

	rctx    *Context
	subs    []SubRegistry
	caches  *defcache.Caches
	guard   *access.Guard
	tracer  trace.Tracer
	metrics *metrics.Metrics

	// entries holds dependency entries by DependencyKey, failures included.
	entries map[string]*defcache.DependencyEntry
	byUID   map[string]*defcache.DependencyEntry
}

func newRegistry(rctx *Context, subs []SubRegistry, caches *defcache.Caches, guard *access.Guard, tracer trace.Tracer, m *metrics.Metrics) *Registry {
	return &Registry{
		rctx:    rctx,
		subs:    subs,
		caches:  caches,
		guard:   guard,
		tracer:  tracing.OrNoop(tracer),
		metrics: m,
		entries: make(map[string]*defcache.DependencyEntry),
		byUID:   make(map[string]*defcache.DependencyEntry),
	}
}

// Context returns the request context of this instance.
func (r *Registry) Context() *Context { return r.rctx }

// request attaches the request's authentication state to ctx.
func (r *Registry) request(ctx context.Context) context.Context {
	return access.WithAuthenticated(ctx, r.rctx.Authenticated())
}

// GetDef returns the valid definition of d, compiling its dependency set on
// first use. A descriptor that does not exist yields nil and no error.
func (r *Registry) GetDef(ctx context.Context, d descriptor.Descriptor) (definition.Definition, error) {
	if d.IsZero() {
		return nil, nil
	}
	ctx, span := tracing.Start(r.request(ctx), r.tracer, tracing.SpanGetDef,
		attribute.String(tracing.AttrDescriptor, d.String()),
		attribute.String(tracing.AttrRequestID, r.rctx.ID()))

	r.mu.RLock()
	def, ok := r.validLocal(d)
	r.mu.RUnlock()
	if ok {
		span.SetAttributes(attribute.Bool(tracing.AttrCached, true))
		tracing.End(span, nil)
		return def, nil
	}

	r.mu.Lock()
	def, err := r.getDefLocked(ctx, d)
	r.mu.Unlock()

	tracing.End(span, err)
	return def, err
}

// getDefLocked is GetDef for callers holding the write lock.
func (r *Registry) getDefLocked(ctx context.Context, d descriptor.Descriptor) (definition.Definition, error) {
	if def, ok := r.validLocal(d); ok {
		return def, nil
	}
	entry, err := r.compile(ctx, d)
	if err != nil || entry == nil {
		return nil, err
	}
	return entry.Defs[d], nil
}

func (r *Registry) validLocal(d descriptor.Descriptor) (definition.Definition, bool) {
	def, ok := r.rctx.LocalDef(d)
	if !ok || !def.IsValid() {
		return nil, false
	}
	return def, true
}

// GetRawDef returns the unvalidated definition straight from the first
// sub-registry holding d, bypassing every cache. It returns nil when no
// sub-registry has d.
func (r *Registry) GetRawDef(ctx context.Context, d descriptor.Descriptor) (definition.Definition, error) {
	for _, sr := range r.subs {
		if !covers(sr, d) || !sr.Exists(ctx, d) {
			continue
		}
		def, err := sr.GetDef(ctx, d)
		if definition.IsNotFoundFor(err, d) {
			continue
		}
		return def, err
	}
	return nil, nil
}

// GetUID returns the UID of root's dependency set. clientUID is only a
// lookup key: a stale one still yields the current UID. A root that does not
// exist yields "" and no error.
func (r *Registry) GetUID(ctx context.Context, clientUID string, root descriptor.Descriptor) (string, error) {
	if root.IsZero() {
		return "", nil
	}
	ctx, span := tracing.Start(r.request(ctx), r.tracer, tracing.SpanGetUID,
		attribute.String(tracing.AttrDescriptor, root.String()),
		attribute.String(tracing.AttrClientUID, clientUID),
		attribute.String(tracing.AttrRequestID, r.rctx.ID()))

	r.mu.RLock()
	entry, ok := r.knownEntry(clientUID, root)
	r.mu.RUnlock()

	var err error
	if !ok {
		r.mu.Lock()
		entry, err = r.entryLocked(ctx, clientUID, root)
		r.mu.Unlock()
	}
	if err == nil && entry != nil {
		err = entry.Err
	}
	if err != nil || entry == nil {
		tracing.End(span, err)
		return "", err
	}

	span.SetAttributes(attribute.String(tracing.AttrUID, entry.UID), attribute.Int(tracing.AttrDepCount, entry.Deps.Len()))
	tracing.End(span, nil)
	return entry.UID, nil
}

// knownEntry finds an entry already in the local table.
func (r *Registry) knownEntry(clientUID string, root descriptor.Descriptor) (*defcache.DependencyEntry, bool) {
	if clientUID != "" {
		if e, ok := r.localEntry(defcache.DependencyKey(clientUID, root)); ok {
			return e, true
		}
	}
	return r.localEntry(defcache.DependencyKey("", root))
}

// localEntry returns a stored entry. Failures only count until the cache
// generation moves.
func (r *Registry) localEntry(key string) (*defcache.DependencyEntry, bool) {
	e, ok := r.entries[key]
	if !ok || (e.Err != nil && e.Generation != r.caches.Generation()) {
		return nil, false
	}
	return e, true
}

func (r *Registry) entryLocked(ctx context.Context, clientUID string, root descriptor.Descriptor) (*defcache.DependencyEntry, error) {
	if e, ok := r.knownEntry(clientUID, root); ok {
		return e, e.Err
	}
	if clientUID != "" {
		if e, ok := r.caches.DependencyEntry(ctx, clientUID, root); ok {
			r.adopt(e)
			return e, nil
		}
	}
	return r.compile(ctx, root)
}

// GetDependencies lists the dependency set of a UID computed by this
// instance. Unknown UIDs yield nil.
func (r *Registry) GetDependencies(ctx context.Context, uid string) []descriptor.Descriptor {
	_, span := tracing.Start(ctx, r.tracer, tracing.SpanGetDependencies, attribute.String(tracing.AttrUID, uid))
	defer tracing.End(span, nil)

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byUID[uid]
	if !ok {
		return nil
	}
	return e.Deps.Sorted()
}

// GetClientLibraries collects the client libraries declared across the
// dependency set of uid, in dependency order and without duplicates.
func (r *Registry) GetClientLibraries(ctx context.Context, uid string) []definition.ClientLibrary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byUID[uid]
	if !ok {
		return nil
	}
	var (
		libs []definition.ClientLibrary
		seen = map[definition.ClientLibrary]bool{}
	)
	for _, d := range e.Deps.Sorted() {
		lp, ok := e.Defs[d].(definition.LibraryProvider)
		if !ok {
			continue
		}
		for _, lib := range lp.ClientLibraries() {
			if !seen[lib] {
				seen[lib] = true
				libs = append(libs, lib)
			}
		}
	}
	return libs
}

// Exists reports whether d can be resolved. Answers for shareable
// descriptors are cached unless they came from the request-local table.
func (r *Registry) Exists(ctx context.Context, d descriptor.Descriptor) bool {
	if d.IsZero() {
		return false
	}
	ctx, span := tracing.Start(r.request(ctx), r.tracer, tracing.SpanExists, attribute.String(tracing.AttrDescriptor, d.String()))

	r.mu.RLock()
	exists := r.existsLocked(ctx, d)
	r.mu.RUnlock()

	span.SetAttributes(attribute.Bool("defreg.exists", exists))
	tracing.End(span, nil)
	return exists
}

func (r *Registry) existsLocked(ctx context.Context, d descriptor.Descriptor) bool {
	if _, ok := r.rctx.LocalDef(d); ok {
		return true
	}

	share := r.shareable(d)
	if share {
		if exists, ok := r.caches.HasExists(ctx, d); ok {
			return exists
		}
		if e, ok := r.caches.Definition(ctx, d); ok {
			r.caches.PutExists(ctx, d, !e.Absent())
			return !e.Absent()
		}
	}

	exists := false
	for _, sr := range r.subs {
		if covers(sr, d) && sr.Exists(ctx, d) {
			exists = true
			break
		}
	}
	if share {
		r.caches.PutExists(ctx, d, exists)
	}
	return exists
}

// Find returns every descriptor matching f, sorted by key.
func (r *Registry) Find(ctx context.Context, f descriptor.Filter) ([]descriptor.Descriptor, error) {
	ctx, span := tracing.Start(r.request(ctx), r.tracer, tracing.SpanFind, attribute.String(tracing.AttrFilter, f.Key()))

	r.mu.RLock()
	found, err := r.findLocked(ctx, f)
	r.mu.RUnlock()

	tracing.End(span, err)
	return found, err
}

func (r *Registry) findLocked(ctx context.Context, f descriptor.Filter) ([]descriptor.Descriptor, error) {
	if d, ok := f.Descriptor(); ok {
		if r.existsLocked(ctx, d) {
			return []descriptor.Descriptor{d}, nil
		}
		return nil, nil
	}

	cacheable := !f.NamespaceWildcard() && !r.caches.IsCacheException(f.Prefix())
	var touched []SubRegistry
	for _, sr := range r.subs {
		if !sr.HasFind() || !f.MayMatch(sr.Prefixes(), sr.Namespaces(), sr.DefTypes()) {
			continue
		}
		touched = append(touched, sr)
		if !sr.IsCacheable() || !sr.IsStatic() {
			cacheable = false
		}
	}

	found := descriptor.NewSet()
	cached := false
	if cacheable {
		var results []descriptor.Descriptor
		if results, cached = r.caches.FilterResults(ctx, f); cached {
			found.AddAll(descriptor.NewSet(results...))
		}
	}
	if !cached {
		for _, sr := range touched {
			results, err := sr.Find(ctx, f)
			if err != nil {
				return nil, err
			}
			found.AddAll(descriptor.NewSet(results...))
		}
		if cacheable {
			r.caches.PutFilterResults(ctx, f, found.Sorted())
		}
	}

	for _, d := range r.rctx.LocalDescriptors() {
		if f.Matches(d) {
			found.Add(d)
		}
	}
	return found.Sorted(), nil
}

// AssertAccess returns a NoAccessError when referencing may not use def.
func (r *Registry) AssertAccess(ctx context.Context, referencing descriptor.Descriptor, def definition.Definition) error {
	return r.guard.Assert(r.request(ctx), referencing, def)
}

// covering returns the first sub-registry responsible for d.
func (r *Registry) covering(d descriptor.Descriptor) SubRegistry {
	for _, sr := range r.subs {
		if covers(sr, d) {
			return sr
		}
	}
	return nil
}

// shareable reports whether d may enter the shared caches: its registry is
// cacheable and static and its prefix is no cache exception.
func (r *Registry) shareable(d descriptor.Descriptor) bool {
	sr := r.covering(d)
	return sr != nil && r.shares(sr, d)
}

func (r *Registry) shares(sr SubRegistry, d descriptor.Descriptor) bool {
	return sr.IsCacheable() && sr.IsStatic() && !r.caches.IsCacheException(d.Prefix)
}
