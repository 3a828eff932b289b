// Package defcache is the cache tier shared by every registry instance of a
// process: definitions, existence answers, filtered search results, access
// verdicts and dependency entries. Source changes evict what they affect.
package defcache

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/zjrosen/defreg/internal/cachemanager"
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/metrics"
	"github.com/zjrosen/defreg/internal/pubsub"
	"github.com/zjrosen/defreg/internal/source"
)

// Kind names one cache of the tier.
type Kind string

const (
	KindDefinitions Kind = "definitions"
	KindExists      Kind = "exists"
	KindFilters     Kind = "filters"
	KindAccess      Kind = "access"
	KindDeps        Kind = "deps"
)

// Kinds lists every cache in a stable order.
var Kinds = []Kind{KindDefinitions, KindExists, KindFilters, KindAccess, KindDeps}

// DefaultCacheExceptions are prefixes that never enter the shared caches.
var DefaultCacheExceptions = []string{"apex"}

// DefEntry is a cached definition. A nil Def records that the descriptor does not exist.
type DefEntry struct {
	Def definition.Definition
}

// Absent reports whether the entry is a not-found marker.
func (e DefEntry) Absent() bool { return e.Def == nil }

// FilterEntry is a cached search result together with the filter that produced it.
type FilterEntry struct {
	Filter  descriptor.Filter
	Results []descriptor.Descriptor
}

// DependencyEntry is the resolved closure of a root descriptor.
// Entries are never mutated once built.
type DependencyEntry struct {
	UID  string
	Root descriptor.Descriptor
	// Deps is the full dependency set, root included.
	Deps descriptor.Set
	Defs map[descriptor.Descriptor]definition.Definition
	// Err is set for failed resolutions. Such entries stay instance local.
	Err        error
	Generation uint64
}

// Contains reports whether d is part of the closure.
func (e *DependencyEntry) Contains(d descriptor.Descriptor) bool {
	return e != nil && e.Deps.Contains(d)
}

// Invalidation is published after a source change has been applied.
type Invalidation struct {
	Event      source.ChangeEvent
	Generation uint64
	Evicted    map[Kind]int
}

// Config sizes the tier.
type Config struct {
	DefaultExpiration time.Duration
	CleanupInterval   time.Duration
	CacheExceptions   []string
}

// DefaultConfig keeps entries until evicted and uses the default exceptions.
func DefaultConfig() Config {
	return Config{
		DefaultExpiration: cachemanager.NoExpiration,
		CleanupInterval:   cachemanager.DefaultCleanupInterval,
		CacheExceptions:   DefaultCacheExceptions,
	}
}

// Managers are the stores behind each cache.
type Managers struct {
	Definitions cachemanager.CacheManager[string, DefEntry]
	Exists      cachemanager.CacheManager[string, bool]
	Filters     cachemanager.CacheManager[string, FilterEntry]
	Access      cachemanager.CacheManager[string, string]
	Deps        cachemanager.CacheManager[string, *DependencyEntry]
}

// Caches is the shared cache tier.
type Caches struct {
	defs    cachemanager.CacheManager[string, DefEntry]
	exists  cachemanager.CacheManager[string, bool]
	filters cachemanager.CacheManager[string, FilterEntry]
	access  cachemanager.CacheManager[string, string]
	deps    cachemanager.CacheManager[string, *DependencyEntry]

	exceptions map[string]bool
	generation atomic.Uint64
	broker     *pubsub.Broker[Invalidation]
	metrics    *metrics.Metrics
}

// New builds the tier over go-cache stores.
func New(cfg Config, m *metrics.Metrics) *Caches {
	exp, cleanup := cfg.DefaultExpiration, cfg.CleanupInterval
	return NewWithManagers(Managers{
		Definitions: cachemanager.NewInMemoryCacheManager[string, DefEntry](string(KindDefinitions), exp, cleanup),
		Exists:      cachemanager.NewInMemoryCacheManager[string, bool](string(KindExists), exp, cleanup),
		Filters:     cachemanager.NewInMemoryCacheManager[string, FilterEntry](string(KindFilters), exp, cleanup),
		Access:      cachemanager.NewInMemoryCacheManager[string, string](string(KindAccess), exp, cleanup),
		Deps:        cachemanager.NewInMemoryCacheManager[string, *DependencyEntry](string(KindDeps), exp, cleanup),
	}, cfg.CacheExceptions, m)
}

// NewWithManagers builds the tier over the given stores.
func NewWithManagers(mgr Managers, exceptions []string, m *metrics.Metrics) *Caches {
	c := &Caches{
		defs:       mgr.Definitions,
		exists:     mgr.Exists,
		filters:    mgr.Filters,
		access:     mgr.Access,
		deps:       mgr.Deps,
		exceptions: make(map[string]bool, len(exceptions)),
		broker:     pubsub.NewBroker[Invalidation](),
		metrics:    m,
	}
	for _, p := range exceptions {
		c.exceptions[strings.ToLower(p)] = true
	}
	return c
}

// IsCacheException reports whether prefix is barred from the shared caches.
func (c *Caches) IsCacheException(prefix string) bool {
	return c.exceptions[strings.ToLower(prefix)]
}

// Generation increases with every applied source change.
func (c *Caches) Generation() uint64 {
	return c.generation.Load()
}

// Subscribe streams invalidations until ctx is done.
func (c *Caches) Subscribe(ctx context.Context) <-chan pubsub.Event[Invalidation] {
	return c.broker.Subscribe(ctx)
}

// Close stops invalidation delivery.
func (c *Caches) Close() {
	c.broker.Close()
}

// Definition looks up d in the definitions cache.
func (c *Caches) Definition(ctx context.Context, d descriptor.Descriptor) (DefEntry, bool) {
	e, ok := c.defs.Get(ctx, d.Key())
	c.metrics.CacheLookup(string(KindDefinitions), ok)
	return e, ok
}

// PutDefinition caches a valid definition.
func (c *Caches) PutDefinition(ctx context.Context, def definition.Definition) {
	c.defs.Set(ctx, def.Descriptor().Key(), DefEntry{Def: def}, 0)
}

// PutAbsent records that d does not exist.
func (c *Caches) PutAbsent(ctx context.Context, d descriptor.Descriptor) {
	c.defs.Set(ctx, d.Key(), DefEntry{}, 0)
}

// HasExists returns a cached existence answer. The second result reports a hit.
func (c *Caches) HasExists(ctx context.Context, d descriptor.Descriptor) (exists, ok bool) {
	exists, ok = c.exists.Get(ctx, d.Key())
	c.metrics.CacheLookup(string(KindExists), ok)
	return exists, ok
}

// PutExists caches an existence answer.
func (c *Caches) PutExists(ctx context.Context, d descriptor.Descriptor, exists bool) {
	c.exists.Set(ctx, d.Key(), exists, 0)
}

// FilterResults returns the cached result of f.
func (c *Caches) FilterResults(ctx context.Context, f descriptor.Filter) ([]descriptor.Descriptor, bool) {
	e, ok := c.filters.Get(ctx, f.Key())
	c.metrics.CacheLookup(string(KindFilters), ok)
	if !ok {
		return nil, false
	}
	return append([]descriptor.Descriptor(nil), e.Results...), true
}

// PutFilterResults caches the result of f.
func (c *Caches) PutFilterResults(ctx context.Context, f descriptor.Filter, results []descriptor.Descriptor) {
	c.filters.Set(ctx, f.Key(), FilterEntry{Filter: f, Results: append([]descriptor.Descriptor(nil), results...)}, 0)
}

// AccessVerdict returns a cached verdict: "" means allowed, anything else is
// the denial message.
func (c *Caches) AccessVerdict(ctx context.Context, key string) (string, bool) {
	v, ok := c.access.Get(ctx, key)
	c.metrics.CacheLookup(string(KindAccess), ok)
	return v, ok
}

// PutAccessVerdict caches a verdict.
func (c *Caches) PutAccessVerdict(ctx context.Context, key, verdict string) {
	c.access.Set(ctx, key, verdict, 0)
}

// DependencyKey is the cache key of a dependency entry.
func DependencyKey(uid string, root descriptor.Descriptor) string {
	return uid + "/" + root.Key()
}

// DependencyEntry returns the shared entry stored under DependencyKey(uid, root).
func (c *Caches) DependencyEntry(ctx context.Context, uid string, root descriptor.Descriptor) (*DependencyEntry, bool) {
	e, ok := c.deps.Get(ctx, DependencyKey(uid, root))
	c.metrics.CacheLookup(string(KindDeps), ok)
	return e, ok
}

// PutDependencyEntry shares a successfully built entry.
func (c *Caches) PutDependencyEntry(ctx context.Context, uid string, e *DependencyEntry) {
	if e == nil || e.Err != nil {
		return
	}
	c.deps.Set(ctx, DependencyKey(uid, e.Root), e, 0)
}

// Keys enumerates the keys of one cache in lexical order.
func (c *Caches) Keys(ctx context.Context, kind Kind) []string {
	switch kind {
	case KindDefinitions:
		return c.defs.Keys(ctx)
	case KindExists:
		return c.exists.Keys(ctx)
	case KindFilters:
		return c.filters.Keys(ctx)
	case KindAccess:
		return c.access.Keys(ctx)
	case KindDeps:
		return c.deps.Keys(ctx)
	default:
		return nil
	}
}

// Stats is a snapshot of entry counts.
type Stats struct {
	Entries    map[Kind]int `json:"entries"`
	Generation uint64       `json:"generation"`
}

func (c *Caches) Stats(ctx context.Context) Stats {
	return Stats{
		Entries: map[Kind]int{
			KindDefinitions: c.defs.Len(ctx),
			KindExists:      c.exists.Len(ctx),
			KindFilters:     c.filters.Len(ctx),
			KindAccess:      c.access.Len(ctx),
			KindDeps:        c.deps.Len(ctx),
		},
		Generation: c.Generation(),
	}
}

// Flush empties every cache and moves the generation.
func (c *Caches) Flush(ctx context.Context) error {
	for _, flush := range []func(context.Context) error{
		c.defs.Flush, c.exists.Flush, c.filters.Flush, c.access.Flush, c.deps.Flush,
	} {
		if err := flush(ctx); err != nil {
			return err
		}
	}
	c.generation.Add(1)
	return nil
}
