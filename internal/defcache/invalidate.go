package defcache

import (
	"context"
	"strings"

	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/pubsub"
	"github.com/zjrosen/defreg/internal/source"
)

// Listener adapts NotifySourceChange for loader subscriptions.
func (c *Caches) Listener() source.Listener {
	return func(ev source.ChangeEvent) {
		c.NotifySourceChange(context.Background(), ev)
	}
}

// NotifySourceChange evicts every entry that depends on the changed source,
// moves the generation and publishes an Invalidation.
func (c *Caches) NotifySourceChange(ctx context.Context, ev source.ChangeEvent) Invalidation {
	affected := affectedBy(ev)

	evicted := map[Kind]int{
		KindDefinitions: c.evictKeys(ctx, c.defs.Keys(ctx), affected, c.defs.Delete),
		KindExists:      c.evictKeys(ctx, c.exists.Keys(ctx), affected, c.exists.Delete),
		KindFilters:     c.evictFilters(ctx, affected),
		KindAccess:      c.evictAccess(ctx, affected),
		KindDeps:        c.evictDeps(ctx, affected),
	}
	for kind, n := range evicted {
		c.metrics.Evicted(string(kind), n)
	}

	gen := c.generation.Add(1)
	c.metrics.SourceChange(string(ev.Kind), gen)

	inv := Invalidation{Event: ev, Generation: gen, Evicted: evicted}
	c.broker.Publish(pubsub.EvictedEvent, inv)
	log.Debug(log.CatCache, "source change applied", "event", ev, "generation", gen,
		"definitions", evicted[KindDefinitions], "deps", evicted[KindDeps], "filters", evicted[KindFilters])
	return inv
}

// affectedBy lists the descriptors whose cached state a change invalidates.
// Adding or removing a bundle member changes the parsed member set of the
// bundle's markup definitions; editing one does not.
func affectedBy(ev source.ChangeEvent) descriptor.Set {
	affected := descriptor.NewSet(ev.Descriptor)
	if ev.Kind == source.Changed || ev.Descriptor.DefType.IsMarkup() {
		return affected
	}
	for _, t := range descriptor.MarkupDefTypes {
		affected.Add(ev.Descriptor.Bundle(t))
	}
	return affected
}

func (c *Caches) evictKeys(ctx context.Context, keys []string, affected descriptor.Set, del func(context.Context, ...string) error) int {
	wanted := make(map[string]bool, len(affected))
	for d := range affected {
		wanted[d.Key()] = true
	}
	var victims []string
	for _, k := range keys {
		if wanted[k] {
			victims = append(victims, k)
		}
	}
	return c.delete(ctx, victims, del)
}

func (c *Caches) evictFilters(ctx context.Context, affected descriptor.Set) int {
	var victims []string
	for _, k := range c.filters.Keys(ctx) {
		e, ok := c.filters.Get(ctx, k)
		if !ok {
			continue
		}
		for d := range affected {
			if e.Filter.Matches(d) {
				victims = append(victims, k)
				break
			}
		}
	}
	return c.delete(ctx, victims, c.filters.Delete)
}

// evictAccess removes verdicts whose referencing or target key is affected.
func (c *Caches) evictAccess(ctx context.Context, affected descriptor.Set) int {
	wanted := make(map[string]bool, len(affected))
	for d := range affected {
		wanted[d.Key()] = true
	}
	var victims []string
	for _, k := range c.access.Keys(ctx) {
		for _, part := range strings.Split(k, "|") {
			if wanted[part] {
				victims = append(victims, k)
				break
			}
		}
	}
	return c.delete(ctx, victims, c.access.Delete)
}

func (c *Caches) evictDeps(ctx context.Context, affected descriptor.Set) int {
	var victims []string
	for _, k := range c.deps.Keys(ctx) {
		e, ok := c.deps.Get(ctx, k)
		if !ok {
			continue
		}
		for d := range affected {
			if e.Contains(d) {
				victims = append(victims, k)
				break
			}
		}
	}
	return c.delete(ctx, victims, c.deps.Delete)
}

func (c *Caches) delete(ctx context.Context, keys []string, del func(context.Context, ...string) error) int {
	if len(keys) == 0 {
		return 0
	}
	if err := del(ctx, keys...); err != nil {
		log.ErrorErr(log.CatCache, "evict failed", err, "keys", len(keys))
		return 0
	}
	return len(keys)
}
