// Package cachemanager provides the generic key/value store under the
// registry's cache tiers.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed, concurrency-safe key/value store. Keys are
// enumerable so callers can inspect and selectively evict entries.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Keys(ctx context.Context) []K
	Len(ctx context.Context) int
	Flush(ctx context.Context) error
}
