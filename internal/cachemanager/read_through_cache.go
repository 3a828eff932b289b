package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache loads missing values through fn and stores them, unless
// shouldSkip reports that the input must bypass the cache entirely.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache      CacheManager[K, V]
	fn         func(ctx context.Context, input I) (V, error)
	shouldSkip func(input I) bool
}

// NewReadThroughCache wires a loader to a cache. A nil shouldSkip caches every input.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	shouldSkip func(input I) bool,
) *ReadThroughCache[K, V, I] {
	if shouldSkip == nil {
		shouldSkip = func(I) bool { return false }
	}
	return &ReadThroughCache[K, V, I]{
		cache:      cache,
		fn:         fn,
		shouldSkip: shouldSkip,
	}
}

// Get returns the cached value for key or loads, stores and returns it.
// The second result reports whether the value came from the cache.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, bool, error) {
	if r.shouldSkip(input) {
		v, err := r.fn(ctx, input)
		return v, false, err
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, true, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, false, err
	}

	r.cache.Set(ctx, key, value, ttl)

	return value, false, nil
}
