package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache fills a CacheManager from fn on a miss. Errors from fn
// are returned to the caller and not cached.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache CacheManager[K, V]
	fn    func(ctx context.Context, input I) (V, error)
	ttl   time.Duration
}

// NewReadThroughCache wraps cache with loader fn. Entries live for ttl.
func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	ttl time.Duration,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, fn: fn, ttl: ttl}
}

// Get returns the cached value under key or loads it from input.
// A hit restarts the entry's ttl.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I) (V, error) {
	if value, ok := r.cache.GetWithRefresh(ctx, key, r.ttl); ok {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, r.ttl)
	return value, nil
}

// Cache exposes the underlying cache.
func (r *ReadThroughCache[K, V, I]) Cache() CacheManager[K, V] {
	return r.cache
}
