package cachemanager

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/azario0/prototypes-txt-reader/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// InMemoryCacheManager is a CacheManager backed by go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewInMemoryCacheManager creates a cache. useCase tags its log lines.
func NewInMemoryCacheManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the value stored under key.
func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	value, found := c.cache.Get(string(key))
	if !found {
		c.misses.Add(1)
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)
		c.misses.Add(1)
		return zero, false
	}

	c.hits.Add(1)
	log.Debug(log.CatCache, "cache hit", "cache", c.useCase, "key", key)
	return v, true
}

// GetWithRefresh returns the value under key and restarts its ttl.
func (c *InMemoryCacheManager[K, V]) GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	value, found := c.Get(ctx, key)
	if found {
		c.Set(ctx, key, value, ttl)
	}
	return value, found
}

// Set stores value under key. A zero ttl uses the cache default.
func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(string(key), value, ttl)
}

// Delete removes keys.
func (c *InMemoryCacheManager[K, V]) Delete(_ context.Context, keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush empties the cache and resets its counters.
func (c *InMemoryCacheManager[K, V]) Flush(_ context.Context) {
	c.cache.Flush()
	c.hits.Store(0)
	c.misses.Store(0)
	log.Debug(log.CatCache, "flushed", "cache", c.useCase)
}

// Stats reports hit/miss counts and the current item count.
func (c *InMemoryCacheManager[K, V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Items:  c.cache.ItemCount(),
	}
}
