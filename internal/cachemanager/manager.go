// Package cachemanager provides typed TTL caches. txtreader uses them to
// keep compiled search patterns between keystrokes.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager stores values of type V under string-like keys.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
	Stats() Stats
}

// Stats counts lookups since the cache was created or flushed.
type Stats struct {
	Hits   uint64
	Misses uint64
	Items  int
}
