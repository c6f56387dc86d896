// Package cache provides a TTL response cache with in-flight request
// de-duplication, used to memoize expensive git lookups.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the fallback time-to-live for cached entries.
const DefaultTTL = 30 * time.Second

// entry stores a computed value with its expiry deadline.
type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache is a keyed TTL cache. Concurrent GetOrCompute calls for the same
// key share one computation. The zero value is not usable; call New.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	group   singleflight.Group
	now     func() time.Time
}

// New creates an empty Cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expires) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetOrCompute returns the cached value for key, computing and storing it
// with the given ttl when absent or expired. Concurrent callers for the
// same key wait on a single computation. Errors are returned to every
// waiter and nothing is cached.
func (c *Cache[V]) GetOrCompute(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: a racing caller may have filled the
		// entry between our Get and Do.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry[V]{value: value, expires: c.now().Add(ttl)}
		c.prune()
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Set stores a value directly, bypassing computation.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expires: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate drops one key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll drops every entry.
func (c *Cache[V]) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included until
// the next write sweeps them.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// prune removes expired entries. Caller must hold the write lock.
func (c *Cache[V]) prune() {
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
}
