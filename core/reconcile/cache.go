package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// BuildFunc loads a fresh value for a cache key.
type BuildFunc[T any] func(ctx context.Context) (T, error)

// entry holds one built value and its build time.
type entry[T any] struct {
	value T
	built time.Time
}

// Cache holds read-only values (e.g., loaded lookup tables) with a time-to-live.
// Values are shared between callers and must not be mutated after build.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[T]
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache. A zero TTL keeps values until Invalidate is called.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]*entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache[T]) expired(e *entry[T]) bool {
	if c.ttl == 0 {
		return false
	}
	return c.now().Sub(e.built) > c.ttl
}

// GetOrBuild retrieves the value for key, or builds a new one if it doesn't exist or has expired.
// Uses singleflight to prevent cache stampedes.
func (c *Cache[T]) GetOrBuild(ctx context.Context, key string, build BuildFunc[T]) (T, error) {
	// Fast path: check if value exists and is fresh
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !c.expired(e) {
		return e.value, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		e, exists := c.entries[key]
		c.mu.RUnlock()

		if exists && !c.expired(e) {
			return e.value, nil
		}

		value, err := build(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &entry[T]{value: value, built: c.now()}
		c.mu.Unlock()

		return value, nil
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

// Invalidate removes the value for key so the next GetOrBuild rebuilds it.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
