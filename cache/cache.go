// ABOUTME: Typed in-memory cache with TTL-based expiration
// ABOUTME: Backs course and ebook listings so repeated CLI calls skip the network

package cache

import (
	"log/slog"
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a thread-safe TTL cache. Expired entries are dropped lazily
// on read and swept by a background loop.
type Cache[T any] struct {
	store sync.Map
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache with the given default TTL and starts the sweep
// loop.
func New[T any](ttl time.Duration) *Cache[T] {
	c := &Cache[T]{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	val, ok := c.store.Load(key)
	if !ok {
		return zero, false
	}

	e := val.(entry[T])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("cache expired", "key", key)
		return zero, false
	}
	return e.value, true
}

// Set stores a value with the default TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.store.Store(key, entry[T]{value: value, expiresAt: time.Now().Add(ttl)})
	slog.Debug("cache set", "key", key, "ttl", ttl)
}

// Delete removes a single key.
func (c *Cache[T]) Delete(key string) {
	c.store.Delete(key)
}

// Flush drops every entry.
func (c *Cache[T]) Flush() {
	c.store.Range(func(key, _ any) bool {
		c.store.Delete(key)
		return true
	})
}

// Close stops the sweep loop. Safe to call more than once.
func (c *Cache[T]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache[T]) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, val any) bool {
				if now.After(val.(entry[T]).expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
