package cache

import (
	"container/list"
	"sync"
	"time"
)

// DefaultCapacity bounds a cache created without WithCapacity.
const DefaultCapacity = 1024

type config struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Cache.
type Option func(*config)

// WithCapacity bounds the number of entries. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithTTL sets how long an entry lives after its last write. Zero keeps
// entries until they are pushed out by capacity.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock sets the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	written time.Time
}

// Cache maps keys to values for a bounded time and count.
type Cache[K comparable, V any] struct {
	mu    sync.Mutex
	cfg   config
	index map[K]*list.Element
	order *list.List // front is the newest write
}

// New creates a Cache.
func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	cfg := config{capacity: DefaultCapacity, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache[K, V]{
		cfg:   cfg,
		index: make(map[K]*list.Element),
		order: list.New(),
	}
}

// SetClock replaces the time source after construction. Nil restores
// time.Now.
func (c *Cache[K, V]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	c.cfg.now = now
}

// Get returns the live value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()

	if el, ok := c.index[key]; ok {
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Set stores value under key and restarts its TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()

	if el, ok := c.index[key]; ok {
		e := el.Value.(*entry[K, V])
		e.value = value
		e.written = c.cfg.now()
		c.order.MoveToFront(el)
		return
	}
	c.push(key, value)
}

// Add stores value only when key has no live entry and reports whether it
// did. An existing entry keeps its value and TTL.
func (c *Cache[K, V]) Add(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()

	if _, ok := c.index[key]; ok {
		return false
	}
	c.push(key, value)
	return true
}

// Delete removes key and reports whether a live entry was there.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()

	el, ok := c.index[key]
	if ok {
		c.drop(el)
	}
	return ok
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()
	return c.order.Len()
}

// Purge removes every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.index)
	c.order.Init()
}

// push must be called with the lock held.
func (c *Cache[K, V]) push(key K, value V) {
	c.index[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, written: c.cfg.now()})
	for c.order.Len() > c.cfg.capacity {
		c.drop(c.order.Back())
	}
}

// prune drops expired entries from the old end. Must be called with the lock
// held.
func (c *Cache[K, V]) prune() {
	if c.cfg.ttl <= 0 {
		return
	}
	cutoff := c.cfg.now().Add(-c.cfg.ttl)
	for el := c.order.Back(); el != nil; el = c.order.Back() {
		if el.Value.(*entry[K, V]).written.After(cutoff) {
			return
		}
		c.drop(el)
	}
}

func (c *Cache[K, V]) drop(el *list.Element) {
	c.order.Remove(el)
	delete(c.index, el.Value.(*entry[K, V]).key)
}
