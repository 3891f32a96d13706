package dedup

import (
	"context"
	"time"

	"github.com/dmitrymomot/errorlog/pkg/cache"
)

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	seen *cache.Cache[string, struct{}]
}

// NewMemoryStore creates a MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := newOptions(opts)
	return &MemoryStore{
		seen: cache.New[string, struct{}](
			cache.WithCapacity(o.capacity),
			cache.WithTTL(o.window),
		),
	}
}

// SetClock replaces the time source used for the window. Intended for tests.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.seen.SetClock(now)
}

// Claim implements Store.
func (s *MemoryStore) Claim(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	return s.seen.Add(key, struct{}{}), nil
}

// Seen implements Store.
func (s *MemoryStore) Seen(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	_, ok := s.seen.Get(key)
	return ok, nil
}
