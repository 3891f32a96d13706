package dedup

import (
	"context"
	"time"
)

const (
	// DefaultWindow is how long a claimed fingerprint suppresses repeats.
	DefaultWindow = 30 * time.Second
	// DefaultCapacity bounds the number of fingerprints a MemoryStore keeps.
	DefaultCapacity = 4096
	// DefaultPrefix namespaces keys in shared stores.
	DefaultPrefix = "errorlog:seen:"
)

// Store is a set of already reported failures.
type Store interface {
	// Claim marks key as reported and returns true if it was not already
	// marked within the window.
	Claim(ctx context.Context, key string) (bool, error)
	// Seen reports whether key is marked, without marking it.
	Seen(ctx context.Context, key string) (bool, error)
}

type options struct {
	window   time.Duration
	capacity int
	prefix   string
}

// Option configures a store.
type Option func(*options)

// WithWindow sets how long a claim lasts. Non-positive values are ignored.
func WithWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.window = d
		}
	}
}

// WithCapacity bounds the number of fingerprints kept in memory.
// Non-positive values are ignored. RedisStore ignores this option.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithPrefix sets the key prefix used by RedisStore.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		window:   DefaultWindow,
		capacity: DefaultCapacity,
		prefix:   DefaultPrefix,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
