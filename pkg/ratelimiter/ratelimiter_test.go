package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/errorlog/pkg/ratelimiter"
)

var testConfig = ratelimiter.Config{
	Capacity:       3,
	RefillRate:     1,
	RefillInterval: time.Second,
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newMemoryStore(t *testing.T, clk *clock) ratelimiter.Store {
	t.Helper()
	s := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	s.SetClock(clk.Now)
	t.Cleanup(s.Close)
	return s
}

func newRedisStore(t *testing.T, clk *clock) ratelimiter.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return ratelimiter.NewRedisStore(client, ratelimiter.WithRedisClock(clk.Now))
}

func TestNewBucket_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{"zero capacity", ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}},
		{"zero rate", ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}},
		{"sub millisecond interval", ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Microsecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0)), tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestBucket(t *testing.T) {
	t.Parallel()

	stores := map[string]func(*testing.T, *clock) ratelimiter.Store{
		"memory": newMemoryStore,
		"redis":  newRedisStore,
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Run("drains then refuses", func(t *testing.T) {
				t.Parallel()
				clk := newClock()
				b, err := ratelimiter.NewBucket(newStore(t, clk), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				for want := 2; want >= 0; want-- {
					res, err := b.Allow(ctx, "client")
					require.NoError(t, err)
					assert.True(t, res.Allowed())
					assert.Equal(t, want, res.Remaining)
					assert.Equal(t, 3, res.Limit)
				}

				res, err := b.Allow(ctx, "client")
				require.NoError(t, err)
				assert.False(t, res.Allowed())
				assert.Equal(t, -1, res.Remaining)
				assert.Equal(t, time.Second, res.RetryAfter(clk.Now()))

				// A refused take leaves the bucket empty rather than in debt.
				clk.Advance(time.Second)
				res, err = b.Allow(ctx, "client")
				require.NoError(t, err)
				assert.True(t, res.Allowed())
				assert.Equal(t, 0, res.Remaining)
			})

			t.Run("refill caps at capacity", func(t *testing.T) {
				t.Parallel()
				clk := newClock()
				b, err := ratelimiter.NewBucket(newStore(t, clk), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				_, err = b.AllowN(ctx, "client", 3)
				require.NoError(t, err)

				clk.Advance(time.Hour)
				res, err := b.Status(ctx, "client")
				require.NoError(t, err)
				assert.Equal(t, 3, res.Remaining)
			})

			t.Run("keys are independent", func(t *testing.T) {
				t.Parallel()
				clk := newClock()
				b, err := ratelimiter.NewBucket(newStore(t, clk), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				_, err = b.AllowN(ctx, "a", 3)
				require.NoError(t, err)

				res, err := b.Allow(ctx, "b")
				require.NoError(t, err)
				assert.Equal(t, 2, res.Remaining)
			})

			t.Run("all or nothing", func(t *testing.T) {
				t.Parallel()
				clk := newClock()
				b, err := ratelimiter.NewBucket(newStore(t, clk), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				res, err := b.AllowN(ctx, "client", 5)
				require.NoError(t, err)
				assert.False(t, res.Allowed())
				assert.Equal(t, -2, res.Remaining)

				res, err = b.Status(ctx, "client")
				require.NoError(t, err)
				assert.Equal(t, 3, res.Remaining)
			})

			t.Run("reset refills", func(t *testing.T) {
				t.Parallel()
				clk := newClock()
				b, err := ratelimiter.NewBucket(newStore(t, clk), testConfig)
				require.NoError(t, err)
				ctx := context.Background()

				_, err = b.AllowN(ctx, "client", 3)
				require.NoError(t, err)
				require.NoError(t, b.Reset(ctx, "client"))

				res, err := b.Status(ctx, "client")
				require.NoError(t, err)
				assert.Equal(t, 3, res.Remaining)
			})
		})
	}
}

func TestBucket_InvalidCount(t *testing.T) {
	t.Parallel()

	b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0)), testConfig)
	require.NoError(t, err)

	_, err = b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

func TestMemoryStore_RemoveIdle(t *testing.T) {
	t.Parallel()

	clk := newClock()
	s := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	s.SetClock(clk.Now)
	t.Cleanup(s.Close)
	ctx := context.Background()

	_, _, err := s.Take(ctx, "old", 1, testConfig)
	require.NoError(t, err)
	clk.Advance(2 * time.Hour)
	_, _, err = s.Take(ctx, "new", 1, testConfig)
	require.NoError(t, err)

	s.RemoveIdle(time.Hour)
	assert.Equal(t, 1, s.Len())
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	s := ratelimiter.NewRedisStore(client)
	_, _, err := s.Take(context.Background(), "k", 1, testConfig)
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}

func TestRedisStore_Prefix(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := ratelimiter.NewRedisStore(client, ratelimiter.WithRedisPrefix("test:rl:"))
	_, _, err := s.Take(context.Background(), "k", 1, testConfig)
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:rl:k"))
	assert.Positive(t, mr.TTL("test:rl:k"))
}
