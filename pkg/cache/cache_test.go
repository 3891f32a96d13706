package cache_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/errorlog/pkg/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	c := cache.New[string, int]()
	c.Set("a", 1)
	c.Set("a", 2)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Capacity(t *testing.T) {
	t.Parallel()

	c := cache.New[string, int](cache.WithCapacity(2))
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // reads do not protect an entry
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())

	// Rewriting moves an entry to the new end.
	c.Set("b", 20)
	c.Set("d", 4)
	_, ok = c.Get("c")
	assert.False(t, ok)
	v, _ := c.Get("b")
	assert.Equal(t, 20, v)
}

func TestCache_TTL(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	c := cache.New[string, int](cache.WithTTL(10*time.Second), cache.WithClock(clk.Now))

	c.Set("old", 1)
	clk.Advance(6 * time.Second)
	c.Set("new", 2)
	clk.Advance(4 * time.Second)

	_, ok := c.Get("old")
	assert.False(t, ok, "expires exactly at the TTL")
	_, ok = c.Get("new")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())

	clk.Advance(6 * time.Second)
	assert.Zero(t, c.Len())
}

func TestCache_SetRestartsTTL(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	c := cache.New[string, int](cache.WithTTL(10*time.Second), cache.WithClock(clk.Now))

	c.Set("a", 1)
	clk.Advance(8 * time.Second)
	c.Set("a", 1)
	clk.Advance(8 * time.Second)

	_, ok := c.Get("a")
	assert.True(t, ok)
}

func TestCache_Add(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	c := cache.New[string, int](cache.WithTTL(5*time.Second), cache.WithClock(clk.Now))

	assert.True(t, c.Add("k", 1))
	assert.False(t, c.Add("k", 2))
	v, _ := c.Get("k")
	assert.Equal(t, 1, v)

	clk.Advance(4 * time.Second)
	assert.False(t, c.Add("k", 3), "a refused add keeps the original TTL")
	clk.Advance(time.Second)
	assert.True(t, c.Add("k", 4))
}

func TestCache_AddConcurrent(t *testing.T) {
	t.Parallel()

	c := cache.New[string, struct{}](cache.WithTTL(time.Minute))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Add("same", struct{}{}) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestCache_DeletePurge(t *testing.T) {
	t.Parallel()

	c := cache.New[int, string]()
	c.Set(1, "a")
	c.Set(2, "b")

	assert.True(t, c.Delete(1))
	assert.False(t, c.Delete(1))
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Zero(t, c.Len())
	assert.True(t, c.Add(2, "again"))
}

func TestCache_SetClock(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	c := cache.New[string, int](cache.WithTTL(time.Second))
	c.SetClock(clk.Now)

	c.Set("a", 1)
	clk.Advance(2 * time.Second)
	_, ok := c.Get("a")
	assert.False(t, ok)
}
