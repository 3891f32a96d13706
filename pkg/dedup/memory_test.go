package dedup_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/errorlog/pkg/dedup"
)

func TestMemoryStore_Claim(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := dedup.NewMemoryStore()

	first, err := store.Claim(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.Claim(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := store.Claim(ctx, "other")
	require.NoError(t, err)
	assert.True(t, other)
}

func TestMemoryStore_Window(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	store := dedup.NewMemoryStore(dedup.WithWindow(10 * time.Second))
	store.SetClock(func() time.Time { return now })

	first, _ := store.Claim(ctx, "fp")
	require.True(t, first)

	now = now.Add(9 * time.Second)
	seen, err := store.Seen(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, seen)

	now = now.Add(time.Second)
	again, _ := store.Claim(ctx, "fp")
	assert.True(t, again)
}

func TestMemoryStore_Capacity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := dedup.NewMemoryStore(dedup.WithCapacity(2))

	for _, key := range []string{"a", "b", "c"} {
		ok, err := store.Claim(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// "a" was evicted to make room for "c".
	ok, _ := store.Claim(ctx, "a")
	assert.True(t, ok)
}

func TestMemoryStore_SeenDoesNotMark(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := dedup.NewMemoryStore()

	seen, err := store.Seen(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, seen)

	claimed, err := store.Claim(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, claimed)

	seen, err = store.Seen(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestMemoryStore_EmptyKey(t *testing.T) {
	t.Parallel()

	store := dedup.NewMemoryStore()
	_, err := store.Claim(context.Background(), "")
	assert.ErrorIs(t, err, dedup.ErrEmptyKey)
}
