package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi/tripguides/internal/cache"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "trips", "trip:complete:alpha", []byte(`{"id":1}`), time.Minute))

	val, ok, err := store.Get(ctx, "trips", "trip:complete:alpha")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"id":1}`), val)
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := cache.NewMemoryStore()

	_, ok, err := store.Get(context.Background(), "trips", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_ExpiredEntryIsMiss(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "trips", "short", []byte("x"), -time.Second))

	_, ok, err := store.Get(ctx, "trips", "short")
	require.NoError(t, err)
	assert.False(t, ok, "entries past their deadline read as misses")
}

func TestMemoryStore_Delete(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "trips", "k", []byte("x"), time.Minute))
	require.NoError(t, store.Delete(ctx, "trips", "k"))

	_, ok, _ := store.Get(ctx, "trips", "k")
	assert.False(t, ok)
}

func TestMemoryStore_InvalidatePattern(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "trips", "trip:complete:alpha", []byte("a"), time.Minute))
	require.NoError(t, store.Set(ctx, "trips", "trip:complete:beta", []byte("b"), time.Minute))
	require.NoError(t, store.Set(ctx, "trips", "trip:list", []byte("l"), time.Minute))
	require.NoError(t, store.Set(ctx, "stats", "stats:dashboard", []byte("s"), time.Minute))

	require.NoError(t, store.InvalidatePattern(ctx, "trips", "trip:complete:*"))

	_, ok, _ := store.Get(ctx, "trips", "trip:complete:alpha")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "trips", "trip:complete:beta")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "trips", "trip:list")
	assert.True(t, ok, "non-matching keys survive")
	_, ok, _ = store.Get(ctx, "stats", "stats:dashboard")
	assert.True(t, ok, "other namespaces survive")
}
