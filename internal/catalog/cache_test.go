package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestCacheBuildKeyIncludesVersion(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, keySnapshot()...)
	require.NoError(t, err)
	assert.Equal(t, "catalog:snapshot:1", key)

	require.NoError(t, cache.Bump(ctx))

	bumped, err := cache.BuildKey(ctx, keySnapshot()...)
	require.NoError(t, err)
	assert.Equal(t, "catalog:snapshot:2", bumped)
}

func TestCacheFetchJSONPopulatesOnce(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (interface{}, error) {
		loads++
		return &Snapshot{Departments: []Department{{ID: 1, Code: "TL"}}}, nil
	}

	key, err := cache.BuildKey(ctx, keySnapshot()...)
	require.NoError(t, err)

	var first Snapshot
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	var second Snapshot
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))

	assert.Equal(t, 1, loads)
	require.Len(t, second.Departments, 1)
	assert.Equal(t, "TL", second.Departments[0].Code)
}

func TestCacheBumpInvalidatesOldKeys(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, keySnapshot()...)
	require.NoError(t, err)

	loads := 0
	loader := func(context.Context) (interface{}, error) {
		loads++
		return &Snapshot{}, nil
	}

	var snap Snapshot
	require.NoError(t, cache.FetchJSON(ctx, key, &snap, loader))
	require.NoError(t, cache.Bump(ctx))

	newKey, err := cache.BuildKey(ctx, keySnapshot()...)
	require.NoError(t, err)
	assert.NotEqual(t, key, newKey)

	require.NoError(t, cache.FetchJSON(ctx, newKey, &snap, loader))
	assert.Equal(t, 2, loads)
}

func TestCacheNilClientFallsThrough(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, keySnapshot()...)
	require.NoError(t, err)
	assert.Equal(t, "catalog:snapshot", key)

	var snap Snapshot
	err = cache.FetchJSON(ctx, key, &snap, func(context.Context) (interface{}, error) {
		return &Snapshot{Departments: []Department{{ID: 2, Code: "KB"}}}, nil
	})
	require.NoError(t, err)
	require.Len(t, snap.Departments, 1)
}
