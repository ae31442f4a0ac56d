package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/blendora/backend/internal/catalog"
	"github.com/pageza/blendora/backend/internal/service"
	"github.com/pageza/blendora/backend/internal/testhelpers"
)

func TestRedisSnapshotCache(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	cache := service.NewRedisSnapshotCache(client, time.Minute)
	ctx := context.Background()

	version, err := cache.Version(ctx)
	require.NoError(t, err)
	assert.Zero(t, version)

	_, err = cache.Get(ctx, version)
	assert.ErrorIs(t, err, service.ErrCacheMiss)

	snap := catalog.Snapshot{Entries: []catalog.Entry{
		catalog.NewEntry(uuid.New(), "Berry Shield", true,
			[]string{"Strawberry", "Blueberry"}, map[string]int{"Immunity": 5}),
	}}
	require.NoError(t, cache.Set(ctx, version, snap))

	got, err := cache.Get(ctx, version)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	ttl, err := client.TTL(ctx, "catalog:snapshot:0").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, cache.Invalidate(ctx))
	version, err = cache.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	_, err = cache.Get(ctx, version)
	assert.ErrorIs(t, err, service.ErrCacheMiss)

	// A write still carrying the old version is never read back.
	require.NoError(t, cache.Set(ctx, 0, snap))
	_, err = cache.Get(ctx, version)
	assert.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestRedisSnapshotCacheUnreachable(t *testing.T) {
	cache := service.NewRedisSnapshotCache(testhelpers.UnreachableRedis(t), time.Minute)
	ctx := context.Background()

	_, err := cache.Version(ctx)
	require.Error(t, err)

	_, err = cache.Get(ctx, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrCacheMiss)
}
