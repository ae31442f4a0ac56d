package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/blendora/backend/internal/catalog"
)

// ErrCacheMiss is returned by a SnapshotCache holding no snapshot.
var ErrCacheMiss = errors.New("catalog snapshot not cached")

const (
	snapshotKeyPrefix = "catalog:snapshot:"
	versionKey        = "catalog:version"
)

// SnapshotCache stores catalog snapshots keyed by catalog version.
//
// A snapshot is written under the version read before it was loaded, so a
// write racing an Invalidate lands under a version no reader asks for.
type SnapshotCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64) (catalog.Snapshot, error)
	Set(ctx context.Context, version int64, snap catalog.Snapshot) error
	// Invalidate moves the catalog to a new version.
	Invalidate(ctx context.Context) error
}

// RedisSnapshotCache keeps snapshots as JSON documents in Redis
type RedisSnapshotCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisSnapshotCache creates a cache expiring entries after ttl
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{redis: client, ttl: ttl}
}

func snapshotKey(version int64) string {
	return snapshotKeyPrefix + strconv.FormatInt(version, 10)
}

// Version returns the current catalog version, zero when none was recorded
func (c *RedisSnapshotCache) Version(ctx context.Context) (int64, error) {
	version, err := c.redis.Get(ctx, versionKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get catalog version from Redis: %w", err)
	}
	return version, nil
}

// Get loads the snapshot cached for version
func (c *RedisSnapshotCache) Get(ctx context.Context, version int64) (catalog.Snapshot, error) {
	data, err := c.redis.Get(ctx, snapshotKey(version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return catalog.Snapshot{}, ErrCacheMiss
		}
		return catalog.Snapshot{}, fmt.Errorf("failed to get snapshot from Redis: %w", err)
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// Set stores the snapshot under version
func (c *RedisSnapshotCache) Set(ctx context.Context, version int64, snap catalog.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.redis.Set(ctx, snapshotKey(version), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot to Redis: %w", err)
	}
	return nil
}

// Invalidate bumps the catalog version. Snapshots cached under older
// versions are never read again and expire with their TTL.
func (c *RedisSnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("failed to bump catalog version in Redis: %w", err)
	}
	return nil
}
