// Package cache provides an optional Redis read-through cache for catalog
// and availability reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client with a TTL. A nil *Cache (or one built with a
// nil client) is valid and caches nothing, so callers never branch on
// whether caching is configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache. Returns nil when client is nil or ttl is not
// positive.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// Get reads a cached value into out. Returns false on miss or any decode
// trouble; cache errors never surface to callers.
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if c == nil {
		return false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

// Set stores a value, best effort.
func (c *Cache) Set(ctx context.Context, key string, val any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate drops keys, best effort.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	_ = c.client.Del(ctx, keys...).Err()
}

// WorkspacesKey is the cache key for the catalog snapshot.
func WorkspacesKey() string { return "workspaces" }

// AvailabilityKey is the cache key for a workspace's day grid.
func AvailabilityKey(workspaceID string, date time.Time) string {
	return fmt.Sprintf("availability:%s:%s", workspaceID, date.Format("2006-01-02"))
}
