// Package cache provides ports.ResultCache implementations. RedisCache is
// the production backend; InMemoryCache is a twin used in tests and local
// mode. RedisCache namespaces keys under keyPrefix; InMemoryCache stores
// the caller's keys as given.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

const keyPrefix = "roster:result:"

// RedisCache implements ports.ResultCache backed by Redis, keyed by a
// stable hash of (demand, config) computed by the caller (see
// internal/roster/application/commands.CacheKey).
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing *redis.Client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisCacheFromURL parses url (redis://...) and opens a client.
func NewRedisCacheFromURL(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parsing redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// Get implements ports.ResultCache.
func (c *RedisCache) Get(ctx context.Context, key string) (domain.RosterResult, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return domain.RosterResult{}, false, nil
	}
	if err != nil {
		return domain.RosterResult{}, false, fmt.Errorf("cache: get: %w", err)
	}

	var result domain.RosterResult
	if err := json.Unmarshal(val, &result); err != nil {
		return domain.RosterResult{}, false, fmt.Errorf("cache: decode: %w", err)
	}
	return result, true, nil
}

// Set implements ports.ResultCache.
func (c *RedisCache) Set(ctx context.Context, key string, result domain.RosterResult, ttl time.Duration) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, body, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// InMemoryCache is a mutex-guarded, map-backed ports.ResultCache for local mode and
// tests, skipping TTL enforcement (entries live for the process lifetime).
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]domain.RosterResult
}

// NewInMemoryCache builds an empty InMemoryCache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[string]domain.RosterResult)}
}

// Get implements ports.ResultCache.
func (c *InMemoryCache) Get(_ context.Context, key string) (domain.RosterResult, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.entries[key]
	return result, ok, nil
}

// Set implements ports.ResultCache.
func (c *InMemoryCache) Set(_ context.Context, key string, result domain.RosterResult, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = result
	return nil
}
