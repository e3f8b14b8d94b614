// Package cache is a Redis-backed response cache used by the CLI for
// read-heavy lookups (search, trending). It sits on top of the API client,
// which itself never caches.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tastebuds-client/internal/common/logger"
	"tastebuds-client/internal/common/metrics"
)

const keyPrefix = "tastebuds:cache:"

type Cache struct {
	client *redis.Client
	logger logger.Logger
	ttl    time.Duration
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration, log logger.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Cache{client: client, logger: log, ttl: ttl}, nil
}

// NewWithClient wraps an existing Redis client. Used by tests.
func NewWithClient(client *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Cache{client: client, logger: log, ttl: ttl}
}

// Key builds a namespaced cache key from a resource name and its parameters.
func Key(resource string, parts ...string) string {
	key := keyPrefix + resource
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Get decodes a cached value into out. Returns false on miss or decode
// failure; a stale entry that no longer decodes is treated as a miss.
func (c *Cache) Get(ctx context.Context, resource, key string, out interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		metrics.CacheMisses.WithLabelValues(resource).Inc()
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		metrics.CacheMisses.WithLabelValues(resource).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(resource).Inc()
	c.logger.Debug("cache hit", map[string]interface{}{"key": key})
	return true
}

// Set stores a value under the configured TTL. Failures are logged, never
// propagated; the cache is best effort.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Invalidate removes every cached entry for one resource.
func (c *Cache) Invalidate(ctx context.Context, resource string) error {
	pattern := keyPrefix + resource + ":*"
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
