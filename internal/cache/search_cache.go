package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when no cached value exists for a key.
var ErrCacheMiss = errors.New("cache miss")

const keyPrefix = "search:"

// SearchCache stores search results keyed by query fingerprint. A nil client
// disables caching: reads always miss and writes are dropped.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSearchCache constructs a search cache.
func NewSearchCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SearchCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchCache{client: client, ttl: ttl, logger: logger}
}

// Enabled reports whether a backing client is configured.
func (c *SearchCache) Enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Key namespaces a fingerprint under its collection so writes can invalidate it.
func Key(collection, fingerprint string) string {
	return keyPrefix + collection + ":" + fingerprint
}

// Get retrieves and unmarshals the cached value into dest.
func (c *SearchCache) Get(ctx context.Context, key string, dest any) error {
	if !c.Enabled() {
		return ErrCacheMiss
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set marshals value and stores it with the configured TTL.
func (c *SearchCache) Set(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops every cached result for a collection. Failures are logged,
// not returned: a stale entry expires on its own.
func (c *SearchCache) Invalidate(ctx context.Context, collection string) {
	if !c.Enabled() {
		return
	}

	pattern := keyPrefix + collection + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := c.client.Del(ctx, key).Err(); err != nil {
			c.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
