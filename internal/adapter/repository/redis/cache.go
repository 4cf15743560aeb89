package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "hausledger:cache:"

// Cache implements usecase.Cache on Redis. Values are stored under a
// shared prefix so cached read models can be inspected and flushed
// independently of idempotency keys.
type Cache struct {
	client *redis.Client
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get retrieves a value by key. A missing key returns found=false
// without an error.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, cachePrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, cachePrefix+key, value, ttl).Err()
}

// Delete removes the given keys in one round trip.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, cachePrefix+key)
	}

	return c.client.Del(ctx, full...).Err()
}
