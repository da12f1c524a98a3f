// File: services/intelligence/extractionCache.go
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

const extractionCachePrefix = "extract:"

// RedisExtractionCache memoizes raw extractor output keyed by a hash of the
// input content, so re-uploading the same document or replaying the same
// transcript skips the model call.
type RedisExtractionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisExtractionCache(client *redis.Client, ttl time.Duration) *RedisExtractionCache {
	return &RedisExtractionCache{client: client, ttl: ttl}
}

// ContentKey hashes arbitrary input bytes into a cache key.
func ContentKey(content []byte) string {
	sum := sha256.Sum256(content)
	return extractionCachePrefix + hex.EncodeToString(sum[:])
}

func (c *RedisExtractionCache) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

func (c *RedisExtractionCache) Set(ctx context.Context, key, raw string) error {
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
