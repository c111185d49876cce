package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores raw catalog payloads for a limited time.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type redisCache struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisCache(redisClient *redis.Client, keyPrefix string) Cache {
	return &redisCache{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.redisClient.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached payload %s: %w", key, err)
	}

	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.redisClient.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache payload %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.redisClient.Ping(ctx).Err()
}

type nopCache struct{}

// NewNopCache returns a cache that never stores anything.
func NewNopCache() Cache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (nopCache) Ping(context.Context) error { return nil }
