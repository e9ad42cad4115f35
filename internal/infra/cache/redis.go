package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"table-concierge/internal/infra"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "concierge:bucket:"

// RedisBucketCache stores serialized bucket views with a TTL.
type RedisBucketCache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisBucketCache(client *redis.Client, logger *slog.Logger) *RedisBucketCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisBucketCache{client: client, logger: logger}
}

func (c *RedisBucketCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, infra.WrapRepoErr(c.logger, infra.KindDBFailure, "failed to read bucket cache", err)
	}
	return b, true, nil
}

func (c *RedisBucketCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindDBFailure, "failed to write bucket cache", err)
	}
	return nil
}

func (c *RedisBucketCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindDBFailure, "failed to invalidate bucket cache", err)
	}
	return nil
}
