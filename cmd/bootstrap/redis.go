package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"table-concierge/internal/infra/cache"
	"table-concierge/internal/infra/notify"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/config"
	"table-concierge/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewBucketCache,
		NewMessageSender,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is empty.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := client.Ping(ctx).Err(); err != nil {
				// cache reads fail open; keep serving
				logger.Warn("redis ping failed", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}

func NewBucketCache(client *redis.Client, clk clock.Clock, logger *slog.Logger) shared.BucketCache {
	if client == nil {
		return cache.NewMemoryBucketCache(clk)
	}
	return cache.NewRedisBucketCache(client, logger)
}

func NewMessageSender(client *redis.Client, cfg config.Config, logger *slog.Logger) shared.MessageSender {
	if client == nil {
		return notify.NewLogSender(logger)
	}
	return notify.NewRedisPublisher(client, cfg.Redis.OutboundChannel, logger)
}
