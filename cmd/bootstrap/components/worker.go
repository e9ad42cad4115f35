package components

import (
	"context"
	"log/slog"
	"time"

	"table-concierge/internal/handler/middleware"
	"table-concierge/internal/pkg/config"
	"table-concierge/internal/usecase/booking"
	"table-concierge/internal/usecase/flowstate"

	"go.uber.org/fx"
)

const limiterCleanupInterval = time.Minute

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewFlowSweeper,
		NewRateLimitConfig,
		middleware.NewGuestRateLimiter,
	),
	fx.Invoke(
		RegisterWorkers,
	),
)

func NewFlowSweeper(repo flowstate.Repository, cfg config.Config, logger *slog.Logger) *flowstate.Sweeper {
	return flowstate.NewSweeper(repo, cfg.Flow.SweepInterval, logger)
}

func NewRateLimitConfig(cfg config.Config) config.RateLimitConfig {
	return cfg.RateLimit
}

// RegisterWorkers ties background loops to the app lifecycle. On stop the
// admin booking notifications still in flight are awaited.
func RegisterWorkers(lc fx.Lifecycle, sweeper *flowstate.Sweeper, limiter *middleware.GuestRateLimiter, bookings booking.Service, logger *slog.Logger) {
	var cancel context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			sweeper.Start(ctx)
			limiter.StartCleanup(ctx, limiterCleanupInterval)
			logger.Info("background workers started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
			}
			sweeper.Stop()
			bookings.Wait()
			logger.Info("background workers stopped")
			return nil
		},
	})
}
