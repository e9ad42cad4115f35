package bootstrap

import (
	"context"
	"log/slog"

	"table-concierge/internal/infra/db"
	"table-concierge/internal/infra/kvstore"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/config"
	"table-concierge/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStore,
	),
)

// NewStore opens the document store selected by STORE_DRIVER.
func NewStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (shared.Store, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory document store; data is lost on restart")
		return kvstore.NewMemoryStore(clk), nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return kvstore.NewPostgresStore(pool, logger), nil
}
