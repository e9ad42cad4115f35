package bootstrap

import (
	"time"

	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewQueueLocation,
		clock.NewRealClock,
	),
)

// NewQueueLocation is the restaurant-local timezone that decides "today".
func NewQueueLocation(cfg config.Config) *time.Location {
	return cfg.Queue.Location()
}
