package components

import (
	"log/slog"
	"time"

	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/config"
	"table-concierge/internal/usecase"
	"table-concierge/internal/usecase/access"
	"table-concierge/internal/usecase/booking"
	"table-concierge/internal/usecase/commands"
	"table-concierge/internal/usecase/conversation"
	"table-concierge/internal/usecase/flowstate"
	"table-concierge/internal/usecase/queue"
	"table-concierge/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		access.NewGate,
		NewQueueEngine,
		NewFlowRepository,
		booking.NewService,
		conversation.NewDispatcher,
		commands.NewAuthCommands,
		usecase.NewTokenValidator,
	),
)

func NewQueueEngine(
	store shared.Store,
	cache shared.BucketCache,
	gate access.Gate,
	locations shared.LocationDirectory,
	sender shared.MessageSender,
	clk clock.Clock,
	loc *time.Location,
	cfg config.Config,
	logger *slog.Logger,
) queue.Engine {
	return queue.NewEngine(store, cache, gate, locations, sender, clk, loc, cfg.Queue.CacheTTL, logger)
}

func NewFlowRepository(store shared.Store, clk clock.Clock, cfg config.Config, logger *slog.Logger) flowstate.Repository {
	return flowstate.NewRepository(store, clk, cfg.Flow.StateTTL, logger)
}
