package components

import (
	"table-concierge/internal/handler"
	"table-concierge/internal/handler/api"
	"table-concierge/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewMessageHandler,
		api.NewQueueHandler,
		api.NewSubscriptionHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
