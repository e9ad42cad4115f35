package components

import (
	"table-concierge/internal/infra/directory"
	"table-concierge/internal/usecase/shared"

	"go.uber.org/fx"
)

// RepositoryModule exposes the document-backed directory under each read
// port the usecases depend on.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			directory.New,
			fx.As(new(shared.LocationDirectory)),
			fx.As(new(shared.GuestDirectory)),
			fx.As(new(shared.AccountDirectory)),
			fx.As(new(shared.SubscriptionDirectory)),
		),
	),
)
