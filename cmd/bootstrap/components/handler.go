package components

import (
	"bookswap/internal/handler"
	"bookswap/internal/handler/api"
	"bookswap/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookHandler,
		api.NewExchangeHandler,
		api.NewRewardsHandler,
		api.NewLeaderboardHandler,
		middleware.NewIdentityMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
