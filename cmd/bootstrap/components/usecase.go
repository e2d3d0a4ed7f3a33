package components

import (
	"bookswap/internal/gateway"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/config"
	"bookswap/internal/pkg/keymutex"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	keymutex.New,
	gateway.NewLocalGateway,
	func(cfg config.Config) config.ExchangeConfig {
		return cfg.Exchange
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookCommands,
		commands.NewExchangeCommands,
		commands.NewRewardsCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookQueries,
		queries.NewExchangeQueries,
		queries.NewRewardsQueries,
		queries.NewLeaderboardQueries,
	),
)
