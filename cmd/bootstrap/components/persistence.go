package components

import (
	"bookswap/internal/infra/readstore"
	"bookswap/internal/infra/uow"
	"bookswap/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork owns the write side; readstores serve queries off the pool
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewExchangeReadStore,
			fx.As(new(queries.ExchangeReadStore)),
		),
		fx.Annotate(
			readstore.NewBookReadStore,
			fx.As(new(queries.BookReadStore)),
		),
		fx.Annotate(
			readstore.NewLedgerReadStore,
			fx.As(new(queries.LedgerReadStore)),
		),
		fx.Annotate(
			readstore.NewBadgeReadStore,
			fx.As(new(queries.BadgeReadStore)),
		),
		fx.Annotate(
			readstore.NewLeaderboardReadStore,
			fx.As(new(queries.LeaderboardReadStore)),
		),
	),
)
