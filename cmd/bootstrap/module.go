package bootstrap

import (
	"bookswap/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	TokenModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
