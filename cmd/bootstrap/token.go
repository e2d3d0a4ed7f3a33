package bootstrap

import (
	"bookswap/internal/pkg/config"
	"bookswap/internal/pkg/qrtoken"

	"go.uber.org/fx"
)

var TokenModule = fx.Module("token",
	fx.Provide(
		NewTokenService,
	),
)

func NewTokenService(cfg config.Config) *qrtoken.Service {
	return qrtoken.NewService(cfg.Token.Secret, cfg.Token.TTL)
}
