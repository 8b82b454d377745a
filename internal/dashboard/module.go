package dashboard

import (
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/config"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/middleware"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(
		newCodec,
		newSigner,
		middleware.DefaultRoutes,
		newGate,
		newGuard,
		New,
		NewController,
	),
)

func newCodec(cfg *config.Config) (*session.Codec, error) {
	return session.NewCodec(cfg.Auth.Secret)
}

func newSigner(c *session.Codec) Signer {
	return c
}

func newGate(c *session.Codec, routes middleware.Routes, log *zap.Logger) *middleware.Gate {
	return middleware.NewGate(c, routes, log.Named("gate"))
}

func newGuard(c *session.Codec) *middleware.Guard {
	return middleware.NewGuard(c)
}
