package esi

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

// New returns the vendor client, behind the Redis cache when both a
// Redis address and a cache TTL are configured.
func New(p Params) (Source, error) {
	log := p.Log.Named("esi")
	client := NewClient(ClientConfig{
		BaseURL: p.Config.ESI.BaseURL,
		Token:   p.Config.ESI.Token,
	}, log)

	if p.Config.Redis.Addr == "" || p.Config.ESI.CacheTTL <= 0 {
		return client, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     p.Config.Redis.Addr,
		Password: p.Config.Redis.Password,
		DB:       p.Config.Redis.DB,
	})
	p.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	log.Info("esi snapshot cache enabled", zap.Duration("ttl", p.Config.ESI.CacheTTL))
	return NewCachedSource(client, rdb, p.Config.ESI.CacheTTL, log), nil
}
