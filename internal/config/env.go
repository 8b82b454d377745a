package config

import (
	"fmt"
	"strconv"
	"time"
)

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("APP_ENV", &cfg.Env)
	str("HTTP_ADDR", &cfg.HTTP.Addr)
	str("APP_JWT_SECRET", &cfg.Auth.Secret)
	str("DB_HOST", &cfg.Database.Host)
	str("DB_PORT", &cfg.Database.Port)
	str("DB_NAME", &cfg.Database.Name)
	str("DB_USER", &cfg.Database.User)
	str("DB_PASSWORD", &cfg.Database.Password)
	str("DB_SSLMODE", &cfg.Database.SSLMode)
	str("ESI_BASE_URL", &cfg.ESI.BaseURL)
	str("ESI_TOKEN", &cfg.ESI.Token)
	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	str("LOG_LEVEL", &cfg.Log.Level)

	if v, ok := lookup("ESI_CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse ESI_CACHE_TTL: %w", err)
		}
		cfg.ESI.CacheTTL = d
	}

	if v, ok := lookup("REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}

	return nil
}
