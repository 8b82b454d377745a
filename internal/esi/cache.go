package esi

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"go.uber.org/zap"
)

const cacheKey = "esi:machines"

// CachedSource keeps the last machines snapshot in Redis for ttl so that
// dashboard page loads do not each hit the vendor API.
type CachedSource struct {
	next  Source
	redis redis.UniversalClient
	ttl   time.Duration
	log   *zap.Logger
}

var _ Source = (*CachedSource)(nil)

func NewCachedSource(next Source, rdb redis.UniversalClient, ttl time.Duration, log *zap.Logger) *CachedSource {
	return &CachedSource{
		next:  next,
		redis: rdb,
		ttl:   ttl,
		log:   log,
	}
}

// Machines serves from the cache when present. Cache failures are logged
// and fall through to the wrapped source.
func (c *CachedSource) Machines(ctx context.Context) (map[string]model.Machine, error) {
	raw, err := c.redis.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		machines := map[string]model.Machine{}
		if err := json.Unmarshal(raw, &machines); err == nil {
			return machines, nil
		}
		c.log.Warn("dropping corrupt esi cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn("esi cache read failed", zap.Error(err))
	}

	machines, err := c.next.Machines(ctx)
	if err != nil {
		return nil, err
	}

	raw, err = json.Marshal(machines)
	if err == nil {
		err = c.redis.Set(ctx, cacheKey, raw, c.ttl).Err()
	}
	if err != nil {
		c.log.Warn("esi cache write failed", zap.Error(err))
	}

	return machines, nil
}
