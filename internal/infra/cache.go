package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dashboardGenKey = "dashboard:gen"

// DashboardCache stores dashboard responses in Redis under a generation
// number. Invalidar bumps the generation, so stale entries are never read
// again and expire on their own TTL.
type DashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDashboardCache(rdb *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{rdb: rdb, ttl: ttl}
}

func (c *DashboardCache) generacion(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, dashboardGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return gen, nil
}

func claveGeneracion(gen int64, k string) string {
	return fmt.Sprintf("dashboard:%d:%s", gen, k)
}

// Get decodes a cached entry into dst and returns the generation it looked
// under. Any Redis error counts as a miss; gen is negative when the
// generation itself could not be read.
func (c *DashboardCache) Get(ctx context.Context, k string, dst interface{}) (gen int64, ok bool) {
	if c == nil || c.ttl <= 0 {
		return -1, false
	}
	gen, err := c.generacion(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("dashboard cache: get")
		return -1, false
	}
	raw, err := c.rdb.Get(ctx, claveGeneracion(gen, k)).Bytes()
	if err != nil {
		return gen, false
	}
	return gen, json.Unmarshal(raw, dst) == nil
}

// Set stores v under the generation returned by the Get that missed. A write
// that happened in between has bumped the generation, so the entry is never
// read.
func (c *DashboardCache) Set(ctx context.Context, gen int64, k string, v interface{}) {
	if c == nil || c.ttl <= 0 || gen < 0 {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	key := claveGeneracion(gen, k)
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("dashboard cache: set")
	}
}

func (c *DashboardCache) Invalidar(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Incr(ctx, dashboardGenKey).Err(); err != nil {
		log.Warn().Err(err).Msg("dashboard cache: no se pudo invalidar")
	}
}
