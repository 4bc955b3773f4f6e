package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/piresc/fleetsim/internal/pkg/constants"
	"github.com/piresc/fleetsim/internal/pkg/database"
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
)

// RouteCache keeps routes keyed by (cell, offset). Entries never change once
// stored. An optional Redis store shares reachable routes across runs.
type RouteCache struct {
	local  *lru.Cache[models.RouteCacheKey, models.Route]
	redis  *database.RedisClient
	logger *logger.ZapLogger
}

// NewRouteCache creates a cache holding up to size routes in memory.
// redisClient may be nil.
func NewRouteCache(size int, redisClient *database.RedisClient, log *logger.ZapLogger) (*RouteCache, error) {
	local, err := lru.New[models.RouteCacheKey, models.Route](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create route cache: %w", err)
	}
	return &RouteCache{local: local, redis: redisClient, logger: log}, nil
}

// GetOrCompute returns the cached route for key, computing and storing it on
// a miss. Concurrent misses on the same key may compute twice; the first
// stored value wins.
func (c *RouteCache) GetOrCompute(ctx context.Context, key models.RouteCacheKey,
	compute func(ctx context.Context) (models.Route, error)) (models.Route, error) {
	if route, ok := c.local.Get(key); ok {
		return copyRoute(route), nil
	}

	if route, ok := c.loadRemote(ctx, key); ok {
		c.local.PeekOrAdd(key, route)
		return copyRoute(route), nil
	}

	route, err := compute(ctx)
	if err != nil {
		return models.Route{}, err
	}

	if previous, ok, _ := c.local.PeekOrAdd(key, route); ok {
		return copyRoute(previous), nil
	}
	c.storeRemote(ctx, key, route)
	return copyRoute(route), nil
}

// Len returns the number of routes held in memory
func (c *RouteCache) Len() int {
	return c.local.Len()
}

func (c *RouteCache) loadRemote(ctx context.Context, key models.RouteCacheKey) (models.Route, bool) {
	if c.redis == nil {
		return models.Route{}, false
	}

	data, err := c.redis.Get(ctx, redisKey(key))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read route from redis", logger.String("key", redisKey(key)), logger.Err(err))
		}
		return models.Route{}, false
	}

	var route models.Route
	if err := json.Unmarshal(data, &route); err != nil {
		c.logger.Warn("Discarding malformed cached route", logger.String("key", redisKey(key)), logger.Err(err))
		return models.Route{}, false
	}
	return route, true
}

// storeRemote persists reachable routes only; an infinite trip time has no
// JSON form
func (c *RouteCache) storeRemote(ctx context.Context, key models.RouteCacheKey, route models.Route) {
	if c.redis == nil || !route.Reachable() {
		return
	}

	data, err := json.Marshal(route)
	if err != nil {
		c.logger.Warn("Failed to encode route", logger.String("key", redisKey(key)), logger.Err(err))
		return
	}
	if err := c.redis.Set(ctx, redisKey(key), data, constants.RouteCacheTTL); err != nil {
		c.logger.Warn("Failed to store route in redis", logger.String("key", redisKey(key)), logger.Err(err))
	}
}

func redisKey(key models.RouteCacheKey) string {
	return fmt.Sprintf(constants.KeyRouteCache, key.Cell.X, key.Cell.Y, key.Offset.DX, key.Offset.DY)
}

func copyRoute(r models.Route) models.Route {
	r.Trajectory = append([]models.Location(nil), r.Trajectory...)
	return r
}
