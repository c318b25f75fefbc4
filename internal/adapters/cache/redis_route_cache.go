package cache

import (
	"context"
	"encoding/json"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/obs"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const routeKeyPrefix = "route:"

// RedisRouteCache stores computed routes as JSON with a TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: ttl}
}

type cachedRoute struct {
	Polyline        [][2]float64 `json:"polyline"`
	DistanceKm      int          `json:"distance_km"`
	DurationMinutes int          `json:"duration_minutes"`
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.client == nil {
		return domain.Route{}, false, errors.New("route cache: redis client is nil")
	}

	raw, err := c.client.Get(ctx, routeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Route{}, false, nil
	}
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(raw, &cr); err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache: decode: %w", err)
	}

	r := domain.Route{
		Polyline:        make([]domain.Coordinate, 0, len(cr.Polyline)),
		DistanceKm:      cr.DistanceKm,
		DurationMinutes: cr.DurationMinutes,
	}
	for _, p := range cr.Polyline {
		r.Polyline = append(r.Polyline, domain.Coordinate{Lat: p[0], Lng: p[1]})
	}
	return r, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, r domain.Route) error {
	if c.client == nil {
		return errors.New("route cache: redis client is nil")
	}

	cr := cachedRoute{
		Polyline:        make([][2]float64, 0, len(r.Polyline)),
		DistanceKm:      r.DistanceKm,
		DurationMinutes: r.DurationMinutes,
	}
	for _, p := range r.Polyline {
		cr.Polyline = append(cr.Polyline, [2]float64{p.Lat, p.Lng})
	}

	payload, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("put route cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, routeKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}
	return nil
}
