package cache

import (
	"context"
	"ev-trip-service/internal/domain"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process TTL cache used when no database or Redis is
// configured. It satisfies both GeocodeCache and RouteCache.
type MemoryCache struct {
	geocodes *gocache.Cache
	routes   *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		geocodes: gocache.New(ttl, 2*ttl),
		routes:   gocache.New(ttl, 2*ttl),
	}
}

// Geocodes exposes the geocode half of the cache.
func (m *MemoryCache) Geocodes() *MemoryGeocodeCache { return &MemoryGeocodeCache{c: m.geocodes} }

// Routes exposes the route half of the cache.
func (m *MemoryCache) Routes() *MemoryRouteCache { return &MemoryRouteCache{c: m.routes} }

type MemoryGeocodeCache struct{ c *gocache.Cache }

func (m *MemoryGeocodeCache) Get(_ context.Context, key string) (domain.GeocodeResult, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return domain.GeocodeResult{}, false, nil
	}
	return v.(domain.GeocodeResult), true, nil
}

func (m *MemoryGeocodeCache) Put(_ context.Context, key string, res domain.GeocodeResult) error {
	m.c.SetDefault(key, res)
	return nil
}

type MemoryRouteCache struct{ c *gocache.Cache }

func (m *MemoryRouteCache) Get(_ context.Context, key string) (domain.Route, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return domain.Route{}, false, nil
	}
	r := v.(domain.Route)
	r.Polyline = append([]domain.Coordinate(nil), r.Polyline...)
	return r, true, nil
}

func (m *MemoryRouteCache) Put(_ context.Context, key string, r domain.Route) error {
	r.Polyline = append([]domain.Coordinate(nil), r.Polyline...)
	m.c.SetDefault(key, r)
	return nil
}
