package ports

import (
	"context"
	"ev-trip-service/internal/domain"
)

// Key/value store for resolved place names. Keys are normalized by the caller.
type GeocodeCache interface {
	Get(ctx context.Context, key string) (domain.GeocodeResult, bool, error)
	Put(ctx context.Context, key string, result domain.GeocodeResult) error
}

// Key/value store for computed routes.
type RouteCache interface {
	Get(ctx context.Context, key string) (domain.Route, bool, error)
	Put(ctx context.Context, key string, route domain.Route) error
}
