package ports

import (
	"context"
	"ev-trip-service/internal/domain"
)

// Contract for retrieving a driving route between two coordinates.
type Router interface {
	// Return the polyline, distance and duration from origin to destination.
	Route(ctx context.Context, origin, destination domain.Coordinate) (domain.Route, error)
}
