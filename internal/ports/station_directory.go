package ports

import (
	"context"
	"ev-trip-service/internal/domain"
)

// A circular station directory query.
type StationQuery struct {
	Center     domain.Coordinate
	RadiusKm   float64
	MaxResults int
}

// Port: the live charging-station directory.
type StationDirectory interface {
	// Probe issues a trivial query to check that the directory is reachable.
	Probe(ctx context.Context) error
	// Search returns stations inside the query circle.
	Search(ctx context.Context, q StationQuery) ([]domain.ChargingStation, error)
}
