package ports

import (
	"context"
	"ev-trip-service/internal/domain"
)

// Contract for resolving free-text place names to coordinates.
type Geocoder interface {
	// Resolve placeText to a single coordinate and display name.
	Geocode(ctx context.Context, placeText string) (domain.GeocodeResult, error)
}
