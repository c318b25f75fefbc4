package ports

import (
	"context"
	"errors"
	"ev-trip-service/internal/domain"
)

// ErrVehicleNotFound is returned when a catalog lookup misses.
var ErrVehicleNotFound = errors.New("vehicle not found")

// Port: a boundary for retrieving vehicle profiles from the catalog.
type VehicleRepository interface {
	// Retrieve all vehicles ordered by model.
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	// Retrieve one vehicle by id, or ErrVehicleNotFound.
	GetVehicle(ctx context.Context, id string) (domain.Vehicle, error)
}
