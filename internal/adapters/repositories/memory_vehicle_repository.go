package repositories

import (
	"context"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/ports"
	"sort"
)

// In-memory VehicleRepository used when no database is configured.
type MemoryVehicleRepository struct {
	vehicles []domain.Vehicle
	byID     map[string]domain.Vehicle
}

func NewMemoryVehicleRepository(seeds []VehicleSeed) *MemoryVehicleRepository {
	r := &MemoryVehicleRepository{byID: make(map[string]domain.Vehicle, len(seeds))}
	for _, s := range seeds {
		v := domain.Vehicle{
			ID:             s.VehicleID,
			Model:          s.Model,
			BatteryKWh:     s.BatteryKWh,
			ClaimedRangeKm: s.ClaimedRangeKm,
		}
		r.vehicles = append(r.vehicles, v)
		r.byID[v.ID] = v
	}

	sort.SliceStable(r.vehicles, func(i, j int) bool {
		if r.vehicles[i].Model != r.vehicles[j].Model {
			return r.vehicles[i].Model < r.vehicles[j].Model
		}
		return r.vehicles[i].BatteryKWh < r.vehicles[j].BatteryKWh
	})
	return r
}

func (m *MemoryVehicleRepository) ListVehicles(context.Context) ([]domain.Vehicle, error) {
	return append([]domain.Vehicle(nil), m.vehicles...), nil
}

func (m *MemoryVehicleRepository) GetVehicle(_ context.Context, id string) (domain.Vehicle, error) {
	v, ok := m.byID[id]
	if !ok {
		return domain.Vehicle{}, ports.ErrVehicleNotFound
	}
	return v, nil
}
