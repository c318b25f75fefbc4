package repositories

import (
	"context"
	"database/sql"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/ports"
	"fmt"
)

// Postgres-backed implementation of the VehicleRepository port.
type PostgresVehicleRepository struct{ DB *sql.DB }

func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: db}
}

// Return all vehicles stored in the database.
func (p *PostgresVehicleRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	if p.DB == nil {
		return nil, errors.New("postgres vehicle repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		model,
		battery_kwh,
		claimed_range_km
	FROM vehicles
	ORDER BY model, battery_kwh;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 16)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Model, &v.BatteryKWh, &v.ClaimedRangeKm); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

func (p *PostgresVehicleRepository) GetVehicle(ctx context.Context, id string) (domain.Vehicle, error) {
	if p.DB == nil {
		return domain.Vehicle{}, errors.New("postgres vehicle repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		model,
		battery_kwh,
		claimed_range_km
	FROM vehicles
	WHERE vehicle_id = $1;
	`
	var v domain.Vehicle
	err := p.DB.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Model, &v.BatteryKWh, &v.ClaimedRangeKm)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vehicle{}, ports.ErrVehicleNotFound
	}
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("get vehicle %q: %w", id, err)
	}

	return v, nil
}
