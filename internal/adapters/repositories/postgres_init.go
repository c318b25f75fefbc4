package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema used by the trip service.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id TEXT PRIMARY KEY,
		model TEXT NOT NULL,
		battery_kwh DOUBLE PRECISION NOT NULL CHECK (battery_kwh > 0),
		claimed_range_km DOUBLE PRECISION NOT NULL CHECK (claimed_range_km > 0)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        place TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lng DOUBLE PRECISION NOT NULL,
        display_name TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	statements := []string{
		createVehiclesQuery,
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type VehicleSeed struct {
	VehicleID      string  `json:"vehicle_id"`
	Model          string  `json:"model"`
	BatteryKWh     float64 `json:"battery_kwh"`
	ClaimedRangeKm float64 `json:"claimed_range_km"`
}

// LoadVehicleSeeds reads and validates the vehicle catalog JSON file.
func LoadVehicleSeeds(jsonPath string) ([]VehicleSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load vehicle seeds: read %q: %w", jsonPath, err)
	}

	var data []VehicleSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load vehicle seeds: parse json: %w", err)
	}

	rows := make([]VehicleSeed, 0, len(data))
	seen := make(map[string]struct{}, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.VehicleID)
		if id == "" {
			return nil, fmt.Errorf("load vehicle seeds: item at index %d: vehicle_id cannot be empty", i+1)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("load vehicle seeds: duplicate vehicle_id %q", id)
		}
		seen[id] = struct{}{}

		model := strings.TrimSpace(item.Model)
		if model == "" {
			return nil, fmt.Errorf("load vehicle seeds: %q: model cannot be empty", id)
		}
		if item.BatteryKWh <= 0 || item.ClaimedRangeKm <= 0 {
			return nil, fmt.Errorf("load vehicle seeds: %q: battery and range must be positive", id)
		}

		rows = append(rows, VehicleSeed{
			VehicleID:      id,
			Model:          model,
			BatteryKWh:     item.BatteryKWh,
			ClaimedRangeKm: item.ClaimedRangeKm,
		})
	}

	return rows, nil
}

// Populate the vehicles table from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	rows, err := LoadVehicleSeeds(jsonPath)
	if err != nil {
		return fmt.Errorf("seed vehicles: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed vehicles: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO vehicles (
		vehicle_id,
		model,
		battery_kwh,
		claimed_range_km
	)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (vehicle_id) DO UPDATE
	SET model = EXCLUDED.model,
		battery_kwh = EXCLUDED.battery_kwh,
		claimed_range_km = EXCLUDED.claimed_range_km;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed vehicles: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range rows {
		if _, err := stmt.ExecContext(ctx, v.VehicleID, v.Model, v.BatteryKWh, v.ClaimedRangeKm); err != nil {
			return fmt.Errorf("seed vehicles: insert vehicle_id=%q: %w", v.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed vehicles: commit tx: %w", err)
	}

	return nil
}
