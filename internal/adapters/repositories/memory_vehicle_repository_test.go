package repositories

import (
	"context"
	"errors"
	"ev-trip-service/internal/ports"
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vehicles.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadVehicleSeedsAndMemoryRepository(t *testing.T) {
	path := writeSeed(t, `[
		{"vehicle_id": "b", "model": "Tata Nexon", "battery_kwh": 40, "claimed_range_km": 437},
		{"vehicle_id": "a", "model": "Tata Nexon", "battery_kwh": 30, "claimed_range_km": 312},
		{"vehicle_id": "c", "model": "Hyundai Kona", "battery_kwh": 39.2, "claimed_range_km": 452}
	]`)

	seeds, err := LoadVehicleSeeds(path)
	if err != nil {
		t.Fatalf("load seeds: %v", err)
	}

	repo := NewMemoryVehicleRepository(seeds)
	list, err := repo.ListVehicles(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	wantOrder := []string{"c", "a", "b"}
	for i, id := range wantOrder {
		if list[i].ID != id {
			t.Fatalf("list[%d] = %q, want %q", i, list[i].ID, id)
		}
	}

	v, err := repo.GetVehicle(context.Background(), "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v.RealRangeKm() != 187 {
		t.Fatalf("real range = %v, want 187", v.RealRangeKm())
	}

	if _, err := repo.GetVehicle(context.Background(), "zzz"); !errors.Is(err, ports.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestLoadVehicleSeedsRejectsInvalidRows(t *testing.T) {
	tests := map[string]string{
		"empty id":       `[{"vehicle_id": " ", "model": "X", "battery_kwh": 1, "claimed_range_km": 1}]`,
		"duplicate id":   `[{"vehicle_id": "a", "model": "X", "battery_kwh": 1, "claimed_range_km": 1}, {"vehicle_id": "a", "model": "Y", "battery_kwh": 1, "claimed_range_km": 1}]`,
		"zero battery":   `[{"vehicle_id": "a", "model": "X", "battery_kwh": 0, "claimed_range_km": 1}]`,
		"malformed json": `[{`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadVehicleSeeds(writeSeed(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestBundledVehicleSeedsAreValid(t *testing.T) {
	seeds, err := LoadVehicleSeeds(filepath.Join("..", "..", "..", "data", "seeds", "vehicles.json"))
	if err != nil {
		t.Fatalf("load bundled seeds: %v", err)
	}
	if len(seeds) == 0 {
		t.Fatal("bundled catalog is empty")
	}
}
