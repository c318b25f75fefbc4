package services

import (
	"context"
	"errors"
	"ev-trip-service/internal/adapters/mock"
	"ev-trip-service/internal/domain"
	"math"
	"testing"
	"time"
)

func straightRoute(points int) domain.Route {
	poly := make([]domain.Coordinate, points)
	for i := range poly {
		poly[i] = domain.Coordinate{Lat: 12.0, Lng: 77.0 + 0.5*float64(i)/float64(points-1)}
	}
	return domain.Route{Polyline: poly, DistanceKm: 54, DurationMinutes: 60}
}

func stationAt(id string, lat, lng float64) domain.ChargingStation {
	s := fastStation(id, 50)
	s.Coordinate = domain.Coordinate{Lat: lat, Lng: lng}
	return s
}

func TestFindStationsNearRouteLive(t *testing.T) {
	dir := &mock.StationDirectory{Stations: []domain.ChargingStation{
		stationAt("off-corridor", 12.05, 77.25),
		stationAt("on-route", 12.0, 77.0),
		stationAt("far", 13.0, 77.25),
		stationAt("edge", 12.1, 77.5),
	}}
	locator := NewStationLocator(dir, NewSyntheticStations(1), time.Second)

	got, degraded := locator.FindStationsNearRoute(context.Background(), straightRoute(3), 15)
	if degraded {
		t.Fatal("expected live results")
	}

	wantIDs := []string{"on-route", "off-corridor", "edge"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d stations, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("station %d = %q, want %q", i, got[i].ID, id)
		}
		if got[i].DistanceFromRouteKm == nil || *got[i].DistanceFromRouteKm > 15 {
			t.Fatalf("station %q has distance %v", id, got[i].DistanceFromRouteKm)
		}
	}
	if math.Abs(got[1].RouteDistance()-5.56) > 0.05 {
		t.Fatalf("off-corridor distance = %v, want ~5.56", got[1].RouteDistance())
	}

	searches := dir.Searches()
	if len(searches) != 1 {
		t.Fatalf("expected 1 search, got %d", len(searches))
	}
	q := searches[0]
	if q.MaxResults != 100 {
		t.Errorf("max results = %d, want 100", q.MaxResults)
	}
	if q.RadiusKm < 50 {
		t.Errorf("radius = %v, want >= 50", q.RadiusKm)
	}
	if math.Abs(q.Center.Lat-12.0) > 1e-9 || math.Abs(q.Center.Lng-77.25) > 1e-9 {
		t.Errorf("center = %+v, want (12, 77.25)", q.Center)
	}
}

func TestFindStationsNearRouteIsDeterministic(t *testing.T) {
	dir := &mock.StationDirectory{Stations: []domain.ChargingStation{
		stationAt("a", 12.02, 77.1),
		stationAt("b", 12.02, 77.3),
		stationAt("c", 11.98, 77.2),
	}}
	locator := NewStationLocator(dir, nil, time.Second)
	route := straightRoute(20)

	first, _ := locator.FindStationsNearRoute(context.Background(), route, 15)
	second, _ := locator.FindStationsNearRoute(context.Background(), route, 15)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].RouteDistance() != second[i].RouteDistance() {
			t.Fatalf("result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFindStationsNearRouteEmptyLiveResult(t *testing.T) {
	locator := NewStationLocator(&mock.StationDirectory{}, NewSyntheticStations(1), time.Second)

	got, degraded := locator.FindStationsNearRoute(context.Background(), straightRoute(3), 15)
	if degraded {
		t.Fatal("an empty live result must not trigger degraded mode")
	}
	if len(got) != 0 {
		t.Fatalf("expected no stations, got %d", len(got))
	}
}

func TestFindStationsNearRouteDegraded(t *testing.T) {
	tests := map[string]*mock.StationDirectory{
		"directory down": {Down: true},
		"search fails":   {SearchErr: errors.New("bad payload")},
	}

	for name, dir := range tests {
		t.Run(name, func(t *testing.T) {
			locator := NewStationLocator(dir, NewSyntheticStations(42), time.Second)

			got, degraded := locator.FindStationsNearRoute(context.Background(), straightRoute(120), 15)
			if !degraded {
				t.Fatal("expected degraded mode")
			}
			if len(got) < 3 || len(got) > 5 {
				t.Fatalf("expected 3-5 stations, got %d", len(got))
			}
			for i, s := range got {
				if !s.Operational {
					t.Fatalf("station %d not operational", i)
				}
				if s.RouteDistance() >= 15 {
					t.Fatalf("station %d distance %v not below corridor", i, s.RouteDistance())
				}
				if i > 0 && s.RouteDistance() < got[i-1].RouteDistance() {
					t.Fatalf("stations not sorted at %d", i)
				}
			}
		})
	}
}

func TestFindStationsNearRouteWithoutFallback(t *testing.T) {
	locator := NewStationLocator(&mock.StationDirectory{Down: true}, nil, time.Second)

	got, degraded := locator.FindStationsNearRoute(context.Background(), straightRoute(3), 15)
	if !degraded {
		t.Fatal("expected degraded flag")
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", got)
	}
}

func TestSyntheticStationsSeeded(t *testing.T) {
	route := straightRoute(300)

	a := NewSyntheticStations(7).Stations(route, 15)
	b := NewSyntheticStations(7).Stations(route, 15)

	if len(a) != 5 {
		t.Fatalf("expected 5 stations for a long polyline, got %d", len(a))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Coordinate != b[i].Coordinate || a[i].RouteDistance() != b[i].RouteDistance() {
			t.Fatalf("seeded output differs at %d", i)
		}
		if a[i].MaxPowerKW() != 22 && a[i].MaxPowerKW() != 50 && a[i].MaxPowerKW() != 150 {
			t.Fatalf("unexpected power %v", a[i].MaxPowerKW())
		}
	}
}

func TestSyntheticStationsCount(t *testing.T) {
	s := NewSyntheticStations(3)
	tests := []struct {
		points int
		want   int
	}{
		{points: 2, want: 3},
		{points: 200, want: 4},
		{points: 1000, want: 5},
	}

	for _, tt := range tests {
		if got := len(s.Stations(straightRoute(tt.points), 15)); got != tt.want {
			t.Errorf("points=%d: got %d stations, want %d", tt.points, got, tt.want)
		}
	}

	if got := s.Stations(domain.Route{}, 15); len(got) != 0 {
		t.Errorf("empty route: got %d stations, want 0", len(got))
	}
}
