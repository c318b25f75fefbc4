package routing

import (
	"context"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/httpx"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
)

func newTestRouter(t *testing.T, h http.HandlerFunc) *OSRMRouter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	r, err := NewOSRMRouter(httpx.NewClient(5*time.Second, "test"), srv.URL)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	return r
}

func TestRouteNormalizesCoordinatesAndUnits(t *testing.T) {
	var gotPath, gotQuery string
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotQuery = req.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"geometry": {"type": "LineString", "coordinates": [[77.5946, 12.9716], [77.1, 12.6], [76.6394, 12.2958]]},
				"distance": 145600.4,
				"duration": 10830
			}]
		}`))
	})

	origin := domain.Coordinate{Lat: 12.9716, Lng: 77.5946}
	dest := domain.Coordinate{Lat: 12.2958, Lng: 76.6394}

	route, err := r.Route(context.Background(), origin, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/route/v1/driving/77.594600,12.971600;76.639400,12.295800" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "geometries=geojson&overview=full" {
		t.Errorf("query = %q", gotQuery)
	}

	if len(route.Polyline) != 3 {
		t.Fatalf("polyline length = %d, want 3", len(route.Polyline))
	}
	if route.Polyline[0] != origin {
		t.Errorf("first point = %+v, want %+v", route.Polyline[0], origin)
	}
	if route.Polyline[1] != (domain.Coordinate{Lat: 12.6, Lng: 77.1}) {
		t.Errorf("second point = %+v, want lat 12.6 lng 77.1", route.Polyline[1])
	}
	if route.DistanceKm != 146 {
		t.Errorf("distance = %d km, want 146", route.DistanceKm)
	}
	if route.DurationMinutes != 181 {
		t.Errorf("duration = %d min, want 181", route.DurationMinutes)
	}
}

func TestRouteNoRoutes(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"code": "Ok", "routes": []}`))
	})

	_, err := r.Route(context.Background(), domain.Coordinate{}, domain.Coordinate{Lat: 1, Lng: 1})
	var nr *RouteNotFoundError
	if !errors.As(err, &nr) {
		t.Fatalf("expected RouteNotFoundError, got %v", err)
	}
}

func TestRouteNoRouteStatus(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": "NoRoute", "message": "Impossible route between points"}`))
	})

	_, err := r.Route(context.Background(), domain.Coordinate{}, domain.Coordinate{Lat: 1, Lng: 1})
	var nr *RouteNotFoundError
	if !errors.As(err, &nr) {
		t.Fatalf("expected RouteNotFoundError, got %v", err)
	}
	if nr.Reason != "NoRoute" {
		t.Fatalf("reason = %q, want NoRoute", nr.Reason)
	}
}

func TestRouteServerErrorIsNotRouteNotFound(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	_, err := r.Route(context.Background(), domain.Coordinate{}, domain.Coordinate{Lat: 1, Lng: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	var nr *RouteNotFoundError
	if errors.As(err, &nr) {
		t.Fatalf("5xx must not be reported as RouteNotFoundError: %v", err)
	}
}

func TestNormalizeLineStringSwapsComponents(t *testing.T) {
	line := orb.LineString{{73.8567, 18.5204}, {-0.1278, 51.5074}}

	got := NormalizeLineString(line)
	for i, p := range line {
		if got[i].Lat != p[1] || got[i].Lng != p[0] {
			t.Errorf("point %d = %+v, want lat=%v lng=%v", i, got[i], p[1], p[0])
		}
	}

	single := NormalizeLineString(orb.LineString{{77, 12}})
	if len(single) != 2 || single[0] != single[1] {
		t.Errorf("single-point line = %+v, want duplicated point", single)
	}
}
