package cache

import (
	"context"
	"errors"
	"ev-trip-service/internal/adapters/geocode"
	"ev-trip-service/internal/adapters/mock"
	"ev-trip-service/internal/domain"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCachingGeocoderServesRepeatLookupsFromCache(t *testing.T) {
	inner := mock.NewGeocoder(map[string]domain.GeocodeResult{
		"Pune": {Coordinate: domain.Coordinate{Lat: 18.52, Lng: 73.85}, DisplayName: "Pune"},
	})
	g, err := NewCachingGeocoder(inner, NewMemoryCache(time.Hour).Geocodes())
	if err != nil {
		t.Fatalf("new caching geocoder: %v", err)
	}

	for i := 0; i < 3; i++ {
		res, err := g.Geocode(context.Background(), "Pune")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.DisplayName != "Pune" {
			t.Fatalf("display name = %q", res.DisplayName)
		}
	}

	if inner.Calls("Pune") != 1 {
		t.Fatalf("expected 1 upstream call, got %d", inner.Calls("Pune"))
	}

	// Keys are normalized, so spacing and case variants hit the same entry.
	if _, err := g.Geocode(context.Background(), "  pune "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.Calls("  pune ") != 0 {
		t.Fatal("normalized variant should be served from cache")
	}
}

func TestCachingGeocoderDoesNotCacheFailures(t *testing.T) {
	inner := mock.NewGeocoder(map[string]domain.GeocodeResult{})
	g, _ := NewCachingGeocoder(inner, NewMemoryCache(time.Hour).Geocodes())

	for i := 0; i < 2; i++ {
		_, err := g.Geocode(context.Background(), "Atlantis")
		var nf *geocode.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	}
	if inner.Calls("Atlantis") != 2 {
		t.Fatalf("failures must not be cached; upstream calls = %d", inner.Calls("Atlantis"))
	}
}

func TestCachingRouter(t *testing.T) {
	inner := mock.NewRouter(domain.Route{
		Polyline:   []domain.Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}},
		DistanceKm: 300,
	})
	_, client := newTestRedis(t)
	r, err := NewCachingRouter(inner, NewRedisRouteCache(client, time.Hour))
	if err != nil {
		t.Fatalf("new caching router: %v", err)
	}

	a := domain.Coordinate{Lat: 1, Lng: 2}
	b := domain.Coordinate{Lat: 3, Lng: 4}
	for i := 0; i < 2; i++ {
		got, err := r.Route(context.Background(), a, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.DistanceKm != 300 || len(got.Polyline) != 2 {
			t.Fatalf("route = %+v", got)
		}
	}
	if inner.Calls() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", inner.Calls())
	}

	// Reverse direction is a different route.
	if _, err := r.Route(context.Background(), b, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.Calls() != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", inner.Calls())
	}
}

func TestMemoryRouteCacheCopiesPolyline(t *testing.T) {
	c := NewMemoryCache(time.Hour).Routes()
	ctx := context.Background()

	route := domain.Route{Polyline: []domain.Coordinate{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}}
	_ = c.Put(ctx, "k", route)
	route.Polyline[0].Lat = 99

	got, ok, _ := c.Get(ctx, "k")
	if !ok || got.Polyline[0].Lat != 1 {
		t.Fatalf("cached polyline was mutated: %+v", got.Polyline)
	}
}

// gatedGeocoder blocks every lookup until release is closed.
type gatedGeocoder struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
}

func newGatedGeocoder() *gatedGeocoder {
	return &gatedGeocoder{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedGeocoder) Geocode(ctx context.Context, placeText string) (domain.GeocodeResult, error) {
	g.calls.Add(1)
	g.once.Do(func() { close(g.started) })

	select {
	case <-g.release:
		return domain.GeocodeResult{Coordinate: domain.Coordinate{Lat: 18.52, Lng: 73.85}, DisplayName: placeText}, nil
	case <-ctx.Done():
		return domain.GeocodeResult{}, ctx.Err()
	}
}

func TestCachingGeocoderCancelledCallerDoesNotFailOthers(t *testing.T) {
	inner := newGatedGeocoder()
	g, err := NewCachingGeocoder(inner, NewMemoryCache(time.Hour).Geocodes())
	if err != nil {
		t.Fatalf("new caching geocoder: %v", err)
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := g.Geocode(ctxA, "Pune")
		errA <- err
	}()
	<-inner.started

	type result struct {
		res domain.GeocodeResult
		err error
	}
	resB := make(chan result, 1)
	go func() {
		res, err := g.Geocode(context.Background(), "Pune")
		resB <- result{res, err}
	}()

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller err = %v, want context.Canceled", err)
	}

	// let the second caller join the in-flight lookup before it completes
	time.Sleep(50 * time.Millisecond)
	close(inner.release)

	select {
	case r := <-resB:
		if r.err != nil {
			t.Fatalf("second caller err = %v, want success", r.err)
		}
		if r.res.DisplayName != "Pune" {
			t.Fatalf("display name = %q", r.res.DisplayName)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not return")
	}

	if n := inner.calls.Load(); n != 1 {
		t.Fatalf("expected 1 shared upstream call, got %d", n)
	}
}
