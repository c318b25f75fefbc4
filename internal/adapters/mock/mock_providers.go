package mock

import (
	"context"
	"ev-trip-service/internal/adapters/geocode"
	"ev-trip-service/internal/adapters/routing"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/ports"
	"fmt"
	"sync"
)

// Geocoder answers from a fixed table and counts calls per place.
type Geocoder struct {
	mu      sync.Mutex
	results map[string]domain.GeocodeResult
	calls   map[string]int
	order   []string
}

func NewGeocoder(results map[string]domain.GeocodeResult) *Geocoder {
	return &Geocoder{results: results, calls: map[string]int{}}
}

func (g *Geocoder) Geocode(ctx context.Context, placeText string) (domain.GeocodeResult, error) {
	g.mu.Lock()
	g.calls[placeText]++
	g.order = append(g.order, placeText)
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.GeocodeResult{}, err
	}

	r, ok := g.results[placeText]
	if !ok {
		return domain.GeocodeResult{}, &geocode.NotFoundError{Query: placeText, Suggestion: "Try another name"}
	}
	return r, nil
}

// Calls returns how many times placeText was geocoded.
func (g *Geocoder) Calls(placeText string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[placeText]
}

// Order returns every geocoded place in call order.
func (g *Geocoder) Order() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.order...)
}

// Router returns the same route for every request unless Err is set.
type Router struct {
	mu    sync.Mutex
	route domain.Route
	Err   error
	calls int
}

func NewRouter(route domain.Route) *Router {
	return &Router{route: route}
}

// NoRoute makes the router fail with RouteNotFoundError.
func (r *Router) NoRoute() *Router {
	r.Err = &routing.RouteNotFoundError{Reason: "NoRoute"}
	return r
}

func (r *Router) Route(ctx context.Context, origin, destination domain.Coordinate) (domain.Route, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	if r.Err != nil {
		return domain.Route{}, r.Err
	}
	route := r.route
	route.Polyline = append([]domain.Coordinate(nil), r.route.Polyline...)
	return route, nil
}

func (r *Router) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// StationDirectory serves a fixed station list; Down makes every call fail.
type StationDirectory struct {
	Stations []domain.ChargingStation
	Down     bool
	// SearchErr fails only Search, leaving Probe healthy.
	SearchErr error

	mu       sync.Mutex
	searches []ports.StationQuery
}

func (d *StationDirectory) Probe(ctx context.Context) error {
	if d.Down {
		return fmt.Errorf("station directory unreachable")
	}
	return ctx.Err()
}

func (d *StationDirectory) Search(ctx context.Context, q ports.StationQuery) ([]domain.ChargingStation, error) {
	d.mu.Lock()
	d.searches = append(d.searches, q)
	d.mu.Unlock()

	if d.Down {
		return nil, fmt.Errorf("station directory unreachable")
	}
	if d.SearchErr != nil {
		return nil, d.SearchErr
	}

	out := make([]domain.ChargingStation, len(d.Stations))
	for i, s := range d.Stations {
		s.Connections = append([]domain.Connection(nil), s.Connections...)
		out[i] = s
	}
	return out, nil
}

// Searches returns the queries received so far.
func (d *StationDirectory) Searches() []ports.StationQuery {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]ports.StationQuery(nil), d.searches...)
}
