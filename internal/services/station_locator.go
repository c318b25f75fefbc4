package services

import (
	"context"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/geo"
	"ev-trip-service/internal/platform/obs"
	"ev-trip-service/internal/ports"
	"fmt"
	"log"
	"time"
)

const (
	searchPadDeg      = 0.2
	minSearchRadiusKm = 50.0
	maxSearchResults  = 100
)

// StationLocator finds charging stations within a corridor around a route.
// It never fails: directory problems switch it to the fallback strategy.
type StationLocator struct {
	directory    ports.StationDirectory
	fallback     FallbackStrategy
	probeTimeout time.Duration
}

// NewStationLocator wires the live directory and the degraded-mode strategy.
// A nil fallback disables degraded mode.
func NewStationLocator(directory ports.StationDirectory, fallback FallbackStrategy, probeTimeout time.Duration) *StationLocator {
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	return &StationLocator{directory: directory, fallback: fallback, probeTimeout: probeTimeout}
}

// FindStationsNearRoute returns stations within corridorKm of the route
// ordered by distance from the route, and whether they were synthesized.
func (l *StationLocator) FindStationsNearRoute(
	ctx context.Context,
	route domain.Route,
	corridorKm float64,
) (stations []domain.ChargingStation, degraded bool) {
	stations, err := l.searchLive(ctx, route, corridorKm)
	if err == nil {
		return stations, false
	}

	log.Printf("station locator degraded req_id=%s err=%v", obs.RequestID(ctx), err)
	if l.fallback == nil {
		return []domain.ChargingStation{}, true
	}
	return l.fallback.Stations(route, corridorKm), true
}

func (l *StationLocator) searchLive(
	ctx context.Context,
	route domain.Route,
	corridorKm float64,
) (_ []domain.ChargingStation, err error) {
	defer obs.Time(ctx, "stations.near_route")(&err)

	if l.directory == nil {
		return nil, errors.New("find stations: no directory configured")
	}
	if len(route.Polyline) == 0 {
		return nil, errors.New("find stations: route has no geometry")
	}

	probeCtx, cancel := context.WithTimeout(ctx, l.probeTimeout)
	err = l.directory.Probe(probeCtx)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("find stations: probe directory: %w", err)
	}

	area := geo.CoveringArea(geo.Bound(route.Polyline, searchPadDeg), minSearchRadiusKm)
	found, err := l.directory.Search(ctx, ports.StationQuery{
		Center:     area.Center,
		RadiusKm:   area.RadiusKm,
		MaxResults: maxSearchResults,
	})
	if err != nil {
		return nil, fmt.Errorf("find stations: search directory: %w", err)
	}

	nearby := make([]domain.ChargingStation, 0, len(found))
	for _, s := range found {
		d := geo.MinDistanceToPolylineKm(s.Coordinate, route.Polyline)
		if d <= corridorKm {
			nearby = append(nearby, s.WithRouteDistance(d))
		}
	}

	sortByRouteDistance(nearby)
	return nearby, nil
}
