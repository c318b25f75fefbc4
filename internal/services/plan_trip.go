package services

import (
	"context"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/obs"
	"ev-trip-service/internal/ports"
	"fmt"
	"log"
	"math"
	"strings"
)

// ErrInvalidTripRequest marks requests rejected before any upstream call.
var ErrInvalidTripRequest = errors.New("invalid trip request")

type TripRequest struct {
	SourceText         string
	DestinationText    string
	Vehicle            domain.Vehicle
	StartingBatteryPct float64
}

func (r TripRequest) validate() error {
	switch {
	case strings.TrimSpace(r.SourceText) == "":
		return fmt.Errorf("%w: source is required", ErrInvalidTripRequest)
	case strings.TrimSpace(r.DestinationText) == "":
		return fmt.Errorf("%w: destination is required", ErrInvalidTripRequest)
	case r.StartingBatteryPct < 0 || r.StartingBatteryPct > 100:
		return fmt.Errorf("%w: starting battery must be between 0 and 100", ErrInvalidTripRequest)
	case r.Vehicle.BatteryKWh <= 0:
		return fmt.Errorf("%w: vehicle battery capacity must be positive", ErrInvalidTripRequest)
	case r.Vehicle.ClaimedRangeKm <= 0:
		return fmt.Errorf("%w: vehicle claimed range must be positive", ErrInvalidTripRequest)
	}
	return nil
}

// TripPlanner runs one planning request end to end.
type TripPlanner struct {
	geocoder   ports.Geocoder
	router     ports.Router
	locator    *StationLocator
	policy     StopPolicy
	corridorKm float64
}

func NewTripPlanner(
	geocoder ports.Geocoder,
	router ports.Router,
	locator *StationLocator,
	policy StopPolicy,
	corridorKm float64,
) (*TripPlanner, error) {
	if geocoder == nil || router == nil || locator == nil {
		return nil, errors.New("trip planner: geocoder, router and locator are required")
	}
	if corridorKm <= 0 {
		return nil, errors.New("trip planner: corridor width must be positive")
	}
	return &TripPlanner{
		geocoder:   geocoder,
		router:     router,
		locator:    locator,
		policy:     policy,
		corridorKm: corridorKm,
	}, nil
}

// PlanTrip geocodes both ends, routes between them, finds stations along the
// route and plans charging stops. Geocoding and routing errors are returned
// as-is (wrapped); station lookup never fails the request.
func (p *TripPlanner) PlanTrip(ctx context.Context, req TripRequest) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "trip.plan")(&err)

	if err := req.validate(); err != nil {
		return nil, err
	}

	source, err := p.geocoder.Geocode(ctx, req.SourceText)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode source: %w", err)
	}
	destination, err := p.geocoder.Geocode(ctx, req.DestinationText)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode destination: %w", err)
	}

	route, err := p.router.Route(ctx, source.Coordinate, destination.Coordinate)
	if err != nil {
		return nil, fmt.Errorf("plan trip: route: %w", err)
	}

	stations, degraded := p.locator.FindStationsNearRoute(ctx, route, p.corridorKm)

	distanceKm := float64(route.DistanceKm)
	stops, err := p.policy.PlanStops(distanceKm, req.Vehicle, req.StartingBatteryPct, stations)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	realRange := req.Vehicle.RealRangeKm()
	atDestination := domain.BatteryAfterDistance(req.StartingBatteryPct, distanceKm, realRange)
	totalCost := 0.0
	if len(stops) > 0 {
		last := stops[len(stops)-1]
		atDestination = domain.BatteryAfterDistance(last.BatteryAfterChargingPct, distanceKm-last.DistanceFromStartKm, realRange)
		for _, s := range stops {
			totalCost += s.ChargingCost
		}
	}

	plan := &domain.TripPlan{
		Source:                  source,
		Destination:             destination,
		Vehicle:                 req.Vehicle,
		Route:                   route,
		NearbyStations:          stations,
		ChargingStops:           stops,
		TotalEnergyKWh:          p.policy.Energy.EnergyForDistance(distanceKm),
		StartingBatteryPct:      req.StartingBatteryPct,
		BatteryAtDestinationPct: math.Round(atDestination),
		TotalChargingCost:       totalCost,
		DegradedStations:        degraded,
	}

	log.Printf(
		"trip planned req_id=%s distance_km=%d stations=%d stops=%d degraded=%t",
		obs.RequestID(ctx), route.DistanceKm, len(stations), len(stops), degraded,
	)
	return plan, nil
}
