package services

import (
	"errors"
	"ev-trip-service/internal/domain"
	"fmt"
	"math"
)

// ErrStopLimitExceeded is returned when the planner would need more stops
// than the route can physically require.
var ErrStopLimitExceeded = errors.New("stop planner: stop limit exceeded")

// StopPolicy holds the charging rules used when planning stops.
type StopPolicy struct {
	SafetyReservePct  float64
	TargetChargePct   float64
	MinStationPowerKW float64
	// TripMargin inflates the route distance in the no-stop precheck.
	TripMargin float64
	// StopFraction is the share of reachable range driven before stopping.
	StopFraction float64
	Energy       domain.EnergyModel
}

func DefaultStopPolicy() StopPolicy {
	return StopPolicy{
		SafetyReservePct:  20,
		TargetChargePct:   80,
		MinStationPowerKW: 22,
		TripMargin:        1.2,
		StopFraction:      0.8,
		Energy:            domain.DefaultEnergyModel(),
	}
}

// MaxStops bounds the number of stops a route of routeKm can need.
// Legs shorter than 1 km cannot produce distinct rounded stop distances,
// so such a vehicle gets a bound of 0.
func (p StopPolicy) MaxStops(routeKm, realRangeKm float64) int {
	minLeg := realRangeKm * (p.TargetChargePct - p.SafetyReservePct) / 100 * p.StopFraction
	if minLeg < 1 {
		return 0
	}
	return int(math.Floor(routeKm/minLeg)) + 2
}

func (p StopPolicy) qualifies(s domain.ChargingStation) bool {
	return s.Operational && s.MaxPowerKW() >= p.MinStationPowerKW
}

// PlanStops decides where to charge along a route of routeKm.
//
// Stops are placed greedily: the vehicle drives StopFraction of its range
// above the reserve, charges to the target, and repeats. The first
// qualifying station in input order is used for every stop. When no station
// qualifies the stops committed so far are returned.
func (p StopPolicy) PlanStops(
	routeKm float64,
	vehicle domain.Vehicle,
	startPct float64,
	stations []domain.ChargingStation,
) ([]domain.ChargingStop, error) {
	stops := []domain.ChargingStop{}
	realRange := vehicle.RealRangeKm()

	if domain.UsableRangeKm(realRange, startPct)-routeKm*p.TripMargin > domain.UsableRangeKm(realRange, p.SafetyReservePct) {
		return stops, nil
	}

	var station *domain.ChargingStation
	for i := range stations {
		if p.qualifies(stations[i]) {
			station = &stations[i]
			break
		}
	}

	limit := p.MaxStops(routeKm, realRange)
	battery := startPct
	soFar := 0.0
	remaining := routeKm

	for remaining > 0 {
		reachable := math.Max(0, realRange*(battery-p.SafetyReservePct)/100)
		if reachable >= remaining {
			break
		}
		if station == nil {
			break
		}
		if len(stops) >= limit {
			return nil, fmt.Errorf("plan stops: route_km=%.1f real_range_km=%.0f limit=%d: %w",
				routeKm, realRange, limit, ErrStopLimitExceeded)
		}

		target := soFar + reachable*p.StopFraction

		arrival := p.SafetyReservePct
		if realRange > 0 {
			arrival = math.Max(p.SafetyReservePct, battery-reachable/realRange*100)
		}
		charged := (p.TargetChargePct - arrival) / 100 * vehicle.BatteryKWh

		stops = append(stops, domain.ChargingStop{
			Station:                 *station,
			DistanceFromStartKm:     math.Round(target),
			BatteryOnArrivalPct:     math.Round(arrival),
			BatteryAfterChargingPct: p.TargetChargePct,
			ChargingMinutes:         int(math.Round(charged * 60 / station.MaxPowerKW())),
			ChargingCost:            p.Energy.ChargingCost(charged),
		})

		soFar = target
		remaining = routeKm - soFar
		battery = p.TargetChargePct
	}

	return stops, nil
}
