package domain

// A planned visit to a charging station along the route.
// BatteryOnArrivalPct is never above BatteryAfterChargingPct.
type ChargingStop struct {
	Station                 ChargingStation
	DistanceFromStartKm     float64
	BatteryOnArrivalPct     float64
	BatteryAfterChargingPct float64
	ChargingMinutes         int
	ChargingCost            float64
}

// Represents the complete result of one planning request.
// A TripPlan is built once and never mutated; a new request produces a new plan.
type TripPlan struct {
	Source                  GeocodeResult
	Destination             GeocodeResult
	Vehicle                 Vehicle
	Route                   Route
	NearbyStations          []ChargingStation
	ChargingStops           []ChargingStop
	TotalEnergyKWh          float64
	StartingBatteryPct      float64
	BatteryAtDestinationPct float64
	TotalChargingCost       float64
	// DegradedStations is set when stations came from the synthetic generator.
	DegradedStations bool
}

// TotalChargingMinutes sums the charging time across all stops.
func (p *TripPlan) TotalChargingMinutes() int {
	total := 0
	for _, s := range p.ChargingStops {
		total += s.ChargingMinutes
	}
	return total
}
