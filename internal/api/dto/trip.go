package dto

// VehicleInput describes a vehicle that is not in the catalog.
type VehicleInput struct {
	Model          string  `json:"model"`
	BatteryKWh     float64 `json:"battery_kwh"`
	ClaimedRangeKm float64 `json:"claimed_range_km"`
}

type PlanTripRequest struct {
	Source            string        `json:"source"`
	Destination       string        `json:"destination"`
	VehicleID         string        `json:"vehicle_id"`
	Vehicle           *VehicleInput `json:"vehicle"`
	CurrentBatteryPct *float64      `json:"current_battery_pct"`
}

type PlaceResponse struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}

type RouteResponse struct {
	// Polyline points are [lat, lng].
	Polyline        [][2]float64 `json:"polyline"`
	DistanceKm      int          `json:"distance_km"`
	DurationMinutes int          `json:"duration_minutes"`
}

type ConnectionResponse struct {
	PowerKW float64 `json:"power_kw"`
	Type    string  `json:"type"`
}

type StationResponse struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	Address             string               `json:"address"`
	Lat                 float64              `json:"lat"`
	Lng                 float64              `json:"lng"`
	Operational         bool                 `json:"operational"`
	Connections         []ConnectionResponse `json:"connections"`
	DistanceFromRouteKm *float64             `json:"distance_from_route_km,omitempty"`
}

type ChargingStopResponse struct {
	Station                 StationResponse `json:"station"`
	DistanceFromStartKm     float64         `json:"distance_from_start_km"`
	BatteryOnArrivalPct     float64         `json:"battery_on_arrival_pct"`
	BatteryAfterChargingPct float64         `json:"battery_after_charging_pct"`
	ChargingMinutes         int             `json:"charging_minutes"`
	ChargingCost            float64         `json:"charging_cost"`
}

type PlanTripResponse struct {
	Source                  PlaceResponse          `json:"source"`
	Destination             PlaceResponse          `json:"destination"`
	Vehicle                 VehicleResponse        `json:"vehicle"`
	Route                   RouteResponse          `json:"route"`
	NearbyStations          []StationResponse      `json:"nearby_stations"`
	ChargingStops           []ChargingStopResponse `json:"charging_stops"`
	TotalEnergyKWh          float64                `json:"total_energy_kwh"`
	StartingBatteryPct      float64                `json:"starting_battery_pct"`
	BatteryAtDestinationPct float64                `json:"battery_at_destination_pct"`
	TotalChargingCost       float64                `json:"total_charging_cost"`
	TotalChargingMinutes    int                    `json:"total_charging_minutes"`
	DegradedStations        bool                   `json:"degraded_stations"`
}

type ErrorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}
