package dto

type VehicleResponse struct {
	VehicleID      string  `json:"vehicle_id,omitempty"`
	Model          string  `json:"model"`
	BatteryKWh     float64 `json:"battery_kwh"`
	ClaimedRangeKm float64 `json:"claimed_range_km"`
	RealRangeKm    float64 `json:"real_range_km"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

type ChargeEstimateResponse struct {
	BatteryPct      float64 `json:"battery_pct"`
	ChargerKW       float64 `json:"charger_kw"`
	FullChargeHours float64 `json:"full_charge_hours"`
}

type VehicleDetailResponse struct {
	VehicleResponse
	ChargeEstimate ChargeEstimateResponse `json:"charge_estimate"`
}
