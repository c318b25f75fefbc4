package domain

import "math"

// Default energy figures used when no configuration overrides them.
const (
	DefaultConsumptionKWhPerKm = 0.2
	DefaultRatePerKWh          = 12.0
)

// EnergyModel converts distance into energy and energy into cost.
// All methods are pure and return 0 on degenerate input.
type EnergyModel struct {
	ConsumptionKWhPerKm float64
	RatePerKWh          float64
}

func DefaultEnergyModel() EnergyModel {
	return EnergyModel{
		ConsumptionKWhPerKm: DefaultConsumptionKWhPerKm,
		RatePerKWh:          DefaultRatePerKWh,
	}
}

// EnergyForDistance returns the kWh needed to drive distanceKm.
func (m EnergyModel) EnergyForDistance(distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return distanceKm * m.ConsumptionKWhPerKm
}

// ChargingCost returns round(energyKWh × rate).
func (m EnergyModel) ChargingCost(energyKWh float64) float64 {
	if energyKWh <= 0 {
		return 0
	}
	return math.Round(energyKWh * m.RatePerKWh)
}

// UsableRangeKm returns how far realRangeKm takes the vehicle at batteryPct.
func UsableRangeKm(realRangeKm, batteryPct float64) float64 {
	if realRangeKm <= 0 {
		return 0
	}
	return realRangeKm * batteryPct / 100
}

// BatteryAfterDistance returns the battery percentage left after driving
// distanceKm from batteryPct, floored at 0.
func BatteryAfterDistance(batteryPct, distanceKm, realRangeKm float64) float64 {
	if distanceKm <= 0 {
		return math.Max(0, batteryPct)
	}
	if realRangeKm <= 0 {
		return 0
	}
	return math.Max(0, batteryPct-distanceKm/realRangeKm*100)
}

// EstimateFullChargeHours estimates the time to charge from batteryPct to
// 100% on a charger of chargerKW. A non-positive charger power falls back
// to a 7 kW home charger.
func EstimateFullChargeHours(batteryKWh, batteryPct, chargerKW float64) float64 {
	if chargerKW <= 0 {
		chargerKW = 7
	}
	if batteryKWh <= 0 || batteryPct >= 100 {
		return 0
	}
	remaining := batteryKWh * (100 - math.Max(0, batteryPct)) / 100
	return math.Round(remaining/chargerKW*100) / 100
}
