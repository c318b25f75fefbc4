package domain

import "math"

// RealRangeFactor derates manufacturer-claimed range to a plannable range.
const RealRangeFactor = 0.6

// Electric vehicle battery profile.
// Real range is never stored; it is always derived from ClaimedRangeKm.
type Vehicle struct {
	ID             string
	Model          string
	BatteryKWh     float64
	ClaimedRangeKm float64
}

// RealRangeKm returns the derated driving range used for planning.
func (v Vehicle) RealRangeKm() float64 { return RealRange(v.ClaimedRangeKm) }

// RealRange returns round(claimedKm × 0.6), or 0 for non-positive input.
func RealRange(claimedKm float64) float64 {
	if claimedKm <= 0 || math.IsNaN(claimedKm) {
		return 0
	}
	return math.Round(claimedKm * RealRangeFactor)
}
