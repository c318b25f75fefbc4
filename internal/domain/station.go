package domain

import "fmt"

// A single charger outlet at a station.
type Connection struct {
	PowerKW float64
	Type    string
}

// A charging station as returned by the station directory (or synthesized
// in degraded mode). DistanceFromRouteKm is set once by the station locator
// and must be treated as read-only afterwards.
type ChargingStation struct {
	ID                  string
	Coordinate          Coordinate
	Title               string
	Address             string
	Operational         bool
	Connections         []Connection
	DistanceFromRouteKm *float64
}

// MaxPowerKW returns the highest connector power at the station, or 0.
func (s ChargingStation) MaxPowerKW() float64 {
	maxKW := 0.0
	for _, c := range s.Connections {
		if c.PowerKW > maxKW {
			maxKW = c.PowerKW
		}
	}
	return maxKW
}

// RouteDistance returns DistanceFromRouteKm, or 0 when it was never computed.
func (s ChargingStation) RouteDistance() float64 {
	if s.DistanceFromRouteKm == nil {
		return 0
	}
	return *s.DistanceFromRouteKm
}

// WithRouteDistance returns a copy of the station annotated with km.
func (s ChargingStation) WithRouteDistance(km float64) ChargingStation {
	s.DistanceFromRouteKm = &km
	return s
}

// StationIDFromCoordinate synthesizes a stable identifier for records that
// arrive without one.
func StationIDFromCoordinate(c Coordinate) string {
	return fmt.Sprintf("geo:%.5f,%.5f", c.Lat, c.Lng)
}
