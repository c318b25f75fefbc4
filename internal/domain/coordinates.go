package domain

import "github.com/paulmach/orb"

// Geographic coordinate in WGS84 degrees, stored as (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lng float64
}

// Valid reports whether the coordinate lies inside WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Point returns the coordinate in orb's [lng, lat] order.
func (c Coordinate) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }

// FromPoint converts an orb [lng, lat] point back into a Coordinate.
func FromPoint(p orb.Point) Coordinate { return Coordinate{Lat: p.Lat(), Lng: p.Lon()} }

// A resolved place name. Produced once per place-text input.
type GeocodeResult struct {
	Coordinate  Coordinate
	DisplayName string
}
