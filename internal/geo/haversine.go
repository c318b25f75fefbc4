package geo

import (
	"math"

	"ev-trip-service/internal/domain"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean Earth radius used for every distance in the service.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two points.
func HaversineKm(a, b domain.Coordinate) float64 {
	lat1r := a.Lat * math.Pi / 180
	lat2r := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// MinDistanceToPolylineKm returns the smallest haversine distance from p to
// any vertex of polyline. It checks every vertex; an empty polyline yields +Inf.
func MinDistanceToPolylineKm(p domain.Coordinate, polyline []domain.Coordinate) float64 {
	best := math.Inf(1)
	for _, v := range polyline {
		if d := HaversineKm(p, v); d < best {
			best = d
		}
	}
	return best
}

// Bound returns the bounding box of polyline padded by padDeg degrees on
// every side.
func Bound(polyline []domain.Coordinate, padDeg float64) orb.Bound {
	mp := make(orb.MultiPoint, 0, len(polyline))
	for _, c := range polyline {
		mp = append(mp, c.Point())
	}
	return mp.Bound().Pad(padDeg)
}

// SearchArea describes a circular directory query covering a bound.
type SearchArea struct {
	Center   domain.Coordinate
	RadiusKm float64
}

// CoveringArea returns the center of b and a radius equal to its diagonal,
// never smaller than minRadiusKm.
func CoveringArea(b orb.Bound, minRadiusKm float64) SearchArea {
	diagonal := HaversineKm(domain.FromPoint(b.Min), domain.FromPoint(b.Max))
	return SearchArea{
		Center:   domain.FromPoint(b.Center()),
		RadiusKm: math.Max(diagonal, minRadiusKm),
	}
}
