package domain

// Represents a driving route between two coordinates.
// The polyline is ordered from origin to destination and always has at
// least two points; distance and duration are rounded to whole units.
type Route struct {
	Polyline        []Coordinate
	DistanceKm      int
	DurationMinutes int
}
