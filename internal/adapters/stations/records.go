package stations

import (
	"ev-trip-service/internal/domain"
	"strings"
)

// Wire shape of one OpenChargeMap POI. Every nested object is optional
// upstream, so everything is a pointer and defaults are applied in toDomain.
type poiRecord struct {
	ID          *int64 `json:"ID"`
	AddressInfo *struct {
		Title        *string  `json:"Title"`
		AddressLine1 *string  `json:"AddressLine1"`
		Town         *string  `json:"Town"`
		Latitude     *float64 `json:"Latitude"`
		Longitude    *float64 `json:"Longitude"`
	} `json:"AddressInfo"`
	StatusType *struct {
		IsOperational *bool `json:"IsOperational"`
	} `json:"StatusType"`
	Connections []struct {
		PowerKW        *float64 `json:"PowerKW"`
		ConnectionType *struct {
			Title *string `json:"Title"`
		} `json:"ConnectionType"`
	} `json:"Connections"`
}

// toDomain validates a record and fills defaults. Records without a usable
// location are rejected (ok == false).
func (r poiRecord) toDomain() (domain.ChargingStation, bool) {
	if r.AddressInfo == nil || r.AddressInfo.Latitude == nil || r.AddressInfo.Longitude == nil {
		return domain.ChargingStation{}, false
	}

	coord := domain.Coordinate{Lat: *r.AddressInfo.Latitude, Lng: *r.AddressInfo.Longitude}
	// The directory uses 0,0 for unknown locations.
	if (coord.Lat == 0 && coord.Lng == 0) || !coord.Valid() {
		return domain.ChargingStation{}, false
	}

	s := domain.ChargingStation{
		Coordinate: coord,
		Title:      strings.TrimSpace(deref(r.AddressInfo.Title)),
		Address:    strings.TrimSpace(deref(r.AddressInfo.AddressLine1)),
	}

	if r.ID != nil && *r.ID > 0 {
		s.ID = "ocm:" + itoa(*r.ID)
	} else {
		s.ID = domain.StationIDFromCoordinate(coord)
	}

	if s.Title == "" {
		s.Title = "Charging station"
	}
	if s.Address == "" {
		s.Address = strings.TrimSpace(deref(r.AddressInfo.Town))
	}

	if r.StatusType != nil && r.StatusType.IsOperational != nil {
		s.Operational = *r.StatusType.IsOperational
	}

	s.Connections = make([]domain.Connection, 0, len(r.Connections))
	for _, c := range r.Connections {
		conn := domain.Connection{Type: "Unknown"}
		if c.PowerKW != nil && *c.PowerKW > 0 {
			conn.PowerKW = *c.PowerKW
		}
		if c.ConnectionType != nil && c.ConnectionType.Title != nil && *c.ConnectionType.Title != "" {
			conn.Type = *c.ConnectionType.Title
		}
		s.Connections = append(s.Connections, conn)
	}

	return s, true
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
