package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"ev-trip-service/internal/adapters/geocode"
	"ev-trip-service/internal/adapters/routing"
	"ev-trip-service/internal/api/dto"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/httpx"
	"ev-trip-service/internal/platform/obs"
	"ev-trip-service/internal/ports"
	"ev-trip-service/internal/services"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
)

type TripHandler struct {
	Planner  *services.TripPlanner
	Vehicles ports.VehicleRepository
}

// Plan resolves the vehicle, runs the trip planner and renders the plan.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.CurrentBatteryPct == nil {
		writeError(w, r, http.StatusBadRequest, "current_battery_pct is required")
		return
	}

	vehicleID := strings.TrimSpace(req.VehicleID)
	if (vehicleID == "") == (req.Vehicle == nil) {
		writeError(w, r, http.StatusBadRequest, "exactly one of vehicle_id or vehicle is required")
		return
	}

	var vehicle domain.Vehicle
	if req.Vehicle != nil {
		vehicle = domain.Vehicle{
			Model:          strings.TrimSpace(req.Vehicle.Model),
			BatteryKWh:     req.Vehicle.BatteryKWh,
			ClaimedRangeKm: req.Vehicle.ClaimedRangeKm,
		}
	} else {
		v, err := h.Vehicles.GetVehicle(r.Context(), vehicleID)
		if errors.Is(err, ports.ErrVehicleNotFound) {
			writeError(w, r, http.StatusNotFound, "vehicle not found")
			return
		}
		if err != nil {
			log.Printf("get vehicle failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		vehicle = v
	}

	plan, err := h.Planner.PlanTrip(r.Context(), services.TripRequest{
		SourceText:         req.Source,
		DestinationText:    req.Destination,
		Vehicle:            vehicle,
		StartingBatteryPct: *req.CurrentBatteryPct,
	})
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound *geocode.NotFoundError
		noRoute  *routing.RouteNotFoundError
		upstream *httpx.StatusError
		netErr   net.Error
	)

	switch {
	case errors.Is(err, services.ErrInvalidTripRequest), errors.Is(err, geocode.ErrEmptyQuery):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		writeJSON(w, r, http.StatusNotFound, dto.ErrorResponse{
			Error:      notFound.Error(),
			Suggestion: notFound.Suggestion,
		})
	case errors.As(err, &noRoute):
		writeError(w, r, http.StatusUnprocessableEntity, "no drivable route between source and destination")
	case errors.Is(err, services.ErrStopLimitExceeded):
		writeError(w, r, http.StatusUnprocessableEntity, "trip cannot be planned with this vehicle")
	case errors.As(err, &upstream), errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded):
		log.Printf("plan trip upstream failure: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusBadGateway, "upstream service unavailable")
	default:
		log.Printf("plan trip failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func toPlace(g domain.GeocodeResult) dto.PlaceResponse {
	return dto.PlaceResponse{Lat: g.Coordinate.Lat, Lng: g.Coordinate.Lng, DisplayName: g.DisplayName}
}

func toStation(s domain.ChargingStation) dto.StationResponse {
	conns := make([]dto.ConnectionResponse, 0, len(s.Connections))
	for _, c := range s.Connections {
		conns = append(conns, dto.ConnectionResponse{PowerKW: c.PowerKW, Type: c.Type})
	}
	return dto.StationResponse{
		ID:                  s.ID,
		Title:               s.Title,
		Address:             s.Address,
		Lat:                 s.Coordinate.Lat,
		Lng:                 s.Coordinate.Lng,
		Operational:         s.Operational,
		Connections:         conns,
		DistanceFromRouteKm: s.DistanceFromRouteKm,
	}
}

func toPlanResponse(p *domain.TripPlan) dto.PlanTripResponse {
	polyline := make([][2]float64, 0, len(p.Route.Polyline))
	for _, c := range p.Route.Polyline {
		polyline = append(polyline, [2]float64{c.Lat, c.Lng})
	}

	stations := make([]dto.StationResponse, 0, len(p.NearbyStations))
	for _, s := range p.NearbyStations {
		stations = append(stations, toStation(s))
	}

	stops := make([]dto.ChargingStopResponse, 0, len(p.ChargingStops))
	for _, s := range p.ChargingStops {
		stops = append(stops, dto.ChargingStopResponse{
			Station:                 toStation(s.Station),
			DistanceFromStartKm:     s.DistanceFromStartKm,
			BatteryOnArrivalPct:     s.BatteryOnArrivalPct,
			BatteryAfterChargingPct: s.BatteryAfterChargingPct,
			ChargingMinutes:         s.ChargingMinutes,
			ChargingCost:            s.ChargingCost,
		})
	}

	return dto.PlanTripResponse{
		Source:      toPlace(p.Source),
		Destination: toPlace(p.Destination),
		Vehicle:     toVehicleResponse(p.Vehicle),
		Route: dto.RouteResponse{
			Polyline:        polyline,
			DistanceKm:      p.Route.DistanceKm,
			DurationMinutes: p.Route.DurationMinutes,
		},
		NearbyStations:          stations,
		ChargingStops:           stops,
		TotalEnergyKWh:          p.TotalEnergyKWh,
		StartingBatteryPct:      p.StartingBatteryPct,
		BatteryAtDestinationPct: p.BatteryAtDestinationPct,
		TotalChargingCost:       p.TotalChargingCost,
		TotalChargingMinutes:    p.TotalChargingMinutes(),
		DegradedStations:        p.DegradedStations,
	}
}
