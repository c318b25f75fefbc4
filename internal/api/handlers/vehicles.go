package handlers

import (
	"errors"
	"ev-trip-service/internal/api/dto"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/obs"
	"ev-trip-service/internal/ports"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// VehicleHandler exposes the read-only vehicle catalog.
type VehicleHandler struct {
	Repo ports.VehicleRepository
}

func toVehicleResponse(v domain.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		VehicleID:      v.ID,
		Model:          v.Model,
		BatteryKWh:     v.BatteryKWh,
		ClaimedRangeKm: v.ClaimedRangeKm,
		RealRangeKm:    v.RealRangeKm(),
	}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Repo.ListVehicles(r.Context())
	if err != nil {
		log.Printf("list vehicles failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vehicles))}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, toVehicleResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one vehicle with a full-charge estimate. The optional
// battery_pct and charger_kw query parameters tune the estimate.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	batteryPct, err := queryFloat(r, "battery_pct", 0)
	if err != nil || batteryPct < 0 || batteryPct > 100 {
		writeError(w, r, http.StatusBadRequest, "battery_pct must be a number between 0 and 100")
		return
	}
	chargerKW, err := queryFloat(r, "charger_kw", 7)
	if err != nil || chargerKW <= 0 {
		writeError(w, r, http.StatusBadRequest, "charger_kw must be a positive number")
		return
	}

	v, err := h.Repo.GetVehicle(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, ports.ErrVehicleNotFound) {
		writeError(w, r, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		log.Printf("get vehicle failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.VehicleDetailResponse{
		VehicleResponse: toVehicleResponse(v),
		ChargeEstimate: dto.ChargeEstimateResponse{
			BatteryPct:      batteryPct,
			ChargerKW:       chargerKW,
			FullChargeHours: domain.EstimateFullChargeHours(v.BatteryKWh, batteryPct, chargerKW),
		},
	})
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}
