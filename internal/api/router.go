package api

import (
	"ev-trip-service/internal/api/handlers"
	"ev-trip-service/internal/ports"
	"ev-trip-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.TripPlanner, vehicles ports.VehicleRepository, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	tripHandler := &handlers.TripHandler{Planner: planner, Vehicles: vehicles}
	vehicleHandler := &handlers.VehicleHandler{Repo: vehicles}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	r.HandleFunc("/api/v1/trips/plan", tripHandler.Plan).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/vehicles/{id}", vehicleHandler.Get).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         86400,
	})

	return requestIDMiddleware(loggingMiddleware(c.Handler(r)))
}
