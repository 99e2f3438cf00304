package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"trip-distance-service/internal/api/handlers"
	"trip-distance-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters behind the service.
func NewRouter(svc *services.DistanceService) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	h := &handlers.DistanceHandler{Service: svc}

	r.Get("/health", handlers.Health)
	r.Post("/distance/airport", h.AirportToAttraction)
	r.Post("/distance/places", h.BetweenPlaces)
	r.Get("/airports/nearest", h.NearestAirports)

	return r
}
