package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"trip-distance-service/internal/api/dto"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
	"trip-distance-service/internal/services"
)

const maxNearestLimit = 10

// DistanceHandler exposes the distance resolution operations over HTTP.
type DistanceHandler struct {
	Service *services.DistanceService
}

// AirportToAttraction handles POST /distance/airport.
// An unresolvable airport or attraction is a normal domain outcome and is
// reported as success=false with HTTP 200, not as a server error.
func (h *DistanceHandler) AirportToAttraction(w http.ResponseWriter, r *http.Request) {
	var req dto.AirportDistanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.AirportCode) == "" {
		writeError(w, r, http.StatusBadRequest, "airport_code is required")
		return
	}
	if strings.TrimSpace(req.Attraction) == "" {
		writeError(w, r, http.StatusBadRequest, "attraction is required")
		return
	}

	report := h.Service.AirportToAttraction(r.Context(), req.AirportCode, req.Attraction)
	writeJSON(w, r, http.StatusOK, toDistanceResponse(report))
}

// BetweenPlaces handles POST /distance/places.
func (h *DistanceHandler) BetweenPlaces(w http.ResponseWriter, r *http.Request) {
	var req dto.PlacesDistanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Place1) == "" || strings.TrimSpace(req.Place2) == "" {
		writeError(w, r, http.StatusBadRequest, "place1 and place2 are required")
		return
	}

	report := h.Service.BetweenPlaces(r.Context(), req.Place1, req.Place2)
	writeJSON(w, r, http.StatusOK, toDistanceResponse(report))
}

// NearestAirports handles GET /airports/nearest?city=...&limit=3.
func (h *DistanceHandler) NearestAirports(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "city is required")
		return
	}

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 || n > maxNearestLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 10")
			return
		}
		limit = n
	}

	ranked, err := h.Service.NearestAirports(r.Context(), city, limit)
	if err != nil {
		if errors.Is(err, ports.ErrUnresolvedLocation) {
			writeError(w, r, http.StatusNotFound, "could not resolve city "+city)
			return
		}
		log.Printf("nearest airports failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.NearestAirportsResponse{
		City:     city,
		Airports: make([]dto.RankedAirportResponse, 0, len(ranked)),
	}
	for _, ra := range ranked {
		res.Airports = append(res.Airports, dto.RankedAirportResponse{
			Code:       ra.Airport.Code,
			Name:       ra.Airport.Name,
			City:       ra.Airport.City,
			Country:    ra.Airport.Country,
			DistanceKm: ra.DistanceKm,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// decodeBody enforces a single strict JSON object. Returns false when a
// response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}

func toDistanceResponse(report domain.DistanceReport) dto.DistanceResponse {
	res := dto.DistanceResponse{
		Success:     report.Success,
		Origin:      report.Origin,
		Destination: report.Destination,
		Summary:     services.FormatReport(report),
		Error:       report.Err,
	}
	if report.Success {
		res.DistanceKm = report.DistanceKm
		res.TravelTime = report.TravelTime.String()
	}
	return res
}
