package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"when-to-go-service/internal/api/dto"
	"when-to-go-service/internal/domain"
	"when-to-go-service/internal/ports"
)

// JourneyHandler exposes the journey history: recording a confirmed
// departure choice and reading back the history for a route.
type JourneyHandler struct {
	Store ports.JourneyStore
}

func (h *JourneyHandler) Journeys(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.record(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *JourneyHandler) record(w http.ResponseWriter, r *http.Request) {
	var req dto.JourneyRequest

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

	if strings.TrimSpace(req.StartLocation) == "" || strings.TrimSpace(req.EndLocation) == "" {
		writeError(w, r, http.StatusBadRequest, "start_location and end_location are required")
		return
	}
	if !domain.TravelMode(req.Mode).Valid() {
		writeError(w, r, http.StatusBadRequest, "unsupported mode")
		return
	}
	if !domain.RouteType(req.RouteType).Valid() {
		writeError(w, r, http.StatusBadRequest, "unsupported route_type")
		return
	}
	if req.TravelTimeMin < 0 || req.TrafficDelayMin < 0 || req.AlternativeSelected < 0 {
		writeError(w, r, http.StatusBadRequest, "durations and alternative_selected must not be negative")
		return
	}

	rec := domain.JourneyRecord{
		StartLocation:       strings.TrimSpace(req.StartLocation),
		EndLocation:         strings.TrimSpace(req.EndLocation),
		DepartureTimeIST:    req.DepartureTimeIST,
		TravelTimeMin:       req.TravelTimeMin,
		TrafficDelayMin:     req.TrafficDelayMin,
		RouteType:           domain.RouteType(req.RouteType),
		Mode:                domain.TravelMode(req.Mode),
		Timestamp:           time.Now(),
		AlternativeSelected: req.AlternativeSelected,
	}

	if err := h.Store.Record(r.Context(), rec); err != nil {
		log.Printf("record journey failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "failed to record journey")
		return
	}

	writeJSON(w, r, http.StatusCreated, journeyResponse(rec))
}

func (h *JourneyHandler) list(w http.ResponseWriter, r *http.Request) {
	start := strings.TrimSpace(r.URL.Query().Get("start"))
	end := strings.TrimSpace(r.URL.Query().Get("end"))
	if start == "" || end == "" {
		writeError(w, r, http.StatusBadRequest, "start and end query parameters are required")
		return
	}

	recs, err := h.Store.ListByRoute(r.Context(), start, end)
	if err != nil {
		log.Printf("list journeys failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListJourneysResponse{
		Journeys: make([]dto.JourneyResponse, 0, len(recs)),
	}
	for _, rec := range recs {
		res.Journeys = append(res.Journeys, journeyResponse(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func journeyResponse(rec domain.JourneyRecord) dto.JourneyResponse {
	return dto.JourneyResponse{
		StartLocation:       rec.StartLocation,
		EndLocation:         rec.EndLocation,
		DepartureTimeIST:    rec.DepartureTimeIST,
		TravelTimeMin:       rec.TravelTimeMin,
		TrafficDelayMin:     rec.TrafficDelayMin,
		RouteType:           string(rec.RouteType),
		Mode:                string(rec.Mode),
		Timestamp:           rec.Timestamp.In(domain.IST()).Format(domain.TimestampFormat),
		AlternativeSelected: rec.AlternativeSelected,
	}
}
