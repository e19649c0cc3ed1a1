package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"when-to-go-service/internal/api/dto"
	"when-to-go-service/internal/domain"
	"when-to-go-service/internal/ports"
	"when-to-go-service/internal/services"
)

type ScanHandler struct {
	Geocoder ports.Geocoder
	Provider ports.RouteProvider
}

// Scan runs the best-departure-time search for one origin/destination
// pair and returns the evaluated options with exactly one recommended
// departure.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ScanRequest

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

	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = string(domain.ModeCar)
	}

	routeType := req.RouteType
	if routeType == "" {
		routeType = string(domain.RouteFastest)
	}

	window := req.WindowMinutes
	if window == 0 {
		window = 60
	}
	if window < 10 || window > 120 {
		writeError(w, r, http.StatusBadRequest, "window_minutes must be between 10 and 120")
		return
	}

	interval := req.IntervalMinutes
	if interval == 0 {
		interval = 10
	}
	if interval < 5 || interval > 30 {
		writeError(w, r, http.StatusBadRequest, "interval_minutes must be between 5 and 30")
		return
	}

	alternatives := req.MaxAlternatives
	if alternatives == 0 {
		alternatives = 2
	}

	svcReq := services.ScanRequest{
		Origin:          strings.TrimSpace(req.Origin),
		Destination:     strings.TrimSpace(req.Destination),
		Mode:            domain.TravelMode(mode),
		RouteType:       domain.RouteType(routeType),
		WindowMinutes:   window,
		IntervalMinutes: interval,
		MaxAlternatives: alternatives,
	}

	result, err := services.FindBestDeparture(r.Context(), svcReq, h.Geocoder, h.Provider)
	if err != nil {
		var ve *ports.ValidationError
		if errors.As(err, &ve) {
			writeError(w, r, http.StatusBadRequest, ve.Error())
			return
		}

		var nfe *ports.NotFoundError
		if errors.As(err, &nfe) {
			writeError(w, r, http.StatusNotFound, nfe.Error())
			return
		}

		log.Printf("scan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// Empty means every sampled interval failed, which the caller must
	// be able to tell apart from any traffic verdict.
	if len(result.Options) == 0 {
		writeError(w, r, http.StatusNotFound, "no routes found for the given time window")
		return
	}

	writeJSON(w, r, http.StatusOK, scanResponse(result))
}

func scanResponse(result *services.ScanResult) dto.ScanResponse {
	res := dto.ScanResponse{
		Origin:            dto.PointResponse{Lat: result.Origin.Lat, Lon: result.Origin.Lon},
		Destination:       dto.PointResponse{Lat: result.Destination.Lat, Lon: result.Destination.Lon},
		RequestedMode:     string(result.RequestedMode),
		ModeUsed:          string(result.Mode),
		ModeFallback:      result.ModeFallback,
		RouteType:         string(result.RouteType),
		Options:           make([]dto.DepartureOptionResponse, 0, len(result.Options)),
		SkippedDepartures: result.Gaps,
	}

	for _, opt := range result.Options {
		res.Options = append(res.Options, dto.DepartureOptionResponse{
			DepartAt:     opt.DepartAt,
			DepartAtIST:  domain.FormatClockIST(opt.DepartAt),
			ArriveAtIST:  domain.FormatClockIST(opt.ArriveAt()),
			Recommended:  opt.Recommended,
			Best:         routeResponse(opt.Best),
			Alternatives: routeResponses(opt.Alternatives),
		})
	}

	return res
}

func routeResponse(c domain.RouteCandidate) dto.RouteResponse {
	geometry := make([]dto.PointResponse, 0, len(c.Geometry))
	for _, p := range c.Geometry {
		geometry = append(geometry, dto.PointResponse{Lat: p.Lat, Lon: p.Lon})
	}

	return dto.RouteResponse{
		DurationSeconds: c.DurationSeconds,
		DelaySeconds:    c.DelaySeconds,
		DistanceMeters:  c.DistanceMeters,
		Traffic:         string(c.Traffic),
		Geometry:        geometry,
	}
}

func routeResponses(cs []domain.RouteCandidate) []dto.RouteResponse {
	out := make([]dto.RouteResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, routeResponse(c))
	}
	return out
}
