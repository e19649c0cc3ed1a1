package api

import (
	"net/http"

	"when-to-go-service/internal/api/handlers"
	"when-to-go-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(geocoder ports.Geocoder, provider ports.RouteProvider, store ports.JourneyStore) http.Handler {
	mux := http.NewServeMux()

	scanHandler := &handlers.ScanHandler{
		Geocoder: geocoder,
		Provider: provider,
	}
	journeyHandler := &handlers.JourneyHandler{Store: store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/scan", scanHandler.Scan)
	mux.HandleFunc("/journeys", journeyHandler.Journeys)

	return loggingMiddleware(mux)
}
