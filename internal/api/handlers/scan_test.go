package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"when-to-go-service/internal/adapters/routing"
	"when-to-go-service/internal/domain"
)

func newScanHandler() *ScanHandler {
	fake := routing.NewFakeProvider()
	fake.Locations["Koramangala"] = domain.Coordinates{Lat: 12.9352, Lon: 77.6245}
	fake.Locations["Whitefield"] = domain.Coordinates{Lat: 12.9698, Lon: 77.75}
	return &ScanHandler{Geocoder: fake, Provider: fake}
}

func doScan(t *testing.T, h *ScanHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Scan(rec, req)
	return rec
}

func TestScanHandlerRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing endpoints", `{"mode":"car"}`},
		{"interval out of range", `{"origin":"Koramangala","destination":"Whitefield","interval_minutes":2}`},
		{"window out of range", `{"origin":"Koramangala","destination":"Whitefield","window_minutes":500}`},
		{"unknown field", `{"origin":"Koramangala","destination":"Whitefield","speed":90}`},
		{"unsupported mode", `{"origin":"Koramangala","destination":"Whitefield","mode":"boat"}`},
	}

	h := newScanHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doScan(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
		})
	}
}

func TestScanHandlerUnresolvedLocationIs404(t *testing.T) {
	h := newScanHandler()

	rec := doScan(t, h, `{"origin":"Koramangala","destination":"Atlantis"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(body["error"], "Atlantis") {
		t.Errorf("error %q should name the unresolved location", body["error"])
	}
}

func TestScanHandlerEmptyWindowIs404(t *testing.T) {
	// The fake has no scripted routes, so every interval fails and the
	// scan comes back empty: distinct from any traffic verdict.
	h := newScanHandler()

	rec := doScan(t, h, `{"origin":"Koramangala","destination":"Whitefield"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "no routes found for the given time window" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestScanHandlerMethodNotAllowed(t *testing.T) {
	h := newScanHandler()

	req := httptest.NewRequest(http.MethodGet, "/scan", nil)
	rec := httptest.NewRecorder()
	h.Scan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Errorf("Allow header = %q, want POST", rec.Header().Get("Allow"))
	}
}
