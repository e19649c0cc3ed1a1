package dto

import "time"

type ScanRequest struct {
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	Mode            string `json:"mode"`
	RouteType       string `json:"route_type"`
	WindowMinutes   int    `json:"window_minutes"`
	IntervalMinutes int    `json:"interval_minutes"`
	MaxAlternatives int    `json:"max_alternatives"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type RouteResponse struct {
	DurationSeconds int             `json:"duration_seconds"`
	DelaySeconds    int             `json:"delay_seconds"`
	DistanceMeters  int             `json:"distance_meters"`
	Traffic         string          `json:"traffic"`
	Geometry        []PointResponse `json:"geometry"`
}

type DepartureOptionResponse struct {
	DepartAt     time.Time       `json:"depart_at"`
	DepartAtIST  string          `json:"depart_at_ist"`
	ArriveAtIST  string          `json:"arrive_at_ist"`
	Recommended  bool            `json:"recommended"`
	Best         RouteResponse   `json:"best"`
	Alternatives []RouteResponse `json:"alternatives"`
}

type ScanResponse struct {
	Origin            PointResponse             `json:"origin"`
	Destination       PointResponse             `json:"destination"`
	RequestedMode     string                    `json:"requested_mode"`
	ModeUsed          string                    `json:"mode_used"`
	ModeFallback      bool                      `json:"mode_fallback"`
	RouteType         string                    `json:"route_type"`
	Options           []DepartureOptionResponse `json:"options"`
	SkippedDepartures []time.Time               `json:"skipped_departures,omitempty"`
}
