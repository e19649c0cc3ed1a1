package dto

type JourneyRequest struct {
	StartLocation       string `json:"start_location"`
	EndLocation         string `json:"end_location"`
	DepartureTimeIST    string `json:"departure_time_ist"`
	TravelTimeMin       int    `json:"travel_time_min"`
	TrafficDelayMin     int    `json:"traffic_delay_min"`
	RouteType           string `json:"route_type"`
	Mode                string `json:"mode"`
	AlternativeSelected int    `json:"alternative_selected"`
}

type JourneyResponse struct {
	StartLocation       string `json:"start_location"`
	EndLocation         string `json:"end_location"`
	DepartureTimeIST    string `json:"departure_time_ist"`
	TravelTimeMin       int    `json:"travel_time_min"`
	TrafficDelayMin     int    `json:"traffic_delay_min"`
	RouteType           string `json:"route_type"`
	Mode                string `json:"mode"`
	Timestamp           string `json:"timestamp"`
	AlternativeSelected int    `json:"alternative_selected"`
}

type ListJourneysResponse struct {
	Journeys []JourneyResponse `json:"journeys"`
}
