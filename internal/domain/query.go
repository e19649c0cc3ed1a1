package domain

import "time"

// TravelMode is the vehicle profile requested by the user.
type TravelMode string

const (
	ModeCar  TravelMode = "car"
	ModeBike TravelMode = "bike"
)

func (m TravelMode) Valid() bool {
	return m == ModeCar || m == ModeBike
}

// RouteType is the routing preference passed to the provider.
type RouteType string

const (
	RouteFastest  RouteType = "fastest"
	RouteShortest RouteType = "shortest"
	RouteEco      RouteType = "eco"
)

func (r RouteType) Valid() bool {
	return r == RouteFastest || r == RouteShortest || r == RouteEco
}

// RouteQuery describes a single routing request.
// RequestedMode preserves the user's choice; Mode is what is actually
// dispatched to the provider after capability normalization.
type RouteQuery struct {
	Origin          Coordinates
	Destination     Coordinates
	DepartAt        time.Time
	RequestedMode   TravelMode
	Mode            TravelMode
	RouteType       RouteType
	MaxAlternatives int
	ModeFallback    bool
}

// Normalize applies the provider capability rule: bike routing is not
// available upstream, so bike queries are dispatched as car and annotated
// so callers can surface the substitution. RequestedMode always reflects
// the original input.
func (q RouteQuery) Normalize() RouteQuery {
	q.RequestedMode = q.Mode
	if q.Mode == ModeBike {
		q.Mode = ModeCar
		q.ModeFallback = true
	}
	return q
}
