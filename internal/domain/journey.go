package domain

import "time"

// JourneyRecord is one user-confirmed journey appended to durable
// history. Rows are append-only; the core never mutates or deletes them.
// AlternativeSelected is the index of the chosen route at the confirmed
// departure time (0 = primary).
type JourneyRecord struct {
	StartLocation       string
	EndLocation         string
	DepartureTimeIST    string
	TravelTimeMin       int
	TrafficDelayMin     int
	RouteType           RouteType
	Mode                TravelMode
	Timestamp           time.Time
	AlternativeSelected int
}

// History rows render all times in IST regardless of server locale.
const (
	ClockFormat     = "03:04 PM"
	TimestampFormat = "2006-01-02 15:04:05"
)

var ist = loadIST()

// IST returns the fixed regional time zone used for all rendered times.
func IST() *time.Location { return ist }

func loadIST() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	// Hosts without tzdata still need consistent history rows.
	return time.FixedZone("IST", 5*3600+1800)
}

// FormatClockIST renders a wall-clock time in IST ("hh:mm AM/PM").
func FormatClockIST(t time.Time) string {
	return t.In(ist).Format(ClockFormat)
}
