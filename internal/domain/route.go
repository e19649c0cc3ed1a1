package domain

import "time"

// RouteCandidate is one route returned by the provider for a specific
// departure instant. Candidates are immutable once fetched.
type RouteCandidate struct {
	DurationSeconds int
	DelaySeconds    int
	DistanceMeters  int
	Traffic         TrafficLevel
	Geometry        []Coordinates
}

// DepartureOption is the evaluated result for one sampled departure
// instant: the minimum-duration candidate plus the remaining candidates
// in provider order. Exactly one option per scan carries Recommended.
type DepartureOption struct {
	DepartAt     time.Time
	Best         RouteCandidate
	Alternatives []RouteCandidate
	Recommended  bool
}

// ArriveAt is the predicted arrival when departing at this option's
// instant on its best candidate.
func (o DepartureOption) ArriveAt() time.Time {
	return o.DepartAt.Add(time.Duration(o.Best.DurationSeconds) * time.Second)
}
