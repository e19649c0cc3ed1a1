package domain

// TrafficLevel is the discrete severity assigned to a route based on its
// delay-to-duration ratio.
type TrafficLevel string

const (
	TrafficSmooth   TrafficLevel = "smooth"
	TrafficModerate TrafficLevel = "moderate"
	TrafficHeavy    TrafficLevel = "heavy"
)

// Classification thresholds on delay/duration. These are fixed policy
// constants, not configuration: they are the single qualitative judgment
// the service makes, and changing them silently would make history rows
// recorded under different policies incomparable.
const (
	moderateTrafficRatio = 0.10
	heavyTrafficRatio    = 0.30
)

// ClassifyTraffic maps a route's delay-to-duration ratio to a severity
// level. Boundary ratios fall into the higher band. A zero duration
// yields a zero ratio and is treated as smooth.
func ClassifyTraffic(durationSeconds, delaySeconds int) TrafficLevel {
	var ratio float64
	if durationSeconds > 0 {
		ratio = float64(delaySeconds) / float64(durationSeconds)
	}

	switch {
	case ratio >= heavyTrafficRatio:
		return TrafficHeavy
	case ratio >= moderateTrafficRatio:
		return TrafficModerate
	default:
		return TrafficSmooth
	}
}
