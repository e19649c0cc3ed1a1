package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"when-to-go-service/internal/domain"
	"when-to-go-service/internal/ports"
)

// Provider/UX bound on alternative routes per departure instant.
const maxAlternativeRoutes = 3

type ScanRequest struct {
	Origin          string
	Destination     string
	Mode            domain.TravelMode
	RouteType       domain.RouteType
	WindowMinutes   int
	IntervalMinutes int
	MaxAlternatives int
}

// ScanResult holds the evaluated departure options for one scan, in
// chronological order. Gaps lists sampled instants skipped because the
// routing call failed; the recommendation is computed over the
// successful subset only. An empty Options slice means no interval
// produced a route, which callers must surface as a distinct "no data"
// condition.
type ScanResult struct {
	Origin        domain.Coordinates
	Destination   domain.Coordinates
	RequestedMode domain.TravelMode
	Mode          domain.TravelMode
	ModeFallback  bool
	RouteType     domain.RouteType
	Options       []domain.DepartureOption
	Gaps          []time.Time
}

// Recommended returns the option marked as the best departure, or nil
// when every interval failed.
func (r *ScanResult) Recommended() *domain.DepartureOption {
	for i := range r.Options {
		if r.Options[i].Recommended {
			return &r.Options[i]
		}
	}
	return nil
}

// FindBestDeparture runs the best-departure-time scan: it samples the
// near-future window at fixed intervals, fetches candidate routes for
// each sampled instant, and recommends the departure minimizing
// predicted travel duration.
//
// This is an exhaustive discrete search over the sampled instants, not
// an approximation: given accurate provider data it always finds the
// true minimum among the samples. Optima between sample points are
// invisible to it; IntervalMinutes controls that precision/cost
// trade-off at one provider call per sample.
func FindBestDeparture(
	ctx context.Context,
	req ScanRequest,
	geocoder ports.Geocoder,
	provider ports.RouteProvider,
) (*ScanResult, error) {
	return findBestDepartureFrom(ctx, req, time.Now().UTC(), geocoder, provider)
}

func findBestDepartureFrom(
	ctx context.Context,
	req ScanRequest,
	now time.Time,
	geocoder ports.Geocoder,
	provider ports.RouteProvider,
) (*ScanResult, error) {
	if err := validateScanRequest(req); err != nil {
		return nil, err
	}

	alternatives := req.MaxAlternatives
	if alternatives < 0 {
		alternatives = 0
	}
	if alternatives > maxAlternativeRoutes {
		alternatives = maxAlternativeRoutes
	}

	// Both endpoints resolve exactly once; an unresolved location
	// aborts the scan before any routing call.
	origin, err := geocoder.Resolve(ctx, req.Origin)
	if err != nil {
		return nil, fmt.Errorf("scan: resolve origin %q: %w", req.Origin, err)
	}
	destination, err := geocoder.Resolve(ctx, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("scan: resolve destination %q: %w", req.Destination, err)
	}

	query := domain.RouteQuery{
		Origin:          origin,
		Destination:     destination,
		Mode:            req.Mode,
		RouteType:       req.RouteType,
		MaxAlternatives: alternatives,
	}.Normalize()

	result := &ScanResult{
		Origin:        origin,
		Destination:   destination,
		RequestedMode: query.RequestedMode,
		Mode:          query.Mode,
		ModeFallback:  query.ModeFallback,
		RouteType:     query.RouteType,
	}

	// Never schedule a departure in the past or at the instant of the
	// request.
	start := now.Add(time.Minute)

	for mins := 0; mins <= req.WindowMinutes; mins += req.IntervalMinutes {
		departAt := start.Add(time.Duration(mins) * time.Minute)
		query.DepartAt = departAt

		candidates, err := provider.FetchRoutes(ctx, query)
		if err != nil {
			var pe *ports.ProviderError
			if errors.As(err, &pe) {
				// One failed routing call loses one interval, not
				// the scan.
				log.Printf("scan: depart_at=%s skipped: %v", departAt.Format(time.RFC3339), err)
				result.Gaps = append(result.Gaps, departAt)
				continue
			}
			return nil, fmt.Errorf("scan: fetch routes for %s: %w", departAt.Format(time.RFC3339), err)
		}
		if len(candidates) == 0 {
			result.Gaps = append(result.Gaps, departAt)
			continue
		}

		for i := range candidates {
			candidates[i].Traffic = domain.ClassifyTraffic(candidates[i].DurationSeconds, candidates[i].DelaySeconds)
		}

		// Minimum-duration candidate for this instant; strict
		// comparison keeps provider order on ties.
		bestIdx := 0
		for i := 1; i < len(candidates); i++ {
			if candidates[i].DurationSeconds < candidates[bestIdx].DurationSeconds {
				bestIdx = i
			}
		}

		others := make([]domain.RouteCandidate, 0, len(candidates)-1)
		for i, c := range candidates {
			if i != bestIdx {
				others = append(others, c)
			}
		}

		result.Options = append(result.Options, domain.DepartureOption{
			DepartAt:     departAt,
			Best:         candidates[bestIdx],
			Alternatives: others,
		})
	}

	markRecommended(result.Options)

	return result, nil
}

// markRecommended flags the option with the globally minimal best-route
// duration. A left-to-right fold over the chronologically ordered
// options with a strict comparison implements the tie-break policy: on
// equal durations the earlier departure wins.
func markRecommended(options []domain.DepartureOption) {
	best := -1
	for i := range options {
		if best == -1 || options[i].Best.DurationSeconds < options[best].Best.DurationSeconds {
			best = i
		}
	}
	if best >= 0 {
		options[best].Recommended = true
	}
}

func validateScanRequest(req ScanRequest) error {
	if req.Origin == "" || req.Destination == "" {
		return &ports.ValidationError{Msg: "origin and destination must be non-empty"}
	}
	if !req.Mode.Valid() {
		return &ports.ValidationError{Msg: fmt.Sprintf("unsupported mode %q", req.Mode)}
	}
	if !req.RouteType.Valid() {
		return &ports.ValidationError{Msg: fmt.Sprintf("unsupported route type %q", req.RouteType)}
	}
	if req.IntervalMinutes <= 0 {
		return &ports.ValidationError{Msg: "interval_minutes must be positive"}
	}
	if req.WindowMinutes < 0 {
		return &ports.ValidationError{Msg: "window_minutes must not be negative"}
	}
	return nil
}
