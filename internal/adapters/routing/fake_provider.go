package routing

import (
	"context"
	"fmt"
	"time"

	"when-to-go-service/internal/domain"
	"when-to-go-service/internal/ports"
)

// FakeProvider is a deterministic, scripted Geocoder and RouteProvider.
// It serves tests and offline runs without network access or provider
// quota exposure. Routes and failures are keyed by departure instant.
type FakeProvider struct {
	Locations map[string]domain.Coordinates
	routes    map[int64][]domain.RouteCandidate
	failures  map[int64]error

	// Queries records every dispatched route query in call order, so
	// tests can assert on normalization and sampling behavior.
	Queries []domain.RouteQuery
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		Locations: make(map[string]domain.Coordinates),
		routes:    make(map[int64][]domain.RouteCandidate),
		failures:  make(map[int64]error),
	}
}

// Script registers the candidates returned for one departure instant.
func (p *FakeProvider) Script(at time.Time, candidates ...domain.RouteCandidate) {
	p.routes[at.Unix()] = candidates
}

// FailAt registers a provider failure for one departure instant.
func (p *FakeProvider) FailAt(at time.Time, err error) {
	p.failures[at.Unix()] = err
}

func (p *FakeProvider) Resolve(ctx context.Context, location string) (domain.Coordinates, error) {
	c, ok := p.Locations[location]
	if !ok {
		return domain.Coordinates{}, &ports.NotFoundError{Location: location}
	}
	return c, nil
}

func (p *FakeProvider) FetchRoutes(ctx context.Context, q domain.RouteQuery) ([]domain.RouteCandidate, error) {
	p.Queries = append(p.Queries, q)

	key := q.DepartAt.Unix()
	if err, ok := p.failures[key]; ok {
		return nil, err
	}

	candidates, ok := p.routes[key]
	if !ok {
		return nil, &ports.ProviderError{
			Op:  "fake: fetch routes",
			Err: fmt.Errorf("no scripted routes for %s", q.DepartAt.Format(time.RFC3339)),
		}
	}

	// Copy so callers can classify/annotate without mutating the script.
	out := make([]domain.RouteCandidate, len(candidates))
	copy(out, candidates)
	return out, nil
}
