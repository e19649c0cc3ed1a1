package ports

import (
	"context"
	"when-to-go-service/internal/domain"
)

// Contract for fetching candidate routes for a departure instant.
type RouteProvider interface {
	// Return candidate routes ordered by provider preference, primary
	// route first. The query is expected to be normalized (no bike
	// queries reach the provider).
	FetchRoutes(ctx context.Context, q domain.RouteQuery) ([]domain.RouteCandidate, error)
}
