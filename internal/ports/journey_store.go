package ports

import (
	"context"
	"when-to-go-service/internal/domain"
)

// Port: a boundary for durable, append-only journey history.
type JourneyStore interface {
	// Append one confirmed journey. Prior rows are never rewritten.
	Record(ctx context.Context, rec domain.JourneyRecord) error
	// Return recorded journeys for a start/end pair, matched
	// case-insensitively, in append order.
	ListByRoute(ctx context.Context, start, end string) ([]domain.JourneyRecord, error)
}
