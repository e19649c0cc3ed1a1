package ports

import (
	"context"
	"when-to-go-service/internal/domain"
)

// Contract for resolving free-text locations to coordinates.
type Geocoder interface {
	// Resolve a location string to coordinates. Returns NotFoundError
	// when the provider has no match for the text.
	Resolve(ctx context.Context, location string) (domain.Coordinates, error)
}
