package providers

import (
	"context"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
)

// SearchBias is an optional geographic bias for a text search: a circle
// around the search origin.
type SearchBias struct {
	Center       entities.GeoPoint
	RadiusMeters float64
}

// PlaceSearchProvider runs one text search against the external place
// provider and returns candidates with optional fields already resolved
// to their defaults.
type PlaceSearchProvider interface {
	SearchText(ctx context.Context, query string, bias *SearchBias) ([]*entities.Candidate, error)
}
