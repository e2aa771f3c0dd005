package providers

import (
	"context"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
)

// GeocodingProvider converts a free-text location into coordinates plus a
// country code. Implementations return an error on provider failure; the
// geo resolver above them turns any failure into a soft "no bias" result.
type GeocodingProvider interface {
	Geocode(ctx context.Context, location string) (*entities.GeoPoint, error)
}
