package services

import (
	"context"
	"time"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
	"github.com/ctrlz-health/carefinder/internal/infrastructure/observability"
)

const geocodeTimeout = 8 * time.Second

// GeoResolver wraps the geocoding provider with the pipeline's soft
// failure policy: a provider error or empty result becomes nil, and the
// rest of the pipeline runs without bias or distances.
type GeoResolver struct {
	provider providers.GeocodingProvider
	metrics  *observability.Metrics
}

// NewGeoResolver creates a new geo resolver.
func NewGeoResolver(provider providers.GeocodingProvider, metrics *observability.Metrics) *GeoResolver {
	return &GeoResolver{provider: provider, metrics: metrics}
}

// Resolve geocodes a free-text location. Never returns an error; a nil
// result means "no bias, no distances" downstream.
func (r *GeoResolver) Resolve(ctx context.Context, location string) *entities.GeoPoint {
	if r.provider == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	point, err := r.provider.Geocode(callCtx, location)
	observability.RecordProviderCall(ctx, r.metrics, "geocoding", err)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("location", location).
			Msg("geocoding failed, continuing without coordinates")
		return nil
	}
	return point
}
