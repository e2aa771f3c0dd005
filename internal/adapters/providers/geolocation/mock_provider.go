package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
)

// MockGeocodingProvider resolves a handful of well-known cities. Used in
// development when no geocoding API key is configured.
type MockGeocodingProvider struct{}

// NewMockGeocodingProvider creates a new mock geocoding provider
func NewMockGeocodingProvider() providers.GeocodingProvider {
	return &MockGeocodingProvider{}
}

// Geocode converts a location to coordinates (mock implementation)
func (m *MockGeocodingProvider) Geocode(ctx context.Context, location string) (*entities.GeoPoint, error) {
	mockPoints := map[string]entities.GeoPoint{
		"nashville": {Latitude: 36.1627, Longitude: -86.7816, CountryCode: "US"},
		"new york":  {Latitude: 40.7128, Longitude: -74.0060, CountryCode: "US"},
		"chicago":   {Latitude: 41.8781, Longitude: -87.6298, CountryCode: "US"},
		"kathmandu": {Latitude: 27.7172, Longitude: 85.3240, CountryCode: "NP"},
		"london":    {Latitude: 51.5074, Longitude: -0.1278, CountryCode: "GB"},
		"lagos":     {Latitude: 6.5244, Longitude: 3.3792, CountryCode: "NG"},
	}

	lowered := strings.ToLower(location)
	for city, point := range mockPoints {
		if strings.Contains(lowered, city) {
			p := point
			return &p, nil
		}
	}

	return nil, fmt.Errorf("no results for location %q", location)
}
