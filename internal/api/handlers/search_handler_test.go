package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlz-health/carefinder/internal/application/services"
	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
	"github.com/ctrlz-health/carefinder/pkg/config"
)

type stubGeocoder struct{}

func (s *stubGeocoder) Geocode(ctx context.Context, location string) (*entities.GeoPoint, error) {
	return &entities.GeoPoint{Latitude: 36.1627, Longitude: -86.7816, CountryCode: "US"}, nil
}

type stubPlaceProvider struct {
	candidates []*entities.Candidate
}

func (s *stubPlaceProvider) SearchText(ctx context.Context, query string, bias *providers.SearchBias) ([]*entities.Candidate, error) {
	return s.candidates, nil
}

func newTestHandler(candidates []*entities.Candidate) *SearchHandler {
	cfg := &config.SearchConfig{
		DefaultRadiusKm:      50,
		SupportGroupRadiusKm: 80,
		MaxConcurrentQueries: 5,
		QueryTimeoutSeconds:  2,
		EnrichmentBatchSize:  12,
		ResultCacheTTL:       300,
	}
	weights := config.ScoringConfig{SpecialtyMatch: 10, FacilityClass: 8, TraumaCenter: 7, EmergencyDept: 6, UrgentCare: 3}

	service := services.NewSearchService(
		services.NewGeoResolver(&stubGeocoder{}, nil),
		services.NewQueryPlanner(cfg),
		services.NewFacilityFetcher(&stubPlaceProvider{candidates: candidates}, nil, cfg),
		services.NewRelevanceFilter(),
		services.NewRankingService(weights),
		services.NewEnrichmentService(nil, nil, cfg),
		nil,
		nil,
		cfg,
	)
	return NewSearchHandler(service)
}

func TestSearch_ReturnsRankedFacilities(t *testing.T) {
	handler := newTestHandler([]*entities.Candidate{
		{Name: "General Hospital", Address: "1 Main St", Coordinates: &entities.GeoPoint{Latitude: 36.17, Longitude: -86.78}},
	})

	body := `{"location":"Nashville, TN","need_types":["emergency"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response entities.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.Len(t, response.Facilities, 1)
	assert.Equal(t, "General Hospital", response.Facilities[0].Name)
	assert.NotNil(t, response.Facilities[0].Enrichment)
}

func TestSearch_MissingLocationIsBadRequest(t *testing.T) {
	handler := newTestHandler(nil)

	body := `{"need_types":["emergency"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestSearch_EmptyNeedTypesIsBadRequest(t *testing.T) {
	handler := newTestHandler(nil)

	body := `{"location":"Nashville, TN","need_types":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_MalformedBodyIsBadRequest(t *testing.T) {
	handler := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSortFacilities_ReordersByDistance(t *testing.T) {
	handler := newTestHandler(nil)

	payload := map[string]interface{}{
		"sort_by": "distance",
		"facilities": []*entities.RankedFacility{
			{Candidate: entities.Candidate{Name: "Far"}, Distance: &entities.DistanceInfo{Km: 30}},
			{Candidate: entities.Candidate{Name: "Near"}, Distance: &entities.DistanceInfo{Km: 2}},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/facilities/sort", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SortFacilities(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Facilities []*entities.RankedFacility `json:"facilities"`
		SortBy     string                     `json:"sort_by"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Facilities, 2)
	assert.Equal(t, "Near", response.Facilities[0].Name)
	assert.Equal(t, "distance", response.SortBy)
}

func TestSortFacilities_UnknownKeyIsBadRequest(t *testing.T) {
	handler := newTestHandler(nil)

	body := `{"sort_by":"alphabetical","facilities":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/facilities/sort", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SortFacilities(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
