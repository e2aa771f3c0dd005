package placesearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
	"github.com/ctrlz-health/carefinder/pkg/config"
)

const (
	googlePlacesTextURL = "https://places.googleapis.com/v1/places:searchText"
	placesFieldMask     = "places.displayName,places.formattedAddress,places.location,places.rating," +
		"places.userRatingCount,places.types,places.nationalPhoneNumber,places.websiteUri,places.businessStatus"
	// The provider rejects circle biases wider than 50 km.
	maxBiasRadiusMeters = 50000
	defaultMaxResults   = 20
	defaultAddress      = "Address not available"
	defaultName         = "Unknown facility"
)

// GooglePlacesProvider implements PlaceSearchProvider against the Places
// API (New) text search endpoint. Calls are paced with a rate limiter and
// guarded by a circuit breaker so a misbehaving provider cannot soak up
// the whole fetch budget.
type GooglePlacesProvider struct {
	apiKey     string
	maxResults int
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	baseURL    string
}

// NewGooglePlacesProvider creates a new Places text-search provider.
func NewGooglePlacesProvider(cfg *config.PlacesConfig) providers.PlaceSearchProvider {
	return NewGooglePlacesProviderWithOptions(cfg, googlePlacesTextURL, nil)
}

// NewGooglePlacesProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGooglePlacesProviderWithOptions(cfg *config.PlacesConfig, baseURL string, httpClient *http.Client) providers.PlaceSearchProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googlePlacesTextURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	maxResults := cfg.MaxResultCount
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "google-places",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &GooglePlacesProvider{
		apiKey:     cfg.APIKey,
		maxResults: maxResults,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		breaker:    breaker,
		baseURL:    baseURL,
	}
}

// SearchText issues one text search, optionally biased to a circle around
// the search origin.
func (p *GooglePlacesProvider) SearchText(ctx context.Context, query string, bias *providers.SearchBias) ([]*entities.Candidate, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("places api key is required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload := textSearchRequest{
		TextQuery:      query,
		MaxResultCount: p.maxResults,
	}
	if bias != nil {
		radius := bias.RadiusMeters
		if radius > maxBiasRadiusMeters {
			radius = maxBiasRadiusMeters
		}
		payload.LocationBias = &locationBias{
			Circle: circleBias{
				Center: latLng{Latitude: bias.Center.Latitude, Longitude: bias.Center.Longitude},
				Radius: radius,
			},
		}
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.doTextSearch(ctx, payload)
	})
	if err != nil {
		return nil, err
	}

	resp := result.(*textSearchResponse)
	candidates := make([]*entities.Candidate, 0, len(resp.Places))
	for _, place := range resp.Places {
		candidates = append(candidates, toCandidate(place))
	}
	return candidates, nil
}

func (p *GooglePlacesProvider) doTextSearch(ctx context.Context, payload textSearchRequest) (*textSearchResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build places request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", p.apiKey)
	req.Header.Set("X-Goog-FieldMask", placesFieldMask)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("places request returned status %d", resp.StatusCode)
	}

	var parsed textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}
	return &parsed, nil
}

// toCandidate resolves the provider's optional fields to explicit
// defaults exactly once, at ingestion.
func toCandidate(place placeResult) *entities.Candidate {
	candidate := &entities.Candidate{
		Name:           defaultName,
		Address:        defaultAddress,
		Phone:          place.NationalPhoneNumber,
		Website:        place.WebsiteURI,
		Rating:         place.Rating,
		CategoryTags:   place.Types,
		BusinessStatus: place.BusinessStatus,
	}
	if place.DisplayName != nil && strings.TrimSpace(place.DisplayName.Text) != "" {
		candidate.Name = place.DisplayName.Text
	}
	if strings.TrimSpace(place.FormattedAddress) != "" {
		candidate.Address = place.FormattedAddress
	}
	if place.UserRatingCount != nil {
		candidate.RatingCount = *place.UserRatingCount
	}
	if place.Location != nil {
		candidate.Coordinates = &entities.GeoPoint{
			Latitude:  place.Location.Latitude,
			Longitude: place.Location.Longitude,
		}
	}
	return candidate
}

type textSearchRequest struct {
	TextQuery      string        `json:"textQuery"`
	LocationBias   *locationBias `json:"locationBias,omitempty"`
	MaxResultCount int           `json:"maxResultCount"`
}

type locationBias struct {
	Circle circleBias `json:"circle"`
}

type circleBias struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type textSearchResponse struct {
	Places []placeResult `json:"places"`
}

type placeResult struct {
	DisplayName         *localizedText `json:"displayName,omitempty"`
	FormattedAddress    string         `json:"formattedAddress,omitempty"`
	Location            *latLng        `json:"location,omitempty"`
	Rating              *float64       `json:"rating,omitempty"`
	UserRatingCount     *int           `json:"userRatingCount,omitempty"`
	Types               []string       `json:"types,omitempty"`
	NationalPhoneNumber string         `json:"nationalPhoneNumber,omitempty"`
	WebsiteURI          string         `json:"websiteUri,omitempty"`
	BusinessStatus      string         `json:"businessStatus,omitempty"`
}

type localizedText struct {
	Text string `json:"text"`
}
