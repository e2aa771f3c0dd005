package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
	"github.com/ctrlz-health/carefinder/internal/infrastructure/observability"
	"github.com/ctrlz-health/carefinder/pkg/config"
	apperrors "github.com/ctrlz-health/carefinder/pkg/errors"
)

const searchCachePrefix = "search:v1:"

// SearchService orchestrates the full discovery pipeline: resolve, plan,
// fetch, filter, rank, enrich. It owns the request-level memo cache.
type SearchService struct {
	resolver *GeoResolver
	planner  *QueryPlanner
	fetcher  *FacilityFetcher
	filter   *RelevanceFilter
	ranker   *RankingService
	enricher *EnrichmentService
	cache    providers.CacheProvider
	metrics  *observability.Metrics
	cacheTTL int
}

// NewSearchService creates a new search service. Cache may be nil; then
// every request runs the full pipeline.
func NewSearchService(
	resolver *GeoResolver,
	planner *QueryPlanner,
	fetcher *FacilityFetcher,
	filter *RelevanceFilter,
	ranker *RankingService,
	enricher *EnrichmentService,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
	cfg *config.SearchConfig,
) *SearchService {
	ttl := cfg.ResultCacheTTL
	if ttl <= 0 {
		ttl = 300
	}
	return &SearchService{
		resolver: resolver,
		planner:  planner,
		fetcher:  fetcher,
		filter:   filter,
		ranker:   ranker,
		enricher: enricher,
		cache:    cache,
		metrics:  metrics,
		cacheTTL: ttl,
	}
}

// Search runs the pipeline for one request. Only validation failures and
// unexpected internal faults return an error; provider trouble degrades
// inside a normal response.
func (s *SearchService) Search(ctx context.Context, req *entities.SearchRequest) (*entities.SearchResponse, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Search")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)
	started := time.Now()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	cacheKey := s.cacheKey(req)
	if cached := s.cachedResponse(ctx, cacheKey); cached != nil {
		observability.RecordCacheHit(ctx, s.metrics, "search")
		return cached, nil
	}
	observability.RecordCacheMiss(ctx, s.metrics, "search")

	origin := s.resolver.Resolve(ctx, req.Location)
	plan := s.planner.Plan(req.Location, req.NeedTypes)

	var bias *providers.SearchBias
	if origin != nil {
		bias = &providers.SearchBias{
			Center:       *origin,
			RadiusMeters: plan.RadiusKm * 1000,
		}
	}

	placesStart := time.Now()
	fetched := s.fetcher.Fetch(ctx, plan.Queries, bias)
	placesMs := time.Since(placesStart).Milliseconds()

	matches := s.filter.Filter(fetched.Candidates, req.NeedTypes)
	ranked := s.ranker.Rank(matches, origin, req.Location, plan.RadiusKm)

	enrichmentStart := time.Now()
	enriched := s.enricher.Enrich(ctx, ranked, req.Location, req.NeedTypes, DetectLanguage(req.Language, origin))
	enrichmentMs := time.Since(enrichmentStart).Milliseconds()

	response := &entities.SearchResponse{
		Success:          len(enriched) > 0,
		Facilities:       enriched,
		TotalFound:       len(enriched),
		SearchRadius:     fmt.Sprintf("%.0f km", plan.RadiusKm),
		DetectedLanguage: DetectLanguage(req.Language, origin),
		EmergencyInfo:    EmergencyInfoFor(origin),
		Metadata: entities.SearchMetadata{
			Query:         req.Location,
			NeedTypes:     req.NeedTypes,
			QueriesUsed:   plan.Queries,
			Coordinates:   origin,
			FailedQueries: fetched.FailedQueries,
			Timings: entities.SearchTimings{
				PlacesMs:     placesMs,
				EnrichmentMs: enrichmentMs,
				TotalMs:      time.Since(started).Milliseconds(),
			},
		},
	}
	if len(enriched) == 0 {
		response.Facilities = []*entities.RankedFacility{}
		response.Suggestion = "No facilities found. Try a nearby larger city or a broader care type."
	}

	s.storeResponse(ctx, cacheKey, response)

	logger.Info().
		Str("location", req.Location).
		Int("total_found", response.TotalFound).
		Int("failed_queries", fetched.FailedQueries).
		Int64("total_ms", response.Metadata.Timings.TotalMs).
		Msg("search complete")

	return response, nil
}

// Sort re-orders an already-fetched facility list without touching any
// provider. Pure and idempotent.
func (s *SearchService) Sort(facilities []*entities.RankedFacility, sortBy string) ([]*entities.RankedFacility, error) {
	switch sortBy {
	case entities.SortByDistance, entities.SortByRelevance:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown sort key %q", sortBy))
	}

	out := make([]*entities.RankedFacility, len(facilities))
	copy(out, facilities)
	SortFacilities(out, sortBy)
	return out, nil
}

// cacheKey memoizes on everything that changes the output: location,
// need set and language.
func (s *SearchService) cacheKey(req *entities.SearchRequest) string {
	needs := make([]string, 0, len(req.NeedTypes))
	for _, need := range req.NeedTypes {
		needs = append(needs, string(need))
	}
	sort.Strings(needs)

	raw := strings.ToLower(req.Location) + "|" + strings.Join(needs, ",") + "|" + strings.ToLower(req.Language)
	sum := sha256.Sum256([]byte(raw))
	return searchCachePrefix + hex.EncodeToString(sum[:])
}

func (s *SearchService) cachedResponse(ctx context.Context, key string) *entities.SearchResponse {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, key)
	if err != nil || len(payload) == 0 {
		return nil
	}
	var response entities.SearchResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil
	}
	return &response
}

func (s *SearchService) storeResponse(ctx context.Context, key string, response *entities.SearchResponse) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache search response")
	}
}
