package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
	"github.com/ctrlz-health/carefinder/internal/infrastructure/observability"
	"github.com/ctrlz-health/carefinder/pkg/config"
	"github.com/ctrlz-health/carefinder/pkg/retry"
)

// FetchResult is the merged outcome of one fan-out: deduplicated
// candidates in first-seen query order, plus how many queries failed.
type FetchResult struct {
	Candidates    []*entities.Candidate
	FailedQueries int
}

// FacilityFetcher fans the planned queries out against the place-search
// provider. One failing query never fails the batch; its slot is simply
// empty and counted.
type FacilityFetcher struct {
	provider    providers.PlaceSearchProvider
	metrics     *observability.Metrics
	concurrency int
	timeout     time.Duration
}

// NewFacilityFetcher creates a new facility fetcher.
func NewFacilityFetcher(provider providers.PlaceSearchProvider, metrics *observability.Metrics, cfg *config.SearchConfig) *FacilityFetcher {
	concurrency := cfg.MaxConcurrentQueries
	if concurrency <= 0 || concurrency > 5 {
		concurrency = 5
	}
	timeoutSeconds := cfg.QueryTimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 8
	}
	return &FacilityFetcher{
		provider:    provider,
		metrics:     metrics,
		concurrency: concurrency,
		timeout:     time.Duration(timeoutSeconds) * time.Second,
	}
}

// Fetch runs every query with bounded concurrency, retries each one once,
// then merges the per-query slots in query order and deduplicates by
// normalized (name, address) identity.
func (f *FacilityFetcher) Fetch(ctx context.Context, queries []string, bias *providers.SearchBias) *FetchResult {
	logger := observability.LoggerFromContext(ctx)

	slots := make([][]*entities.Candidate, len(queries))
	failed := make([]bool, len(queries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(f.concurrency)

	for i, query := range queries {
		group.Go(func() error {
			queryCtx, cancel := context.WithTimeout(groupCtx, f.timeout)
			defer cancel()

			var candidates []*entities.Candidate
			err := retry.Do(queryCtx, retry.OnceConfig(), func() error {
				var searchErr error
				candidates, searchErr = f.provider.SearchText(queryCtx, query, bias)
				return searchErr
			})
			observability.RecordProviderCall(ctx, f.metrics, "places", err)
			if err != nil {
				failed[i] = true
				logger.Warn().
					Err(err).
					Str("query", query).
					Msg("place search query failed, continuing without it")
				return nil
			}
			slots[i] = candidates
			return nil
		})
	}

	// Workers only write their own slot and never return errors, so the
	// only thing to wait for is completion.
	_ = group.Wait()

	result := &FetchResult{}
	seen := make(map[string]bool)
	for i := range queries {
		if failed[i] {
			result.FailedQueries++
			continue
		}
		for _, candidate := range slots[i] {
			key := candidate.IdentityKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			result.Candidates = append(result.Candidates, candidate)
		}
	}

	logger.Debug().
		Int("queries", len(queries)).
		Int("failed_queries", result.FailedQueries).
		Int("candidates", len(result.Candidates)).
		Msg("facility fetch complete")

	return result
}
