package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
)

type fakePlaceProvider struct {
	mu      sync.Mutex
	results map[string][]*entities.Candidate
	failing map[string]bool
	calls   map[string]int
}

func newFakePlaceProvider() *fakePlaceProvider {
	return &fakePlaceProvider{
		results: map[string][]*entities.Candidate{},
		failing: map[string]bool{},
		calls:   map[string]int{},
	}
}

func (f *fakePlaceProvider) SearchText(ctx context.Context, query string, bias *providers.SearchBias) ([]*entities.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[query]++
	if f.failing[query] {
		return nil, errors.New("provider error")
	}
	return f.results[query], nil
}

func TestFetch_DeduplicatesAcrossQueries(t *testing.T) {
	provider := newFakePlaceProvider()
	shared := &entities.Candidate{Name: "General Hospital", Address: "100 Main St"}
	provider.results["q1"] = []*entities.Candidate{shared, {Name: "Motion Clinic", Address: "2 Oak St"}}
	provider.results["q2"] = []*entities.Candidate{{Name: "  general hospital ", Address: "100 MAIN ST"}}

	fetcher := NewFacilityFetcher(provider, nil, testSearchConfig())
	result := fetcher.Fetch(context.Background(), []string{"q1", "q2"}, nil)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "General Hospital", result.Candidates[0].Name)
	assert.Equal(t, 0, result.FailedQueries)
}

func TestFetch_PartialFailureNeverAbortsBatch(t *testing.T) {
	provider := newFakePlaceProvider()
	provider.results["ok"] = []*entities.Candidate{{Name: "General Hospital", Address: "100 Main St"}}
	provider.failing["broken"] = true

	fetcher := NewFacilityFetcher(provider, nil, testSearchConfig())
	result := fetcher.Fetch(context.Background(), []string{"broken", "ok"}, nil)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, 1, result.FailedQueries)
	// The failed query was retried once before being skipped.
	assert.Equal(t, 2, provider.calls["broken"])
}

func TestFetch_PreservesQueryOrder(t *testing.T) {
	provider := newFakePlaceProvider()
	provider.results["first"] = []*entities.Candidate{{Name: "Alpha Hospital", Address: "1 A St"}}
	provider.results["second"] = []*entities.Candidate{{Name: "Beta Hospital", Address: "2 B St"}}

	fetcher := NewFacilityFetcher(provider, nil, testSearchConfig())
	result := fetcher.Fetch(context.Background(), []string{"first", "second"}, nil)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "Alpha Hospital", result.Candidates[0].Name)
	assert.Equal(t, "Beta Hospital", result.Candidates[1].Name)
}
