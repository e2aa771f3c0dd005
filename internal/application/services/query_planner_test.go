package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/pkg/config"
)

func testSearchConfig() *config.SearchConfig {
	return &config.SearchConfig{
		DefaultRadiusKm:      50,
		SupportGroupRadiusKm: 80,
		MaxConcurrentQueries: 5,
		QueryTimeoutSeconds:  8,
		EnrichmentBatchSize:  12,
		ResultCacheTTL:       300,
	}
}

func TestPlan_AlwaysAppendsGenericQueries(t *testing.T) {
	planner := NewQueryPlanner(testSearchConfig())

	plan := planner.Plan("Nashville, TN", []entities.NeedType{entities.NeedSpeechTherapy})

	assert.Contains(t, plan.Queries, "hospital near Nashville, TN")
	assert.Contains(t, plan.Queries, "medical center near Nashville, TN")
	assert.Contains(t, plan.Queries, "speech therapy near Nashville, TN")
}

func TestPlan_Deterministic(t *testing.T) {
	planner := NewQueryPlanner(testSearchConfig())
	needs := []entities.NeedType{entities.NeedRehabilitation, entities.NeedEmergency}

	first := planner.Plan("Chicago", needs)
	second := planner.Plan("Chicago", needs)

	assert.Equal(t, first.Queries, second.Queries)
	assert.Equal(t, first.TypeHints, second.TypeHints)
}

func TestPlan_CanonicalNeedOrderIgnoresRequestOrder(t *testing.T) {
	planner := NewQueryPlanner(testSearchConfig())

	forward := planner.Plan("Chicago", []entities.NeedType{entities.NeedEmergency, entities.NeedRehabilitation})
	reversed := planner.Plan("Chicago", []entities.NeedType{entities.NeedRehabilitation, entities.NeedEmergency})

	assert.Equal(t, forward.Queries, reversed.Queries)
	assert.Equal(t, "stroke center near Chicago", forward.Queries[0])
}

func TestPlan_NoDuplicateQueries(t *testing.T) {
	planner := NewQueryPlanner(testSearchConfig())

	plan := planner.Plan("Chicago", entities.NeedTypeOrder)

	seen := map[string]bool{}
	for _, query := range plan.Queries {
		assert.False(t, seen[query], "duplicate query: %s", query)
		seen[query] = true
	}
}

func TestPlan_SupportGroupsWidenRadius(t *testing.T) {
	planner := NewQueryPlanner(testSearchConfig())

	narrow := planner.Plan("Chicago", []entities.NeedType{entities.NeedEmergency})
	wide := planner.Plan("Chicago", []entities.NeedType{entities.NeedEmergency, entities.NeedSupportGroups})

	assert.Equal(t, 50.0, narrow.RadiusKm)
	assert.Equal(t, 80.0, wide.RadiusKm)
}
