package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
)

type fakeInsightProvider struct {
	insights []providers.FacilityInsight
	err      error
	calls    int
}

func (f *fakeInsightProvider) AnalyzeFacilities(ctx context.Context, req providers.InsightRequest) ([]providers.FacilityInsight, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.insights, nil
}

func rankedFacility(name string, need entities.NeedType) *entities.RankedFacility {
	return &entities.RankedFacility{
		Candidate:   entities.Candidate{Name: name, Address: "1 Main St"},
		MatchedNeed: need,
	}
}

func TestEnrich_ProviderFailureFallsBackEverywhere(t *testing.T) {
	provider := &fakeInsightProvider{err: errors.New("service down")}
	svc := NewEnrichmentService(provider, nil, testSearchConfig())

	facilities := []*entities.RankedFacility{
		rankedFacility("General Hospital", entities.NeedEmergency),
		rankedFacility("Motion Physical Therapy", entities.NeedPhysicalTherapy),
	}

	enriched := svc.Enrich(context.Background(), facilities, "Nashville, TN", []entities.NeedType{entities.NeedEmergency}, "English")

	require.Len(t, enriched, 2)
	for _, facility := range enriched {
		require.NotNil(t, facility.Enrichment)
		assert.Equal(t, entities.EnrichmentSourceRules, facility.Enrichment.Source)
	}
}

func TestEnrich_NepalEyeHospitalAlwaysLowForEmergency(t *testing.T) {
	needs := []entities.NeedType{entities.NeedEmergency}

	// Whether the generative service fails or answers High, the override
	// forces Low.
	failing := &fakeInsightProvider{err: errors.New("unreachable")}
	generous := &fakeInsightProvider{insights: []providers.FacilityInsight{
		{Index: 0, MedicalRelevance: entities.TierHigh, ServiceMatch: "yes"},
	}}

	for _, provider := range []*fakeInsightProvider{failing, generous} {
		svc := NewEnrichmentService(provider, nil, testSearchConfig())
		enriched := svc.Enrich(context.Background(), []*entities.RankedFacility{
			rankedFacility("Nepal Eye Hospital", entities.NeedEmergency),
		}, "Kathmandu", needs, "Nepali")

		require.Len(t, enriched, 1)
		require.NotNil(t, enriched[0].Enrichment)
		assert.Equal(t, entities.TierLow, enriched[0].Enrichment.MedicalRelevance)
		assert.Equal(t, entities.EnrichmentSourceRules, enriched[0].Enrichment.Source)
	}
}

func TestEnrich_AllOrNothingProvenance(t *testing.T) {
	provider := &fakeInsightProvider{insights: []providers.FacilityInsight{
		{Index: 0, MedicalRelevance: entities.TierHigh, ServiceMatch: "yes", SpecialtyNote: "Full-service acute hospital."},
	}}
	cfg := testSearchConfig()
	cfg.EnrichmentBatchSize = 1
	svc := NewEnrichmentService(provider, nil, cfg)

	facilities := []*entities.RankedFacility{
		rankedFacility("General Hospital", entities.NeedEmergency),
		rankedFacility("Suburb Clinic", entities.NeedEmergency),
	}

	enriched := svc.Enrich(context.Background(), facilities, "Nashville, TN", []entities.NeedType{entities.NeedEmergency}, "English")

	require.Len(t, enriched, 2)
	assert.Equal(t, entities.EnrichmentSourceAI, enriched[0].Enrichment.Source)
	assert.Equal(t, "Full-service acute hospital.", enriched[0].Enrichment.SpecialtyNote)
	assert.Equal(t, entities.EnrichmentSourceRules, enriched[1].Enrichment.Source)
}

func TestEnrich_DoesNotMutateInput(t *testing.T) {
	svc := NewEnrichmentService(nil, nil, testSearchConfig())
	original := rankedFacility("General Hospital", entities.NeedEmergency)

	enriched := svc.Enrich(context.Background(), []*entities.RankedFacility{original}, "Nashville, TN", []entities.NeedType{entities.NeedEmergency}, "English")

	assert.Nil(t, original.Enrichment)
	require.Len(t, enriched, 1)
	assert.NotNil(t, enriched[0].Enrichment)
}

func TestRuleInsight_SpeechNameHighForSpeechNeed(t *testing.T) {
	facility := rankedFacility("Clear Voice Speech Therapy", entities.NeedSpeechTherapy)
	insight := ruleInsight(facility, []entities.NeedType{entities.NeedSpeechTherapy}, "English")

	assert.Equal(t, entities.TierHigh, insight.MedicalRelevance)
	assert.Equal(t, "yes", insight.ServiceMatch)
	assert.Equal(t, entities.EnrichmentSourceRules, insight.Source)
}
