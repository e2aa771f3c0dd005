package providers

import (
	"context"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
)

// InsightCandidate is the minimal facility view submitted for generative
// analysis: name, address and category tags only.
type InsightCandidate struct {
	Index        int
	Name         string
	Address      string
	CategoryTags []string
}

// InsightRequest is one batched analysis request.
type InsightRequest struct {
	Location   string
	NeedTypes  []entities.NeedType
	Language   string
	Facilities []InsightCandidate
}

// FacilityInsight is the structured per-facility assessment returned by
// the generative service. Index refers back to InsightRequest.Facilities.
type FacilityInsight struct {
	Index            int
	MedicalRelevance entities.RelevanceTier
	LanguageSupport  string
	LanguageNote     string
	ServiceMatch     string
	SpecialtyNote    string
	LikelyServices   []string
}

// FacilityInsightProvider performs one batched relevance analysis. Any
// deviation from the JSON contract is an error; callers treat an error as
// a full failure of the pass and fall back to deterministic rules.
type FacilityInsightProvider interface {
	AnalyzeFacilities(ctx context.Context, req InsightRequest) ([]FacilityInsight, error)
}
