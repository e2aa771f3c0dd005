package services

import (
	"context"
	"strings"
	"time"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
	"github.com/ctrlz-health/carefinder/internal/infrastructure/observability"
	"github.com/ctrlz-health/carefinder/pkg/config"
)

const enrichmentCallTimeout = 25 * time.Second

// EnrichmentService attaches an insight to every ranked facility. The top
// of the list goes through the generative provider in one batched call;
// everything else, and everything when that call fails, gets the
// deterministic rule result. Each facility's insight comes entirely from
// one source.
type EnrichmentService struct {
	insight   providers.FacilityInsightProvider
	metrics   *observability.Metrics
	batchSize int
}

// NewEnrichmentService creates a new enrichment service. The insight
// provider may be nil; then every facility takes the rule path.
func NewEnrichmentService(insight providers.FacilityInsightProvider, metrics *observability.Metrics, cfg *config.SearchConfig) *EnrichmentService {
	batchSize := cfg.EnrichmentBatchSize
	if batchSize <= 0 {
		batchSize = 12
	}
	return &EnrichmentService{
		insight:   insight,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Enrich returns a new facility list with insights attached. The input
// records are never mutated. Facilities caught by the override table take
// the rule result even when the generative call covered them; the
// override is a correctness guarantee, not a preference.
func (s *EnrichmentService) Enrich(ctx context.Context, facilities []*entities.RankedFacility, location string, needTypes []entities.NeedType, language string) []*entities.RankedFacility {
	insights := s.analyzeTop(ctx, facilities, location, needTypes, language)

	out := make([]*entities.RankedFacility, 0, len(facilities))
	for i, facility := range facilities {
		if overrideApplies(facility, needTypes) {
			out = append(out, facility.WithEnrichment(ruleInsight(facility, needTypes, language)))
			continue
		}
		if insight, ok := insights[i]; ok {
			out = append(out, facility.WithEnrichment(&entities.EnrichmentResult{
				MedicalRelevance: insight.MedicalRelevance,
				LanguageSupport:  insight.LanguageSupport,
				LanguageNote:     insight.LanguageNote,
				ServiceMatch:     insight.ServiceMatch,
				SpecialtyNote:    insight.SpecialtyNote,
				LikelyServices:   insight.LikelyServices,
				Source:           entities.EnrichmentSourceAI,
			}))
			continue
		}
		out = append(out, facility.WithEnrichment(ruleInsight(facility, needTypes, language)))
	}
	return out
}

// analyzeTop submits the top batch to the generative provider and maps
// the insights back to facility positions. A failed or malformed call
// yields nil, which routes the whole list to the rule path.
func (s *EnrichmentService) analyzeTop(ctx context.Context, facilities []*entities.RankedFacility, location string, needTypes []entities.NeedType, language string) map[int]providers.FacilityInsight {
	if s.insight == nil || len(facilities) == 0 {
		return nil
	}

	logger := observability.LoggerFromContext(ctx)

	batch := len(facilities)
	if batch > s.batchSize {
		batch = s.batchSize
	}

	req := providers.InsightRequest{
		Location:   location,
		NeedTypes:  needTypes,
		Language:   language,
		Facilities: make([]providers.InsightCandidate, 0, batch),
	}
	for i := 0; i < batch; i++ {
		req.Facilities = append(req.Facilities, providers.InsightCandidate{
			Index:        i,
			Name:         facilities[i].Name,
			Address:      facilities[i].Address,
			CategoryTags: facilities[i].CategoryTags,
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, enrichmentCallTimeout)
	defer cancel()

	insights, err := s.insight.AnalyzeFacilities(callCtx, req)
	observability.RecordProviderCall(ctx, s.metrics, "insight", err)
	if err != nil {
		logger.Warn().
			Err(err).
			Int("batch_size", batch).
			Msg("facility insight call failed, falling back to rule-based enrichment")
		return nil
	}

	byIndex := make(map[int]providers.FacilityInsight, len(insights))
	for _, insight := range insights {
		byIndex[insight.Index] = insight
	}
	return byIndex
}

// overrideNeedTypes are the need types under which a single-specialty
// facility is forced to Low relevance no matter what the generative pass
// said about it.
var overrideNeedTypes = []entities.NeedType{
	entities.NeedEmergency,
	entities.NeedRehabilitation,
	entities.NeedSupportGroups,
}

func overrideApplies(facility *entities.RankedFacility, needTypes []entities.NeedType) bool {
	if !IsSingleSpecialty(facility.Name) {
		return false
	}
	for _, need := range overrideNeedTypes {
		if entities.ContainsNeed(needTypes, need) {
			return true
		}
	}
	return false
}

// needServiceHints names the services a facility likely offers when its
// name signals the requested need.
var needServiceHints = map[entities.NeedType][]string{
	entities.NeedEmergency:           {"emergency care", "acute stroke treatment"},
	entities.NeedRehabilitation:      {"stroke rehabilitation", "inpatient therapy"},
	entities.NeedSpeechTherapy:       {"speech therapy", "swallowing therapy"},
	entities.NeedPhysicalTherapy:     {"physical therapy", "mobility training"},
	entities.NeedOccupationalTherapy: {"occupational therapy", "daily living skills training"},
	entities.NeedSupportGroups:       {"peer support meetings", "caregiver support"},
}

// needNameSignals admit a High rating on the rule path when the facility
// name advertises the matched need directly.
var needNameSignals = map[entities.NeedType][]string{
	entities.NeedEmergency:           {"stroke", "trauma", "emergency"},
	entities.NeedRehabilitation:      {"rehab", "recovery", "physiotherapy"},
	entities.NeedSpeechTherapy:       {"speech", "language"},
	entities.NeedPhysicalTherapy:     {"physical therapy", "physiotherapy", "physio"},
	entities.NeedOccupationalTherapy: {"occupational"},
	entities.NeedSupportGroups:       {"support group", "support"},
}

// ruleInsight is the deterministic fallback. It infers relevance and
// service match from the facility class, the matched need, and the name.
func ruleInsight(facility *entities.RankedFacility, needTypes []entities.NeedType, language string) *entities.EnrichmentResult {
	result := &entities.EnrichmentResult{
		LanguageSupport: "Unknown; call ahead to confirm " + language + " support",
		Source:          entities.EnrichmentSourceRules,
	}

	name := strings.ToLower(facility.Name)

	switch {
	case IsSingleSpecialty(facility.Name):
		result.MedicalRelevance = entities.TierLow
		result.ServiceMatch = "no"
		result.SpecialtyNote = "Single-specialty facility; not equipped for stroke care."
	case nameSignalsNeed(name, facility.MatchedNeed):
		result.MedicalRelevance = entities.TierHigh
		result.ServiceMatch = "yes"
		result.SpecialtyNote = "Name indicates services matching the requested care type."
		result.LikelyServices = needServiceHints[facility.MatchedNeed]
	case IsMajorMedical(&facility.Candidate):
		result.MedicalRelevance = entities.TierHigh
		result.ServiceMatch = "yes"
		result.SpecialtyNote = "General medical facility; broad acute and referral services."
		result.LikelyServices = []string{"emergency care", "inpatient care", "specialist referral"}
	default:
		result.MedicalRelevance = entities.TierMedium
		result.ServiceMatch = "partial"
		result.SpecialtyNote = "Relevance could not be confirmed from the facility profile."
	}

	return result
}

func nameSignalsNeed(loweredName string, need entities.NeedType) bool {
	for _, signal := range needNameSignals[need] {
		if strings.Contains(loweredName, signal) {
			return true
		}
	}
	return false
}
