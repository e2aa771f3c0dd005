package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
)

const facilityInsightSystemPrompt = `You are a medical facility analyst helping stroke survivors and their caregivers evaluate care options. You receive a JSON array of facilities. Return ONLY a valid JSON array, one object per input facility, with this schema:
[
  {
    "index": number (the facility's index from the input, unchanged),
    "medical_relevance": "high" | "medium" | "low",
    "language_support": string (short phrase, e.g. "English widely spoken" or "Nepali primary, English limited"),
    "language_note": string (one short sentence about language accessibility, empty string if not applicable),
    "service_match": "yes" | "partial" | "no",
    "specialty_note": string (one short sentence about the facility's focus),
    "likely_services": string[] (1-4 services the facility likely offers)
  }
]
Rules:
- Single-specialty facilities (eye, dental, skin, ENT, cosmetic) are "low" relevance for stroke care regardless of size or reputation.
- General hospitals and medical centers with emergency or neurology services are "high".
- Rehabilitation centers and therapy clinics are "high" for rehabilitation needs, "medium" otherwise.
- Answer for EVERY facility in the input. Do not skip, merge, or add entries.
- No prose, no Markdown, no explanation outside the JSON array.`

type insightFacilityWire struct {
	Index        int      `json:"index"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	CategoryTags []string `json:"category_tags,omitempty"`
}

func buildInsightUserPrompt(req providers.InsightRequest) (string, error) {
	wire := make([]insightFacilityWire, 0, len(req.Facilities))
	for _, f := range req.Facilities {
		wire = append(wire, insightFacilityWire{
			Index:        f.Index,
			Name:         f.Name,
			Address:      f.Address,
			CategoryTags: f.CategoryTags,
		})
	}
	facilities, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}

	needs := make([]string, 0, len(req.NeedTypes))
	for _, need := range req.NeedTypes {
		needs = append(needs, string(need))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Search location: %s\n", req.Location)
	fmt.Fprintf(&sb, "Care types requested: %s\n", strings.Join(needs, ", "))
	if req.Language != "" {
		fmt.Fprintf(&sb, "Preferred language: %s\n", req.Language)
	}
	fmt.Fprintf(&sb, "Facilities:\n%s\n", facilities)
	return sb.String(), nil
}

type facilityInsightWire struct {
	Index            int      `json:"index"`
	MedicalRelevance string   `json:"medical_relevance"`
	LanguageSupport  string   `json:"language_support"`
	LanguageNote     string   `json:"language_note"`
	ServiceMatch     string   `json:"service_match"`
	SpecialtyNote    string   `json:"specialty_note"`
	LikelyServices   []string `json:"likely_services"`
}

// parseFacilityInsights parses the model output strictly. Anything other
// than a complete, well-indexed array is an error, never a partial result.
func parseFacilityInsights(data string, expected int) ([]providers.FacilityInsight, error) {
	var wire []facilityInsightWire
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil, fmt.Errorf("output is not a JSON array: %w", err)
	}
	if len(wire) != expected {
		return nil, fmt.Errorf("expected %d entries, got %d", expected, len(wire))
	}

	insights := make([]providers.FacilityInsight, 0, len(wire))
	seen := make(map[int]bool, len(wire))
	for _, entry := range wire {
		if entry.Index < 0 || entry.Index >= expected {
			return nil, fmt.Errorf("entry index %d out of range", entry.Index)
		}
		if seen[entry.Index] {
			return nil, fmt.Errorf("duplicate entry index %d", entry.Index)
		}
		seen[entry.Index] = true

		tier, err := relevanceTier(entry.MedicalRelevance)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", entry.Index, err)
		}
		insights = append(insights, providers.FacilityInsight{
			Index:            entry.Index,
			MedicalRelevance: tier,
			LanguageSupport:  entry.LanguageSupport,
			LanguageNote:     entry.LanguageNote,
			ServiceMatch:     entry.ServiceMatch,
			SpecialtyNote:    entry.SpecialtyNote,
			LikelyServices:   entry.LikelyServices,
		})
	}
	return insights, nil
}

func relevanceTier(raw string) (entities.RelevanceTier, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return entities.TierHigh, nil
	case "medium":
		return entities.TierMedium, nil
	case "low":
		return entities.TierLow, nil
	default:
		return "", fmt.Errorf("invalid medical_relevance %q", raw)
	}
}
