package entities

import "strings"

// GeoPoint represents geographical coordinates plus the country they fall
// in. It is produced once per search by the geo resolver and never mutated.
type GeoPoint struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryCode string  `json:"country_code,omitempty"`
}

// Candidate is a raw facility record as returned by the place-search
// provider. Optional provider fields are resolved to explicit defaults at
// ingestion; nothing downstream re-checks the wire format.
type Candidate struct {
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone,omitempty"`
	Website        string    `json:"website,omitempty"`
	Rating         *float64  `json:"rating,omitempty"`
	RatingCount    int       `json:"rating_count"`
	CategoryTags   []string  `json:"category_tags,omitempty"`
	Coordinates    *GeoPoint `json:"coordinates,omitempty"`
	BusinessStatus string    `json:"business_status,omitempty"`
}

// IdentityKey is the deduplication identity of a candidate: the
// case-normalized (name, address) pair.
func (c *Candidate) IdentityKey() string {
	return strings.ToLower(strings.TrimSpace(c.Name)) + "|" + strings.ToLower(strings.TrimSpace(c.Address))
}

// HasTag reports whether the candidate carries the given category tag.
func (c *Candidate) HasTag(tag string) bool {
	for _, t := range c.CategoryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// DistanceInfo is the great-circle distance from the search origin,
// rounded to one decimal in both units.
type DistanceInfo struct {
	Km    float64 `json:"km"`
	Miles float64 `json:"miles"`
}

// MapLinks holds travel URLs for one map provider.
type MapLinks struct {
	Driving string `json:"driving"`
	General string `json:"general"`
}

// DirectionsLinks holds travel links for the supported map providers.
// They are a pure function of the facility's address, name and coordinates.
type DirectionsLinks struct {
	GoogleMaps    MapLinks `json:"google_maps"`
	OpenStreetMap MapLinks `json:"openstreetmap"`
}

// RelevanceTier buckets facilities by clinical relevance.
type RelevanceTier string

const (
	TierHigh   RelevanceTier = "High"
	TierMedium RelevanceTier = "Medium"
	TierLow    RelevanceTier = "Low"
)

// RankedFacility is a candidate after distance attachment and scoring.
// It is created by the ranker and never mutated afterwards; enrichment
// produces a copy with the insight fields filled in.
type RankedFacility struct {
	Candidate
	Distance      *DistanceInfo     `json:"distance,omitempty"`
	Directions    DirectionsLinks   `json:"directions"`
	PriorityScore int               `json:"priority_score"`
	RelevanceTier RelevanceTier     `json:"relevance_tier"`
	MatchedNeed   NeedType          `json:"matched_need"`
	Enrichment    *EnrichmentResult `json:"enrichment,omitempty"`
}

// WithEnrichment returns a copy of the facility with the insight attached.
func (f *RankedFacility) WithEnrichment(e *EnrichmentResult) *RankedFacility {
	out := *f
	out.Enrichment = e
	return &out
}

// EnrichmentResult is the per-facility insight, sourced either entirely
// from the generative analysis or entirely from the deterministic rule
// tables, never a partial merge of both.
type EnrichmentResult struct {
	MedicalRelevance RelevanceTier `json:"medical_relevance"`
	LanguageSupport  string        `json:"language_support"`
	LanguageNote     string        `json:"language_note,omitempty"`
	ServiceMatch     string        `json:"service_match,omitempty"`
	SpecialtyNote    string        `json:"specialty_note,omitempty"`
	LikelyServices   []string      `json:"likely_services,omitempty"`
	Source           string        `json:"source"`
}

// Enrichment sources.
const (
	EnrichmentSourceAI    = "ai"
	EnrichmentSourceRules = "rules"
)
