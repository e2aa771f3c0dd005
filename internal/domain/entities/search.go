package entities

import (
	"strings"
)

// LanguageLocal asks the service to detect the local language of the
// searched location instead of using a fixed one.
const LanguageLocal = "local"

// SearchRequest is the inbound search payload.
type SearchRequest struct {
	Location  string     `json:"location"`
	NeedTypes []NeedType `json:"need_types"`
	Language  string     `json:"language,omitempty"`
}

// Normalize trims the location and defaults the language.
func (r *SearchRequest) Normalize() {
	r.Location = strings.TrimSpace(r.Location)
	if strings.TrimSpace(r.Language) == "" {
		r.Language = LanguageLocal
	}
}

// Validate checks the request invariants: non-empty location after trim
// and a non-empty, known need type set.
func (r *SearchRequest) Validate() error {
	if r.Location == "" {
		return ErrMissingLocation
	}
	if len(r.NeedTypes) == 0 {
		return ErrMissingNeedTypes
	}
	for _, nt := range r.NeedTypes {
		if _, err := ParseNeedType(string(nt)); err != nil {
			return err
		}
	}
	return nil
}

// Sort keys accepted by the sort operation.
const (
	SortByDistance  = "distance"
	SortByRelevance = "relevance"
)

// EmergencyInfo carries the emergency phone guidance for the searched
// country.
type EmergencyInfo struct {
	Number string `json:"number"`
	Note   string `json:"note"`
}

// SearchTimings reports how long the pipeline stages took, in
// milliseconds.
type SearchTimings struct {
	PlacesMs     int64 `json:"places_ms"`
	EnrichmentMs int64 `json:"enrichment_ms"`
	TotalMs      int64 `json:"total_ms"`
}

// SearchMetadata describes how a result set was produced.
type SearchMetadata struct {
	Query         string        `json:"query"`
	NeedTypes     []NeedType    `json:"need_types"`
	QueriesUsed   []string      `json:"queries_used"`
	Coordinates   *GeoPoint     `json:"coordinates,omitempty"`
	FailedQueries int           `json:"failed_queries"`
	Timings       SearchTimings `json:"timings"`
}

// SearchResponse is the outcome of a full pipeline run. A run that found
// nothing is still a successful response with Success=false and a
// suggestion, not an error.
type SearchResponse struct {
	Success          bool              `json:"success"`
	Facilities       []*RankedFacility `json:"facilities"`
	TotalFound       int               `json:"total_found"`
	SearchRadius     string            `json:"search_radius"`
	DetectedLanguage string            `json:"detected_language"`
	EmergencyInfo    *EmergencyInfo    `json:"emergency_info,omitempty"`
	Suggestion       string            `json:"suggestion,omitempty"`
	Metadata         SearchMetadata    `json:"search_metadata"`
}
