package services

import (
	"strings"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
)

// Match is a candidate that survived filtering, together with the need
// type whose rule admitted it. The need is the attribution used later for
// scoring notes and enrichment fallback, so first-match order matters.
type Match struct {
	Candidate *entities.Candidate
	Need      entities.NeedType
}

// Candidates whose name or tags indicate animal care are excluded
// unconditionally. Stroke care is human-only.
var exclusionTerms = []string{
	"veterinary",
	"veterinarian",
	"animal hospital",
	"animal clinic",
	"pet clinic",
	"pet hospital",
}

// needKeywords maps each need type to the name keywords that admit a
// candidate for it.
var needKeywords = map[entities.NeedType][]string{
	entities.NeedEmergency: {
		"hospital", "emergency", "trauma", "stroke", "medical center", "urgent",
	},
	entities.NeedRehabilitation: {
		"rehab", "recovery", "therapy", "physiotherapy", "physical medicine",
	},
	entities.NeedSpeechTherapy: {
		"speech", "language pathologist", "communication",
	},
	entities.NeedPhysicalTherapy: {
		"physical therapy", "physiotherapy", "physio", "sports medicine",
	},
	entities.NeedOccupationalTherapy: {
		"occupational",
	},
	entities.NeedSupportGroups: {
		"support group", "community center", "counseling", "mental health",
	},
}

// needTags maps each need type to the provider category tags that admit a
// candidate for it.
var needTags = map[entities.NeedType][]string{
	entities.NeedEmergency:           {"hospital", "emergency_room"},
	entities.NeedRehabilitation:      {"physiotherapist", "physical_therapy_clinic", "rehabilitation_center"},
	entities.NeedSpeechTherapy:       {"speech_pathologist"},
	entities.NeedPhysicalTherapy:     {"physiotherapist", "physical_therapy_clinic"},
	entities.NeedOccupationalTherapy: {"occupational_therapist"},
	entities.NeedSupportGroups:       {"community_center", "mental_health_clinic"},
}

var majorMedicalTerms = []string{"hospital", "medical center", "medical centre"}

// RelevanceFilter applies the deterministic keep/drop rules. No I/O.
type RelevanceFilter struct{}

// NewRelevanceFilter creates a new relevance filter.
func NewRelevanceFilter() *RelevanceFilter {
	return &RelevanceFilter{}
}

// Filter removes animal-care candidates, then keeps a candidate if any
// requested need's rule matches. Rules run in canonical need order and
// stop on the first match. Major medical facilities are kept even when no
// need rule matched, attributed to the first requested need.
func (f *RelevanceFilter) Filter(candidates []*entities.Candidate, needTypes []entities.NeedType) []Match {
	matches := make([]Match, 0, len(candidates))

	for _, candidate := range candidates {
		if isExcluded(candidate) {
			continue
		}

		matched := false
		for _, need := range entities.NeedTypeOrder {
			if !entities.ContainsNeed(needTypes, need) {
				continue
			}
			if matchesNeed(candidate, need) {
				matches = append(matches, Match{Candidate: candidate, Need: need})
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if IsMajorMedical(candidate) && len(needTypes) > 0 {
			matches = append(matches, Match{Candidate: candidate, Need: needTypes[0]})
		}
	}

	return matches
}

func isExcluded(candidate *entities.Candidate) bool {
	name := strings.ToLower(candidate.Name)
	for _, term := range exclusionTerms {
		if strings.Contains(name, term) {
			return true
		}
	}
	for _, tag := range candidate.CategoryTags {
		lowered := strings.ToLower(tag)
		if strings.Contains(lowered, "veterinary") || strings.Contains(lowered, "pet_store") {
			return true
		}
	}
	return false
}

func matchesNeed(candidate *entities.Candidate, need entities.NeedType) bool {
	name := strings.ToLower(candidate.Name)
	for _, keyword := range needKeywords[need] {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	for _, tag := range needTags[need] {
		if candidate.HasTag(tag) {
			return true
		}
	}
	return false
}

// IsMajorMedical reports whether the candidate is a general hospital or
// medical center. Such facilities are never dropped by the filter.
func IsMajorMedical(candidate *entities.Candidate) bool {
	name := strings.ToLower(candidate.Name)
	for _, term := range majorMedicalTerms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return candidate.HasTag("hospital")
}
