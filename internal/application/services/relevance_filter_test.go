package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
)

func TestFilter_VeterinaryAlwaysExcluded(t *testing.T) {
	filter := NewRelevanceFilter()
	candidates := []*entities.Candidate{
		{Name: "Nashville Veterinary Hospital", Address: "1 Pet Ln"},
		{Name: "General Hospital", Address: "2 Main St"},
	}

	needCombos := [][]entities.NeedType{
		{entities.NeedEmergency},
		{entities.NeedRehabilitation},
		{entities.NeedSpeechTherapy, entities.NeedPhysicalTherapy},
		entities.NeedTypeOrder,
	}

	for _, needs := range needCombos {
		matches := filter.Filter(candidates, needs)
		for _, match := range matches {
			assert.NotContains(t, match.Candidate.Name, "Veterinary")
		}
	}
}

func TestFilter_ExcludesByTag(t *testing.T) {
	filter := NewRelevanceFilter()
	candidates := []*entities.Candidate{
		{Name: "Happy Paws Clinic", CategoryTags: []string{"veterinary_care"}},
	}

	matches := filter.Filter(candidates, []entities.NeedType{entities.NeedEmergency})
	assert.Empty(t, matches)
}

func TestFilter_FirstMatchAttribution(t *testing.T) {
	filter := NewRelevanceFilter()
	// Matches both emergency ("hospital") and rehabilitation ("rehab");
	// emergency evaluates first, so it wins the attribution.
	candidates := []*entities.Candidate{
		{Name: "Rehab Hospital of Tennessee"},
	}

	matches := filter.Filter(candidates, []entities.NeedType{entities.NeedRehabilitation, entities.NeedEmergency})
	require.Len(t, matches, 1)
	assert.Equal(t, entities.NeedEmergency, matches[0].Need)
}

func TestFilter_MajorMedicalFallbackKeepsHospitals(t *testing.T) {
	filter := NewRelevanceFilter()
	// No speech keyword, but a general hospital must never be dropped.
	candidates := []*entities.Candidate{
		{Name: "Saint Thomas Hospital"},
		{Name: "Corner Coffee Shop"},
	}

	matches := filter.Filter(candidates, []entities.NeedType{entities.NeedSpeechTherapy})
	require.Len(t, matches, 1)
	assert.Equal(t, "Saint Thomas Hospital", matches[0].Candidate.Name)
	assert.Equal(t, entities.NeedSpeechTherapy, matches[0].Need)
}

func TestFilter_KeywordAndTagRules(t *testing.T) {
	filter := NewRelevanceFilter()
	candidates := []*entities.Candidate{
		{Name: "Downtown Speech Works"},
		{Name: "Motion Clinic", CategoryTags: []string{"physiotherapist"}},
		{Name: "Corner Coffee Shop"},
	}

	speech := filter.Filter(candidates, []entities.NeedType{entities.NeedSpeechTherapy})
	require.Len(t, speech, 1)
	assert.Equal(t, "Downtown Speech Works", speech[0].Candidate.Name)

	physical := filter.Filter(candidates, []entities.NeedType{entities.NeedPhysicalTherapy})
	require.Len(t, physical, 1)
	assert.Equal(t, "Motion Clinic", physical[0].Candidate.Name)
}
