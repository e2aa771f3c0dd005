package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/pkg/config"
)

func testWeights() config.ScoringConfig {
	return config.ScoringConfig{
		SpecialtyMatch: 10,
		FacilityClass:  8,
		TraumaCenter:   7,
		EmergencyDept:  6,
		UrgentCare:     3,
	}
}

func TestScore_PointTable(t *testing.T) {
	svc := NewRankingService(testWeights())

	tests := []struct {
		name  string
		score int
	}{
		{"Vanderbilt Stroke Center", 10},
		{"General Hospital", 8},
		{"Regional Trauma Hospital", 15},
		{"City Emergency Hospital", 14},
		{"QuickCare Urgent Clinic", 3},
		{"Smile Dental Hospital", 0},
		{"Corner Coffee Shop", 0},
	}

	for _, tt := range tests {
		candidate := &entities.Candidate{Name: tt.name}
		assert.Equal(t, tt.score, svc.Score(candidate), tt.name)
	}
}

func TestScore_EmergencyExcludesUrgent(t *testing.T) {
	svc := NewRankingService(testWeights())
	// "urgent" takes the urgent-care points, not the emergency ones.
	assert.Equal(t, 3, svc.Score(&entities.Candidate{Name: "Urgent Emergency Walk-In"}))
}

func TestTier_Thresholds(t *testing.T) {
	svc := NewRankingService(testWeights())
	assert.Equal(t, entities.TierHigh, svc.Tier(10))
	assert.Equal(t, entities.TierMedium, svc.Tier(8))
	assert.Equal(t, entities.TierLow, svc.Tier(3))
	assert.Equal(t, entities.TierLow, svc.Tier(0))
}

func TestIsSingleSpecialty(t *testing.T) {
	assert.True(t, IsSingleSpecialty("Nepal Eye Hospital"))
	assert.True(t, IsSingleSpecialty("Smile Dental Clinic"))
	assert.True(t, IsSingleSpecialty("Kathmandu ENT Center"))
	assert.False(t, IsSingleSpecialty("City Urgent Care"))
	assert.False(t, IsSingleSpecialty("Emergency Department"))
	assert.False(t, IsSingleSpecialty("Meyer Medical Center"))
}

func TestRank_TieBrokenByDistance(t *testing.T) {
	svc := NewRankingService(testWeights())
	origin := &entities.GeoPoint{Latitude: 36.1627, Longitude: -86.7816}

	matches := []Match{
		{Candidate: &entities.Candidate{Name: "Far General Hospital", Coordinates: &entities.GeoPoint{Latitude: 36.3, Longitude: -86.7}}, Need: entities.NeedEmergency},
		{Candidate: &entities.Candidate{Name: "Near General Hospital", Coordinates: &entities.GeoPoint{Latitude: 36.17, Longitude: -86.78}}, Need: entities.NeedEmergency},
	}

	ranked := svc.Rank(matches, origin, "Nashville, TN", 50)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Near General Hospital", ranked[0].Name)
}

func TestRank_UnknownDistanceSortsLast(t *testing.T) {
	svc := NewRankingService(testWeights())
	origin := &entities.GeoPoint{Latitude: 36.1627, Longitude: -86.7816}

	matches := []Match{
		{Candidate: &entities.Candidate{Name: "Unlocated General Hospital"}, Need: entities.NeedEmergency},
		{Candidate: &entities.Candidate{Name: "Located General Hospital", Coordinates: &entities.GeoPoint{Latitude: 36.17, Longitude: -86.78}}, Need: entities.NeedEmergency},
	}

	ranked := svc.Rank(matches, origin, "Nashville, TN", 50)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Located General Hospital", ranked[0].Name)
	assert.Nil(t, ranked[1].Distance)
}

func TestRank_RadiusCutoffKeepsUnknownDistance(t *testing.T) {
	svc := NewRankingService(testWeights())
	origin := &entities.GeoPoint{Latitude: 36.1627, Longitude: -86.7816}

	matches := []Match{
		// Memphis is about 300 km from Nashville, well past the radius.
		{Candidate: &entities.Candidate{Name: "Memphis General Hospital", Coordinates: &entities.GeoPoint{Latitude: 35.1495, Longitude: -90.0490}}, Need: entities.NeedEmergency},
		{Candidate: &entities.Candidate{Name: "Unlocated General Hospital"}, Need: entities.NeedEmergency},
	}

	ranked := svc.Rank(matches, origin, "Nashville, TN", 50)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Unlocated General Hospital", ranked[0].Name)
}

func TestRank_NilOriginSkipsDistances(t *testing.T) {
	svc := NewRankingService(testWeights())

	matches := []Match{
		{Candidate: &entities.Candidate{Name: "General Hospital", Coordinates: &entities.GeoPoint{Latitude: 36.17, Longitude: -86.78}}, Need: entities.NeedEmergency},
	}

	ranked := svc.Rank(matches, nil, "Nashville, TN", 50)
	require.Len(t, ranked, 1)
	assert.Nil(t, ranked[0].Distance)
	assert.NotEmpty(t, ranked[0].Directions.GoogleMaps.Driving)
	assert.NotEmpty(t, ranked[0].Directions.OpenStreetMap.General)
}

func TestSortFacilities_DistanceIdempotent(t *testing.T) {
	facilities := []*entities.RankedFacility{
		{Candidate: entities.Candidate{Name: "B"}, Distance: &entities.DistanceInfo{Km: 9.0}},
		{Candidate: entities.Candidate{Name: "A"}, Distance: &entities.DistanceInfo{Km: 2.0}},
		{Candidate: entities.Candidate{Name: "C"}},
	}

	SortFacilities(facilities, entities.SortByDistance)
	first := []string{facilities[0].Name, facilities[1].Name, facilities[2].Name}

	SortFacilities(facilities, entities.SortByDistance)
	second := []string{facilities[0].Name, facilities[1].Name, facilities[2].Name}

	assert.Equal(t, []string{"A", "B", "C"}, first)
	assert.Equal(t, first, second)
}
