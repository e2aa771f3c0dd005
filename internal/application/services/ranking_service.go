package services

import (
	"sort"
	"strings"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/pkg/config"
	"github.com/ctrlz-health/carefinder/pkg/geo"
)

// singleSpecialtyTerms mark facilities whose whole practice is one
// non-stroke specialty. A "hospital" in the name does not outrank these.
var singleSpecialtyTerms = []string{
	"ophthal", "optical", "vision",
	"dental", "dentist", "orthodont",
	"skin", "derma", "cosmetic",
	"ear nose",
}

// Matched as whole words only, so "urgent", "department" and names like
// "Meyer" stay clear.
var singleSpecialtyWords = []string{"ent", "eye", "eyes"}

// IsSingleSpecialty reports whether the facility appears to be a
// single-specialty practice (eye, dental, skin, ENT, cosmetic).
func IsSingleSpecialty(name string) bool {
	lowered := strings.ToLower(name)
	for _, term := range singleSpecialtyTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	for _, word := range strings.Fields(lowered) {
		for _, specialty := range singleSpecialtyWords {
			if word == specialty {
				return true
			}
		}
	}
	return false
}

// RankingService scores filtered candidates, attaches distance and travel
// links, sorts, and applies the radius cutoff.
type RankingService struct {
	weights config.ScoringConfig
}

// NewRankingService creates a new ranking service.
func NewRankingService(weights config.ScoringConfig) *RankingService {
	return &RankingService{weights: weights}
}

// Rank builds the final ordered facility list. Origin may be nil; then no
// distances are attached and the radius cutoff cannot drop anything.
// Candidates with a known distance beyond radiusKm are dropped; unknown
// distances are always retained.
func (s *RankingService) Rank(matches []Match, origin *entities.GeoPoint, originText string, radiusKm float64) []*entities.RankedFacility {
	ranked := make([]*entities.RankedFacility, 0, len(matches))

	for _, match := range matches {
		candidate := match.Candidate
		facility := &entities.RankedFacility{
			Candidate:   *candidate,
			MatchedNeed: match.Need,
		}

		facility.PriorityScore = s.Score(candidate)
		facility.RelevanceTier = s.Tier(facility.PriorityScore)

		if origin != nil && candidate.Coordinates != nil {
			facility.Distance = &entities.DistanceInfo{
				Km:    geo.Haversine(origin.Latitude, origin.Longitude, candidate.Coordinates.Latitude, candidate.Coordinates.Longitude, geo.UnitKm),
				Miles: geo.Haversine(origin.Latitude, origin.Longitude, candidate.Coordinates.Latitude, candidate.Coordinates.Longitude, geo.UnitMiles),
			}
		}
		facility.Directions = buildDirections(origin, originText, candidate)

		if facility.Distance != nil && radiusKm > 0 && facility.Distance.Km > radiusKm {
			continue
		}

		ranked = append(ranked, facility)
	}

	SortFacilities(ranked, entities.SortByRelevance)
	return ranked
}

// Score applies the point table to a candidate's name and tags.
func (s *RankingService) Score(candidate *entities.Candidate) int {
	name := strings.ToLower(candidate.Name)
	score := 0

	if strings.Contains(name, "stroke") {
		score += s.weights.SpecialtyMatch
	}
	if IsMajorMedical(candidate) && !IsSingleSpecialty(candidate.Name) {
		score += s.weights.FacilityClass
	}
	if strings.Contains(name, "trauma") {
		score += s.weights.TraumaCenter
	}
	if strings.Contains(name, "emergency") && !strings.Contains(name, "urgent") {
		score += s.weights.EmergencyDept
	}
	if strings.Contains(name, "urgent") {
		score += s.weights.UrgentCare
	}

	return score
}

// Tier buckets a score into a relevance tier.
func (s *RankingService) Tier(score int) entities.RelevanceTier {
	switch {
	case score >= s.weights.SpecialtyMatch:
		return entities.TierHigh
	case score >= s.weights.FacilityClass:
		return entities.TierMedium
	default:
		return entities.TierLow
	}
}

// SortFacilities orders a facility list in place by the given key.
// Relevance sorts by descending score with ascending distance as the tie
// break; distance sorts by ascending distance. Facilities without a known
// distance sort after those with one, keeping their relative order. Pure
// and idempotent: re-sorting an already sorted list changes nothing.
func SortFacilities(facilities []*entities.RankedFacility, sortBy string) {
	switch sortBy {
	case entities.SortByDistance:
		sort.SliceStable(facilities, func(i, j int) bool {
			return distanceLess(facilities[i], facilities[j])
		})
	default:
		sort.SliceStable(facilities, func(i, j int) bool {
			if facilities[i].PriorityScore != facilities[j].PriorityScore {
				return facilities[i].PriorityScore > facilities[j].PriorityScore
			}
			return distanceLess(facilities[i], facilities[j])
		})
	}
}

func distanceLess(a, b *entities.RankedFacility) bool {
	switch {
	case a.Distance == nil:
		return false
	case b.Distance == nil:
		return true
	default:
		return a.Distance.Km < b.Distance.Km
	}
}

func buildDirections(origin *entities.GeoPoint, originText string, candidate *entities.Candidate) entities.DirectionsLinks {
	links := entities.DirectionsLinks{
		GoogleMaps: entities.MapLinks{
			Driving: geo.GoogleDrivingURL(originText, candidate.Name, candidate.Address),
			General: geo.GoogleSearchURL(candidate.Name, candidate.Address),
		},
	}

	if origin != nil && candidate.Coordinates != nil {
		links.OpenStreetMap = entities.MapLinks{
			Driving: geo.OSMDrivingURL(origin.Latitude, origin.Longitude, candidate.Coordinates.Latitude, candidate.Coordinates.Longitude),
			General: geo.OSMMarkerURL(candidate.Coordinates.Latitude, candidate.Coordinates.Longitude),
		}
	} else {
		links.OpenStreetMap = entities.MapLinks{
			Driving: geo.OSMSearchURL(candidate.Name, candidate.Address),
			General: geo.OSMSearchURL(candidate.Name, candidate.Address),
		}
	}

	return links
}
