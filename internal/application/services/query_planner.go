package services

import (
	"fmt"

	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/pkg/config"
)

// QueryPlan is the output of planning: the ordered provider queries, the
// facility-type hints for downstream filtering, and the search radius the
// need set calls for.
type QueryPlan struct {
	Queries   []string
	TypeHints []string
	RadiusKm  float64
}

// needQueryTemplates maps each need type to its search query templates.
// Order inside each list matters: it decides which query a result is
// attributed to when the same facility appears under several queries.
var needQueryTemplates = map[entities.NeedType][]string{
	entities.NeedEmergency: {
		"stroke center near %s",
		"trauma center near %s",
		"emergency room near %s",
	},
	entities.NeedRehabilitation: {
		"stroke rehabilitation near %s",
		"rehabilitation center near %s",
		"neuro rehabilitation near %s",
	},
	entities.NeedSpeechTherapy: {
		"speech therapy near %s",
		"speech language pathologist near %s",
	},
	entities.NeedPhysicalTherapy: {
		"physical therapy near %s",
		"physiotherapy clinic near %s",
	},
	entities.NeedOccupationalTherapy: {
		"occupational therapy near %s",
		"occupational therapist near %s",
	},
	entities.NeedSupportGroups: {
		"stroke support group near %s",
		"community center near %s",
		"counseling center near %s",
	},
}

// genericQueryTemplates are always appended so every request has baseline
// coverage even for narrow need types.
var genericQueryTemplates = []string{
	"hospital near %s",
	"medical center near %s",
}

var needTypeHints = map[entities.NeedType][]string{
	entities.NeedEmergency:           {"hospital", "emergency_room"},
	entities.NeedRehabilitation:      {"hospital", "physiotherapist", "health"},
	entities.NeedSpeechTherapy:       {"speech_pathologist", "health"},
	entities.NeedPhysicalTherapy:     {"physiotherapist", "health"},
	entities.NeedOccupationalTherapy: {"occupational_therapist", "health"},
	entities.NeedSupportGroups:       {"community_center", "health"},
}

// QueryPlanner turns a location plus need set into an ordered, duplicate
// free query list. No network calls; fully deterministic.
type QueryPlanner struct {
	cfg *config.SearchConfig
}

// NewQueryPlanner creates a new query planner.
func NewQueryPlanner(cfg *config.SearchConfig) *QueryPlanner {
	return &QueryPlanner{cfg: cfg}
}

// Plan builds the query list for a request. Needs are expanded in the
// canonical need order regardless of request order, so the plan for a
// given need set is always the same.
func (p *QueryPlanner) Plan(location string, needTypes []entities.NeedType) QueryPlan {
	plan := QueryPlan{RadiusKm: p.radiusFor(needTypes)}
	seenQueries := make(map[string]bool)
	seenHints := make(map[string]bool)

	appendQuery := func(template string) {
		query := fmt.Sprintf(template, location)
		if seenQueries[query] {
			return
		}
		seenQueries[query] = true
		plan.Queries = append(plan.Queries, query)
	}

	for _, need := range entities.NeedTypeOrder {
		if !entities.ContainsNeed(needTypes, need) {
			continue
		}
		for _, template := range needQueryTemplates[need] {
			appendQuery(template)
		}
		for _, hint := range needTypeHints[need] {
			if seenHints[hint] {
				continue
			}
			seenHints[hint] = true
			plan.TypeHints = append(plan.TypeHints, hint)
		}
	}

	for _, template := range genericQueryTemplates {
		appendQuery(template)
	}

	return plan
}

func (p *QueryPlanner) radiusFor(needTypes []entities.NeedType) float64 {
	radius := p.cfg.DefaultRadiusKm
	if radius <= 0 {
		radius = 50
	}
	if entities.ContainsNeed(needTypes, entities.NeedSupportGroups) {
		wide := p.cfg.SupportGroupRadiusKm
		if wide <= 0 {
			wide = 80
		}
		if wide > radius {
			radius = wide
		}
	}
	return radius
}
