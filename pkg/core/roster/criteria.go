package roster

import "github.com/jakechorley/duty-roster/pkg/core/model"

// Criterion defines a soft constraint of the candidate scorer.
// Criteria both pre-filter candidates and contribute to the candidate cost.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// Allows is a soft pre-filter. Returning false excludes the candidate for this slot-day.
	// desperate is true on the fallback pass for slots whose minimum must still be met;
	// most criteria allow every candidate in that case.
	Allows(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext, desperate bool) bool

	// Cost returns an unweighted cost contribution. Lower values win.
	// Return 0 if this criterion doesn't affect ranking.
	Cost(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext) float64

	// Weight is multiplied with Cost
	Weight() float64
}

// CriteriaForProfile assembles the criteria for the configured constraint profile
func CriteriaForProfile(cfg model.Config) []Criterion {
	criteria := []Criterion{
		NewSpanCriterion(),
		NewQuotaCriterion(WeightRemainingQuota),
		NewWeekendCriterion(),
		NewRequestedDayCriterion(WeightRequestedDay),
		NewPriorityTierCriterion(WeightPriorityTier),
		NewResourcePreservationCriterion(WeightResourcePreservation),
		NewGroupBalanceCriterion(WeightGroupBalance),
	}

	if cfg.AntiClustering {
		criteria = append(criteria, NewAntiClusteringCriterion(WeightAntiClustering))
	}

	switch opts := cfg.Options.(type) {
	case *model.ClinicalOptions:
		if opts.FatigueModel {
			threshold := opts.FatigueThreshold
			if threshold <= 0 {
				threshold = model.DefaultFatigueThreshold
			}
			criteria = append(criteria, NewFatigueCriterion(WeightFatigue, threshold))
		}
	case *model.NursingOptions:
		criteria = append(criteria,
			NewCatchUpCriterion(),
			NewSeniorCapCriterion(),
			NewPermissionCriterion(),
		)
	}

	return criteria
}

// filterOnly is embedded by criteria that never contribute to the cost
type filterOnly struct{}

func (filterOnly) Cost(*RosterState, *model.StaffMember, *model.SlotType, DayContext) float64 {
	return 0
}

func (filterOnly) Weight() float64 { return 0 }

// costOnly is embedded by criteria that never exclude candidates
type costOnly struct{}

func (costOnly) Allows(*RosterState, *model.StaffMember, *model.SlotType, DayContext, bool) bool {
	return true
}
