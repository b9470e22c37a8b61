package roster

import "github.com/jakechorley/duty-roster/pkg/core/model"

// FatigueCriterion models accumulated stress (clinical profile, optional).
//
// Every assignment adds StressPerShift, plus StressEmergency on emergency slots and
// StressWeekendExtra on weekend days and holidays.
//
// Filter:
//   - Excludes candidates whose stress reached the threshold, unless desperate
//
// Cost:
//   - The accumulated stress
type FatigueCriterion struct {
	weight    float64
	threshold float64
}

// NewFatigueCriterion creates a new FatigueCriterion with the given weight and exclusion threshold
func NewFatigueCriterion(weight, threshold float64) *FatigueCriterion {
	return &FatigueCriterion{weight: weight, threshold: threshold}
}

func (c *FatigueCriterion) Name() string {
	return "Fatigue"
}

func (c *FatigueCriterion) Allows(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext, desperate bool) bool {
	if desperate {
		return true
	}
	return state.Stress(staff.ID) < c.threshold
}

func (c *FatigueCriterion) Cost(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext) float64 {
	return state.Stress(staff.ID)
}

func (c *FatigueCriterion) Weight() float64 {
	return c.weight
}
