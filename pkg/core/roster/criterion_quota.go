package roster

import "github.com/jakechorley/duty-roster/pkg/core/model"

// QuotaCriterion balances load against each staff member's quota.
//
// Filter:
//   - Excludes candidates whose quota for the slot's category is exhausted
//
// Cost:
//   - Minus the remaining quota, so candidates furthest from their target are preferred
//
// The clinical profile keeps separate service and emergency quotas; the nursing
// profile uses the unified quota against total shifts.
type QuotaCriterion struct {
	weight float64
}

// NewQuotaCriterion creates a new QuotaCriterion with the given weight
func NewQuotaCriterion(weight float64) *QuotaCriterion {
	return &QuotaCriterion{weight: weight}
}

func (c *QuotaCriterion) Name() string {
	return "Quota"
}

func (c *QuotaCriterion) Allows(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext, desperate bool) bool {
	if desperate {
		return true
	}
	return remainingQuota(state, staff, slot) > 0
}

func (c *QuotaCriterion) Cost(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext) float64 {
	return -float64(remainingQuota(state, staff, slot))
}

func (c *QuotaCriterion) Weight() float64 {
	return c.weight
}

// remainingQuota returns target minus actual in the category the slot counts towards
func remainingQuota(state *RosterState, staff *model.StaffMember, slot *model.SlotType) int {
	stats := state.Stats(staff.ID)
	if state.engine.profile == model.ProfileNursing {
		return staff.Quota - stats.TotalShifts
	}
	if slot.IsEmergency {
		return staff.EmergencyQuota - stats.EmergencyShifts
	}
	return staff.Quota - stats.ServiceShifts
}
