package roster

import "github.com/jakechorley/duty-roster/pkg/core/model"

// CatchUpCriterion keeps staff of the same tier level with each other (nursing).
//
// Filter:
//   - Excludes a candidate whose total shifts exceed the minimum total among active
//     staff of the same tier who have not yet met their quota
type CatchUpCriterion struct {
	filterOnly
}

// NewCatchUpCriterion creates a new CatchUpCriterion
func NewCatchUpCriterion() *CatchUpCriterion {
	return &CatchUpCriterion{}
}

func (c *CatchUpCriterion) Name() string {
	return "TierCatchUp"
}

func (c *CatchUpCriterion) Allows(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext, desperate bool) bool {
	if desperate {
		return true
	}

	lowest := -1
	for _, peer := range state.engine.active {
		if peer.Tier != staff.Tier {
			continue
		}
		total := state.Stats(peer.ID).TotalShifts
		if total >= peer.Quota {
			continue
		}
		if lowest < 0 || total < lowest {
			lowest = total
		}
	}
	if lowest < 0 {
		return true
	}
	return state.Stats(staff.ID).TotalShifts <= lowest
}

// SeniorCapCriterion limits senior-tier staff per day (nursing).
//
// Filter:
//   - At most one tier-1 staff member per day, two in desperate mode
type SeniorCapCriterion struct {
	filterOnly
}

// NewSeniorCapCriterion creates a new SeniorCapCriterion
func NewSeniorCapCriterion() *SeniorCapCriterion {
	return &SeniorCapCriterion{}
}

func (c *SeniorCapCriterion) Name() string {
	return "SeniorCap"
}

func (c *SeniorCapCriterion) Allows(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext, desperate bool) bool {
	if staff.Tier != model.SeniorTier {
		return true
	}

	limit := 1
	if desperate {
		limit = 2
	}

	seniors := 0
	for _, a := range state.DayAssignments(day.Day) {
		if a.Staff != nil && a.Staff.Tier == model.SeniorTier {
			seniors++
		}
	}
	return seniors < limit
}

// PermissionCriterion applies the unit and specialty day-of-week permission table (nursing).
//
// Filter:
//   - Excludes candidates whose unit or specialty may not work on the day's weekday
type PermissionCriterion struct {
	filterOnly
}

// NewPermissionCriterion creates a new PermissionCriterion
func NewPermissionCriterion() *PermissionCriterion {
	return &PermissionCriterion{}
}

func (c *PermissionCriterion) Name() string {
	return "DayPermission"
}

func (c *PermissionCriterion) Allows(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext, desperate bool) bool {
	if desperate {
		return true
	}
	return day.Allows(staff.Group) && day.Allows(staff.Specialty)
}
