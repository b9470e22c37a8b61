package roster

import "github.com/jakechorley/duty-roster/pkg/core/model"

// ResourcePreservationCriterion protects specialists for the few slots only they can fill.
//
// Cost:
//   - +1 for a specialist (eligible for at most SpecialistMaxSlotTypes slot types) on a
//     generic slot (at least GenericSlotShare of active staff are eligible)
//   - -flexibleNudge for a staff member eligible for every slot type on a generic slot
type ResourcePreservationCriterion struct {
	costOnly
	weight float64
}

// NewResourcePreservationCriterion creates a new ResourcePreservationCriterion with the given weight
func NewResourcePreservationCriterion(weight float64) *ResourcePreservationCriterion {
	return &ResourcePreservationCriterion{weight: weight}
}

func (c *ResourcePreservationCriterion) Name() string {
	return "ResourcePreservation"
}

func (c *ResourcePreservationCriterion) Cost(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext) float64 {
	engine := state.engine
	if engine.eligibleShare[slot.ID] < GenericSlotShare {
		return 0
	}

	flexibility := engine.flexibility[staff.ID]
	switch {
	case len(engine.slots) > SpecialistMaxSlotTypes && flexibility == len(engine.slots):
		return -flexibleNudge
	case flexibility <= SpecialistMaxSlotTypes && flexibility < len(engine.slots):
		return 1
	}
	return 0
}

func (c *ResourcePreservationCriterion) Weight() float64 {
	return c.weight
}

// GroupBalanceCriterion spreads groups (clinical) or units (nursing) across days.
//
// Cost:
//   - +1 per member of the candidate's group already assigned on the day
type GroupBalanceCriterion struct {
	costOnly
	weight float64
}

// NewGroupBalanceCriterion creates a new GroupBalanceCriterion with the given weight
func NewGroupBalanceCriterion(weight float64) *GroupBalanceCriterion {
	return &GroupBalanceCriterion{weight: weight}
}

func (c *GroupBalanceCriterion) Name() string {
	return "GroupBalance"
}

func (c *GroupBalanceCriterion) Cost(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext) float64 {
	if staff.Group == "" {
		return 0
	}
	same := 0
	for _, a := range state.DayAssignments(day.Day) {
		if a.IsEmpty() || a.Staff == nil {
			continue
		}
		if a.Staff.Group == staff.Group {
			same++
		}
	}
	return float64(same)
}

func (c *GroupBalanceCriterion) Weight() float64 {
	return c.weight
}

// AntiClusteringCriterion discourages every-other-day patterns.
//
// Cost:
//   - +1 for each of D-2 and D+2 the candidate already works
type AntiClusteringCriterion struct {
	costOnly
	weight float64
}

// NewAntiClusteringCriterion creates a new AntiClusteringCriterion with the given weight
func NewAntiClusteringCriterion(weight float64) *AntiClusteringCriterion {
	return &AntiClusteringCriterion{weight: weight}
}

func (c *AntiClusteringCriterion) Name() string {
	return "AntiClustering"
}

func (c *AntiClusteringCriterion) Cost(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext) float64 {
	cost := 0.0
	if state.WorksOn(staff.ID, day.Day-2) {
		cost++
	}
	if state.WorksOn(staff.ID, day.Day+2) {
		cost++
	}
	return cost
}

func (c *AntiClusteringCriterion) Weight() float64 {
	return c.weight
}
