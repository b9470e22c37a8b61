package roster

import (
	"slices"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// RequestedDayCriterion gives a large bonus on days the candidate asked to work
type RequestedDayCriterion struct {
	costOnly
	weight float64
}

// NewRequestedDayCriterion creates a new RequestedDayCriterion with the given weight
func NewRequestedDayCriterion(weight float64) *RequestedDayCriterion {
	return &RequestedDayCriterion{weight: weight}
}

func (c *RequestedDayCriterion) Name() string {
	return "RequestedDay"
}

func (c *RequestedDayCriterion) Cost(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext) float64 {
	if staff.HasRequested(day.Day) {
		return -1
	}
	return 0
}

func (c *RequestedDayCriterion) Weight() float64 {
	return c.weight
}

// PriorityTierCriterion prefers candidates whose tier is listed in the slot's priority tiers
type PriorityTierCriterion struct {
	costOnly
	weight float64
}

// NewPriorityTierCriterion creates a new PriorityTierCriterion with the given weight
func NewPriorityTierCriterion(weight float64) *PriorityTierCriterion {
	return &PriorityTierCriterion{weight: weight}
}

func (c *PriorityTierCriterion) Name() string {
	return "PriorityTier"
}

func (c *PriorityTierCriterion) Cost(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext) float64 {
	if slices.Contains(slot.PriorityTiers, staff.Tier) {
		return -1
	}
	return 0
}

func (c *PriorityTierCriterion) Weight() float64 {
	return c.weight
}
