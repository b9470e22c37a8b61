package roster

import "github.com/jakechorley/duty-roster/pkg/core/model"

// Occupancy answers whether a staff member works on a day.
// Days <= 0 refer to the previous month's tail.
type Occupancy interface {
	WorksOn(staffID string, day int) bool
}

// PassesHardFilter checks the rules that are never relaxed, not even in desperate mode.
//
// Returns false if:
//   - The staff member's tier/unit is outside the slot's eligibility set
//   - The slot requires a different group/unit
//   - The staff member already works on the day, or on the day before or after
//   - The day is one of the staff member's off days
//   - (nursing) A roommate works the day before, the day or the day after, or is off on the day
func (e *Engine) PassesHardFilter(occ Occupancy, staff *model.StaffMember, slot *model.SlotType, day int) bool {
	if !slot.Admits(*staff) {
		return false
	}
	if occ.WorksOn(staff.ID, day) {
		return false
	}
	if staff.IsOff(day) {
		return false
	}
	if occ.WorksOn(staff.ID, day-1) || occ.WorksOn(staff.ID, day+1) {
		return false
	}

	for _, mate := range e.roommates[staff.ID] {
		if occ.WorksOn(mate.ID, day-1) || occ.WorksOn(mate.ID, day) || occ.WorksOn(mate.ID, day+1) {
			return false
		}
		if mate.IsOff(day) {
			return false
		}
	}

	return true
}

// scheduleOccupancy indexes a finished schedule (plus the bridge) for the hard filter
type scheduleOccupancy map[string]map[int]bool

func newScheduleOccupancy(schedule []model.DaySchedule, bridge map[string][]int) scheduleOccupancy {
	occ := make(scheduleOccupancy)
	mark := func(staffID string, day int) {
		days, ok := occ[staffID]
		if !ok {
			days = make(map[int]bool)
			occ[staffID] = days
		}
		days[day] = true
	}
	for staffID, offsets := range bridge {
		for _, offset := range offsets {
			mark(staffID, offset)
		}
	}
	for _, day := range schedule {
		for _, a := range day.Assignments {
			if !a.IsEmpty() {
				mark(a.StaffID, day.Day)
			}
		}
	}
	return occ
}

func (o scheduleOccupancy) WorksOn(staffID string, day int) bool {
	return o[staffID][day]
}
