package roster

import (
	"math"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// RosterState is the mutable state of one attempt
type RosterState struct {
	engine *Engine
	rng    Rand

	// schedule is indexed by day-1
	schedule []model.DaySchedule

	// worked records the days each staff member holds an assignment on,
	// including previous-month bridge offsets (<= 0)
	worked map[string]map[int]bool

	// stats are the running per-staff counters used by the scorer
	stats map[string]*model.Stats

	// stress is the accumulated fatigue per staff member
	stress map[string]float64

	unfilled int
	log      *logBuffer
}

func newRosterState(e *Engine, rng Rand) *RosterState {
	st := &RosterState{
		engine:   e,
		rng:      rng,
		schedule: make([]model.DaySchedule, len(e.days)),
		worked:   make(map[string]map[int]bool),
		stats:    make(map[string]*model.Stats),
		stress:   make(map[string]float64),
		log:      newLogBuffer(),
	}
	for i, day := range e.days {
		st.schedule[i] = model.DaySchedule{
			Day:         day.Day,
			Weekday:     day.Weekday,
			IsWeekend:   day.IsWeekend,
			IsHoliday:   day.IsHoliday,
			Assignments: []model.Assignment{},
		}
	}
	for staffID, offsets := range e.bridge {
		for _, offset := range offsets {
			st.markWorked(staffID, offset)
		}
	}
	for _, staff := range e.active {
		st.stats[staff.ID] = &model.Stats{StaffID: staff.ID}
	}
	st.log.addAll(e.notes)
	return st
}

// WorksOn returns true if the staff member holds an assignment on the day.
// Days <= 0 refer to the previous month's tail.
func (st *RosterState) WorksOn(staffID string, day int) bool {
	return st.worked[staffID][day]
}

// Stats returns the running counters for a staff member
func (st *RosterState) Stats(staffID string) model.Stats {
	if s, ok := st.stats[staffID]; ok {
		return *s
	}
	return model.Stats{StaffID: staffID}
}

// Stress returns the accumulated fatigue of a staff member
func (st *RosterState) Stress(staffID string) float64 {
	return st.stress[staffID]
}

// DayAssignments returns the assignments made so far on a day of the month
func (st *RosterState) DayAssignments(day int) []model.Assignment {
	if day < 1 || day > len(st.schedule) {
		return nil
	}
	return st.schedule[day-1].Assignments
}

// weekdayHoliday returns true if the day of the month is a holiday outside the weekend
func (st *RosterState) weekdayHoliday(day int) bool {
	if day < 1 || day > len(st.engine.days) {
		return false
	}
	d := st.engine.days[day-1]
	return d.IsHoliday && !d.IsWeekend
}

// filledCount returns the number of non-EMPTY assignments on a day
func (st *RosterState) filledCount(day int) int {
	count := 0
	for _, a := range st.DayAssignments(day) {
		if !a.IsEmpty() {
			count++
		}
	}
	return count
}

func (st *RosterState) markWorked(staffID string, day int) {
	days, ok := st.worked[staffID]
	if !ok {
		days = make(map[int]bool)
		st.worked[staffID] = days
	}
	days[day] = true
}

// fillPosition tries to place one more staff member on slot for the given layer
func (st *RosterState) fillPosition(day DayContext, slot *model.SlotType, layer int) {
	if layer >= slot.MaxDailyCount {
		return
	}
	if st.schedule[day.Day-1].SlotCount(slot.ID) > layer {
		return
	}

	mustFill := slot.MinDailyCount > layer
	if !mustFill {
		if nursing := st.engine.cfg.Nursing(); nursing != nil && nursing.DailyTarget > 0 {
			if st.filledCount(day.Day) >= nursing.DailyTarget {
				return
			}
		}
	}

	candidate := st.pickCandidate(day, slot, false)
	if candidate == nil && mustFill {
		candidate = st.pickCandidate(day, slot, true)
		if candidate != nil {
			st.log.addf("day %d %s layer %d: filled by %s in desperate mode", day.Day, slot.ID, layer, candidate.ID)
		}
	}

	if candidate != nil {
		st.assign(day, slot, candidate)
		return
	}
	if mustFill {
		st.assignEmpty(day, slot)
		st.log.addf("day %d %s layer %d: no eligible staff, left EMPTY", day.Day, slot.ID, layer)
	}
}

// pickCandidate returns the lowest-cost candidate passing the hard filter and,
// unless desperate, every soft pre-filter
func (st *RosterState) pickCandidate(day DayContext, slot *model.SlotType, desperate bool) *model.StaffMember {
	var best *model.StaffMember
	bestCost := math.Inf(1)

	for _, staff := range st.engine.active {
		if !st.engine.PassesHardFilter(st, staff, slot, day.Day) {
			continue
		}
		if !st.allowedByCriteria(staff, slot, day, desperate) {
			continue
		}

		cost := st.cost(staff, slot, day)
		if cost < bestCost {
			bestCost = cost
			best = staff
		}
	}
	return best
}

func (st *RosterState) allowedByCriteria(staff *model.StaffMember, slot *model.SlotType, day DayContext, desperate bool) bool {
	for _, criterion := range st.engine.criteria {
		if !criterion.Allows(st, staff, slot, day, desperate) {
			return false
		}
	}
	return true
}

// cost sums the weighted criterion costs plus a random jitter (lower is better)
func (st *RosterState) cost(staff *model.StaffMember, slot *model.SlotType, day DayContext) float64 {
	total := 0.0
	for _, criterion := range st.engine.criteria {
		total += criterion.Cost(st, staff, slot, day) * criterion.Weight()
	}
	return total + st.rng.Float64()*JitterScale
}

func (st *RosterState) assign(day DayContext, slot *model.SlotType, staff *model.StaffMember) {
	schedule := &st.schedule[day.Day-1]
	schedule.Assignments = append(schedule.Assignments, model.Assignment{
		Day:        day.Day,
		SlotTypeID: slot.ID,
		StaffID:    staff.ID,
		Staff: &model.StaffSnapshot{
			Name:  staff.Name,
			Tier:  staff.Tier,
			Group: staff.Group,
		},
		IsEmergency: slot.IsEmergency,
	})
	st.markWorked(staff.ID, day.Day)

	entry, ok := st.stats[staff.ID]
	if !ok {
		entry = &model.Stats{StaffID: staff.ID}
		st.stats[staff.ID] = entry
	}
	addShift(entry, *schedule, slot.IsEmergency)

	st.stress[staff.ID] += shiftStress(day, slot)
}

func (st *RosterState) assignEmpty(day DayContext, slot *model.SlotType) {
	schedule := &st.schedule[day.Day-1]
	schedule.Assignments = append(schedule.Assignments, model.Assignment{
		Day:         day.Day,
		SlotTypeID:  slot.ID,
		StaffID:     model.EmptyStaffID,
		IsEmergency: slot.IsEmergency,
	})
	st.unfilled++
}

// result freezes the attempt into a Result. Stats are recomputed from the schedule.
func (st *RosterState) result() *model.Result {
	if st.unfilled > 0 {
		st.log.addf("attempt finished with %d unfilled slots", st.unfilled)
	}
	res := st.engine.Evaluate(st.schedule, st.log.Lines())
	return res
}

// shiftStress is the fatigue added by one assignment
func shiftStress(day DayContext, slot *model.SlotType) float64 {
	stress := StressPerShift
	if slot.IsEmergency {
		stress += StressEmergency
	}
	if day.IsRestDay() {
		stress += StressWeekendExtra
	}
	return stress
}
