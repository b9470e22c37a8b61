package roster

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// September 2025 starts on a Monday: 4 = Thursday, 6 = Saturday, 7 = Sunday
const (
	testYear  = 2025
	testMonth = time.September
)

func staffMember(id string, tier int, quota int) model.StaffMember {
	return model.StaffMember{
		ID:     id,
		Name:   "Staff " + id,
		Tier:   tier,
		Quota:  quota,
		Active: true,
	}
}

func slotType(id string, min, max int, tiers ...int) model.SlotType {
	return model.SlotType{
		ID:            id,
		Name:          "Slot " + id,
		MinDailyCount: min,
		MaxDailyCount: max,
		AllowedTiers:  tiers,
	}
}

func clinicalConfig(days int) model.Config {
	return model.Config{
		Year:       testYear,
		Month:      testMonth,
		Days:       days,
		MaxRetries: 10,
		Seed:       42,
		Options:    &model.ClinicalOptions{},
	}
}

func nursingConfig(days int, opts *model.NursingOptions) model.Config {
	if opts == nil {
		opts = &model.NursingOptions{}
	}
	return model.Config{
		Year:       testYear,
		Month:      testMonth,
		Days:       days,
		MaxRetries: 10,
		Seed:       42,
		Options:    opts,
	}
}

// mediumClinicalInput is a month with more demand than the staff can cover comfortably
func mediumClinicalInput() Input {
	staff := make([]model.StaffMember, 0, 8)
	for i := 0; i < 8; i++ {
		member := staffMember(fmt.Sprintf("s%d", i), 1+i%3, 6)
		member.EmergencyQuota = 3
		member.Group = fmt.Sprintf("g%d", i%2)
		staff = append(staff, member)
	}
	staff[0].OffDays = []int{1, 2, 3}
	staff[1].RequestedDays = []int{10, 20}
	staff[2].WeekendLimit = 2

	emergency := slotType("er", 1, 1, 1, 2)
	emergency.IsEmergency = true

	cfg := clinicalConfig(0)
	cfg.AntiClustering = true
	cfg.Options = &model.ClinicalOptions{Holidays: []int{15}, FatigueModel: true}

	return Input{
		Staff:     staff,
		SlotTypes: []model.SlotType{slotType("ward", 1, 2, 1, 2, 3), emergency},
		Config:    cfg,
	}
}

// assignedDays returns the days a staff member works in a schedule
func assignedDays(schedule []model.DaySchedule, staffID string) []int {
	var days []int
	for _, day := range schedule {
		if day.HasStaff(staffID) {
			days = append(days, day.Day)
		}
	}
	return days
}

// assertNoConsecutiveDays checks the hard adjacency rule over a whole schedule
func assertNoConsecutiveDays(t *testing.T, schedule []model.DaySchedule) {
	t.Helper()
	for i := 1; i < len(schedule); i++ {
		for _, a := range schedule[i].Assignments {
			if a.IsEmpty() {
				continue
			}
			assert.False(t, schedule[i-1].HasStaff(a.StaffID),
				"staff %s works on consecutive days %d and %d", a.StaffID, schedule[i-1].Day, schedule[i].Day)
		}
	}
}

// assertDailyCounts checks max (and, where nothing is EMPTY, min) per day and slot type
func assertDailyCounts(t *testing.T, schedule []model.DaySchedule, slots []model.SlotType) {
	t.Helper()
	for _, day := range schedule {
		for _, slot := range slots {
			filled, empty := 0, 0
			for _, a := range day.Assignments {
				if a.SlotTypeID != slot.ID {
					continue
				}
				if a.IsEmpty() {
					empty++
				} else {
					filled++
				}
			}
			assert.LessOrEqual(t, filled, slot.MaxDailyCount, "day %d slot %s over max", day.Day, slot.ID)
			if empty == 0 {
				assert.GreaterOrEqual(t, filled, slot.MinDailyCount, "day %d slot %s under min", day.Day, slot.ID)
			}
		}
	}
}

// newTestState returns an engine and a fresh attempt state for direct criterion tests
func newTestState(t *testing.T, in Input) (*Engine, *RosterState) {
	t.Helper()
	engine := NewEngine(in, nil)
	require.NotEmpty(t, engine.Days())
	return engine, newRosterState(engine, NewRand(1))
}

// place assigns staff to slot on day directly through the attempt state
func place(t *testing.T, e *Engine, st *RosterState, day int, slotID, staffID string) {
	t.Helper()
	slot := e.slotByID(slotID)
	require.NotNil(t, slot)
	staff := e.staffByID(staffID)
	require.NotNil(t, staff)
	st.assign(e.days[day-1], slot, staff)
}

// occupancy is a fixed Occupancy for hard filter tests
type occupancy map[string][]int

func (o occupancy) WorksOn(staffID string, day int) bool {
	for _, d := range o[staffID] {
		if d == day {
			return true
		}
	}
	return false
}
