package roster

import (
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// SpanCriterion prevents three-day stretches around weekends and holidays.
//
// Filter:
//   - On a Saturday or Sunday, excludes whoever works the Thursday of that week
//     (Saturday looks two days back, Sunday three)
//   - On a Thursday, excludes whoever works the following Saturday or Sunday
//   - A weekday holiday acts as a one-day weekend: it excludes whoever works two days
//     before or after it, and those days exclude whoever works the holiday
type SpanCriterion struct {
	filterOnly
}

// NewSpanCriterion creates a new SpanCriterion
func NewSpanCriterion() *SpanCriterion {
	return &SpanCriterion{}
}

func (c *SpanCriterion) Name() string {
	return "WeekendSpan"
}

func (c *SpanCriterion) Allows(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext, desperate bool) bool {
	if desperate {
		return true
	}

	works := func(d int) bool { return state.WorksOn(staff.ID, d) }

	switch day.Weekday {
	case time.Sunday:
		if works(day.Day - 3) {
			return false
		}
	case time.Saturday:
		if works(day.Day - 2) {
			return false
		}
	case time.Thursday:
		if works(day.Day+2) || works(day.Day+3) {
			return false
		}
	}

	if day.IsHoliday && !day.IsWeekend {
		return !works(day.Day-2) && !works(day.Day+2)
	}
	for _, d := range []int{day.Day - 2, day.Day + 2} {
		if state.weekdayHoliday(d) && works(d) {
			return false
		}
	}
	return true
}

// WeekendCriterion enforces the weekend limit and keeps Saturdays and Sundays balanced.
//
// Filter:
//   - On a weekend day or holiday, excludes candidates at their weekend limit (0 = unlimited)
//   - On a Saturday, excludes candidates who already have more Saturdays than Sundays;
//     symmetric on Sundays
type WeekendCriterion struct {
	filterOnly
}

// NewWeekendCriterion creates a new WeekendCriterion
func NewWeekendCriterion() *WeekendCriterion {
	return &WeekendCriterion{}
}

func (c *WeekendCriterion) Name() string {
	return "WeekendLimit"
}

func (c *WeekendCriterion) Allows(state *RosterState, staff *model.StaffMember, slot *model.SlotType, day DayContext, desperate bool) bool {
	if desperate || !day.IsRestDay() {
		return true
	}

	stats := state.Stats(staff.ID)
	if staff.WeekendLimit > 0 && stats.WeekendShifts >= staff.WeekendLimit {
		return false
	}

	switch day.Weekday {
	case time.Saturday:
		return stats.SaturdayShifts-stats.SundayShifts < 1
	case time.Sunday:
		return stats.SundayShifts-stats.SaturdayShifts < 1
	}
	return true
}
