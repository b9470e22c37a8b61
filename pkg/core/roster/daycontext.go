package roster

import (
	"slices"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// DayContext holds the static facts about one day of the target month
type DayContext struct {
	Day       int
	Weekday   time.Weekday
	IsWeekend bool
	IsHoliday bool

	// Permissions maps a unit or specialty key to whether it may work today.
	// Only keys present in the nursing permission table appear here.
	Permissions map[string]bool
}

// IsRestDay returns true for weekend days and holidays
func (d DayContext) IsRestDay() bool {
	return d.IsWeekend || d.IsHoliday
}

// Allows returns true if the unit or specialty key may work on this day
func (d DayContext) Allows(key string) bool {
	if key == "" {
		return true
	}
	allowed, ok := d.Permissions[key]
	return !ok || allowed
}

// difficulty ranks days for the greedy pass: holiday > Saturday > Sunday > Friday > Thursday > other
func (d DayContext) difficulty() int {
	switch {
	case d.IsHoliday:
		return 5
	case d.Weekday == time.Saturday:
		return 4
	case d.Weekday == time.Sunday:
		return 3
	case d.Weekday == time.Friday:
		return 2
	case d.Weekday == time.Thursday:
		return 1
	default:
		return 0
	}
}

// BuildDayContexts precomputes the day facts for every day covered by the config
func BuildDayContexts(cfg model.Config) []DayContext {
	days := cfg.DaysInMonth()
	out := make([]DayContext, days)

	var holidays []int
	if clinical := cfg.Clinical(); clinical != nil {
		holidays = clinical.Holidays
	}
	var permissions map[string][]time.Weekday
	if nursing := cfg.Nursing(); nursing != nil {
		permissions = nursing.Permissions
	}

	for i := range out {
		day := i + 1
		weekday := time.Date(cfg.Year, cfg.Month, day, 0, 0, 0, 0, time.UTC).Weekday()
		ctx := DayContext{
			Day:       day,
			Weekday:   weekday,
			IsWeekend: weekday == time.Saturday || weekday == time.Sunday,
			IsHoliday: slices.Contains(holidays, day),
		}
		if len(permissions) > 0 {
			ctx.Permissions = make(map[string]bool, len(permissions))
			for key, weekdays := range permissions {
				ctx.Permissions[key] = slices.Contains(weekdays, weekday)
			}
		}
		out[i] = ctx
	}
	return out
}
