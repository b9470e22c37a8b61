package roster

import (
	"sort"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// AggregateStats derives per-staff shift counts from a schedule.
//
// Entries are returned in staff order, followed by any staff ids that appear in the
// schedule but not in staff (sorted). EMPTY assignments are ignored. The function has
// no side effects, so running it twice over the same schedule yields identical stats.
func AggregateStats(schedule []model.DaySchedule, staff []model.StaffMember) []model.Stats {
	counts := make(map[string]*model.Stats, len(staff))
	order := make([]string, 0, len(staff))
	for _, member := range staff {
		if _, seen := counts[member.ID]; seen {
			continue
		}
		counts[member.ID] = &model.Stats{StaffID: member.ID}
		order = append(order, member.ID)
	}

	var extra []string
	for _, day := range schedule {
		for _, a := range day.Assignments {
			if a.IsEmpty() {
				continue
			}
			entry, ok := counts[a.StaffID]
			if !ok {
				entry = &model.Stats{StaffID: a.StaffID}
				counts[a.StaffID] = entry
				extra = append(extra, a.StaffID)
			}
			addShift(entry, day, a.IsEmergency)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	out := make([]model.Stats, len(order))
	for i, id := range order {
		out[i] = *counts[id]
	}
	return out
}

// addShift records one assignment on day into the stats entry
func addShift(entry *model.Stats, day model.DaySchedule, emergency bool) {
	entry.TotalShifts++
	if emergency {
		entry.EmergencyShifts++
	} else {
		entry.ServiceShifts++
	}
	if day.IsWeekend || day.IsHoliday {
		entry.WeekendShifts++
	}
	if day.IsHoliday {
		entry.HolidayShifts++
	}
	switch day.Weekday {
	case time.Saturday:
		entry.SaturdayShifts++
	case time.Sunday:
		entry.SundayShifts++
	}
}

// CountUnfilled returns the number of EMPTY assignments in a schedule
func CountUnfilled(schedule []model.DaySchedule) int {
	count := 0
	for _, day := range schedule {
		for _, a := range day.Assignments {
			if a.IsEmpty() {
				count++
			}
		}
	}
	return count
}

// QuotaDeviation sums |target - actual| over active staff and quota categories.
//
// The clinical profile compares service and emergency shifts against their separate
// quotas; the nursing profile compares total shifts against the unified quota.
func QuotaDeviation(profile model.Profile, staff []model.StaffMember, stats []model.Stats) int {
	byID := make(map[string]model.Stats, len(stats))
	for _, s := range stats {
		byID[s.StaffID] = s
	}

	deviation := 0
	for _, member := range staff {
		if !member.Active {
			continue
		}
		s := byID[member.ID]
		if profile == model.ProfileNursing {
			deviation += abs(member.Quota - s.TotalShifts)
			continue
		}
		deviation += abs(member.Quota - s.ServiceShifts)
		deviation += abs(member.EmergencyQuota - s.EmergencyShifts)
	}
	return deviation
}

// Fitness scores a roster for the genetic controller (lower is better)
func Fitness(unfilled, deviation int) float64 {
	return float64(unfilled)*UnfilledFitnessWeight + float64(deviation)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
