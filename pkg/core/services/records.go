package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// Period identifies the month a roster belongs to
type Period struct {
	Profile model.Profile
	Year    int
	Month   time.Month
}

// PeriodOf returns the period a generation config covers
func PeriodOf(cfg model.Config) Period {
	return Period{Profile: cfg.Profile(), Year: cfg.Year, Month: cfg.Month}
}

// Previous returns the period before p
func (p Period) Previous() Period {
	year, month := db.PreviousPeriod(p.Year, p.Month)
	return Period{Profile: p.Profile, Year: year, Month: month}
}

// toRecords converts a result into a roster record and its assignment rows
func toRecords(res *model.Result, period Period, parentID string, generatedAt time.Time) (*db.Roster, []db.RosterAssignment) {
	record := &db.Roster{
		ID:             uuid.New().String(),
		Profile:        string(period.Profile),
		Year:           period.Year,
		Month:          period.Month,
		Seed:           res.Seed,
		UnfilledSlots:  res.UnfilledSlots,
		QuotaDeviation: res.QuotaDeviation,
		Fitness:        res.Fitness,
		GeneratedAt:    generatedAt,
		ParentID:       parentID,
	}

	var rows []db.RosterAssignment
	for _, day := range res.Schedule {
		for pos, a := range day.Assignments {
			row := db.RosterAssignment{
				ID:          uuid.New().String(),
				RosterID:    record.ID,
				Day:         day.Day,
				Position:    pos,
				SlotTypeID:  a.SlotTypeID,
				StaffID:     a.StaffID,
				IsEmergency: a.IsEmergency,
				IsWeekend:   day.IsWeekend,
				IsHoliday:   day.IsHoliday,
			}
			if a.Staff != nil {
				row.StaffName = a.Staff.Name
				row.StaffTier = a.Staff.Tier
				row.StaffGroup = a.Staff.Group
			}
			rows = append(rows, row)
		}
	}

	return record, rows
}

// scheduleFromRecords rebuilds the day schedules of a stored roster.
// Days without any stored assignment are omitted.
func scheduleFromRecords(year int, month time.Month, rows []db.RosterAssignment) []model.DaySchedule {
	sorted := append([]db.RosterAssignment(nil), rows...)
	db.SortAssignments(sorted)

	byDay := make(map[int]*model.DaySchedule)
	var days []int
	for _, row := range sorted {
		day, ok := byDay[row.Day]
		if !ok {
			day = &model.DaySchedule{
				Day:       row.Day,
				Weekday:   time.Date(year, month, row.Day, 0, 0, 0, 0, time.UTC).Weekday(),
				IsWeekend: row.IsWeekend,
				IsHoliday: row.IsHoliday,
			}
			byDay[row.Day] = day
			days = append(days, row.Day)
		}

		a := model.Assignment{
			Day:         row.Day,
			SlotTypeID:  row.SlotTypeID,
			StaffID:     row.StaffID,
			IsEmergency: row.IsEmergency,
		}
		if row.StaffID != model.EmptyStaffID {
			a.Staff = &model.StaffSnapshot{Name: row.StaffName, Tier: row.StaffTier, Group: row.StaffGroup}
		}
		day.Assignments = append(day.Assignments, a)
	}

	sort.Ints(days)
	schedule := make([]model.DaySchedule, 0, len(days))
	for _, d := range days {
		schedule = append(schedule, *byDay[d])
	}
	return schedule
}

// Tail returns the last n days of a schedule
func Tail(schedule []model.DaySchedule, n int) []model.DaySchedule {
	if n <= 0 || len(schedule) == 0 {
		return nil
	}
	if n > len(schedule) {
		n = len(schedule)
	}
	return model.CloneSchedule(schedule[len(schedule)-n:])
}

// Reconcile recomputes the derived fields of a result from its schedule
func Reconcile(res *model.Result, profile model.Profile, staff []model.StaffMember) {
	res.Stats = roster.AggregateStats(res.Schedule, staff)
	res.UnfilledSlots = roster.CountUnfilled(res.Schedule)
	res.QuotaDeviation = roster.QuotaDeviation(profile, staff, res.Stats)
	if res.Fitness != nil {
		fitness := roster.Fitness(res.UnfilledSlots, res.QuotaDeviation)
		res.Fitness = &fitness
	}
}
