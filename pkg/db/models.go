package db

import (
	"sort"
	"time"
)

// Roster represents a database roster record.
// Every generation or edit of a period inserts a new record; the latest one wins.
type Roster struct {
	ID             string
	Profile        string
	Year           int
	Month          time.Month
	Seed           int64
	UnfilledSlots  int
	QuotaDeviation int
	Fitness        *float64
	GeneratedAt    time.Time

	// ParentID links an edited roster to the roster it was derived from
	ParentID string
}

// RosterAssignment represents a database assignment record
type RosterAssignment struct {
	ID          string
	RosterID    string
	Day         int
	Position    int
	SlotTypeID  string
	StaffID     string
	StaffName   string
	StaffTier   int
	StaffGroup  string
	IsEmergency bool
	IsWeekend   bool
	IsHoliday   bool
}

// PreviousPeriod returns the year and month before the given one
func PreviousPeriod(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// LatestRoster returns the most recently generated roster matching the period, or nil
func LatestRoster(rosters []Roster, profile string, year int, month time.Month) *Roster {
	var latest *Roster
	for i := range rosters {
		r := &rosters[i]
		if r.Profile != profile || r.Year != year || r.Month != month {
			continue
		}
		if latest == nil || r.GeneratedAt.After(latest.GeneratedAt) {
			latest = r
		}
	}
	return latest
}

// SortAssignments orders assignments by day, then by position within the day
func SortAssignments(assignments []RosterAssignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		if assignments[i].Day != assignments[j].Day {
			return assignments[i].Day < assignments[j].Day
		}
		return assignments[i].Position < assignments[j].Position
	})
}
