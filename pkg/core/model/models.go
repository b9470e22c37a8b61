package model

import (
	"slices"
	"time"
)

// EmptyStaffID marks a position that could not be filled.
// Unmet minimums are materialized as assignments carrying this id so they can be counted.
const EmptyStaffID = "EMPTY"

// SeniorTier is the seniority tier capped per day in the nursing profile
const SeniorTier = 1

// StaffMember represents a person who can be rostered onto duty slots
type StaffMember struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Tier is the seniority tier (small ordinal, 1 = most senior)
	Tier int `json:"tier" yaml:"tier"`

	// Group is the group affiliation (clinical) or unit (nursing)
	Group string `json:"group,omitempty" yaml:"group,omitempty"`

	// Quota is the service quota (clinical) or the unified quota (nursing)
	Quota int `json:"quota" yaml:"quota"`

	// EmergencyQuota is only used by the clinical profile
	EmergencyQuota int `json:"emergencyQuota,omitempty" yaml:"emergencyQuota,omitempty"`

	// WeekendLimit caps weekend and holiday shifts. Zero means unlimited
	WeekendLimit int `json:"weekendLimit,omitempty" yaml:"weekendLimit,omitempty"`

	// OffDays and RequestedDays hold day-of-month numbers (1..daysInMonth)
	OffDays       []int `json:"offDays,omitempty" yaml:"offDays,omitempty"`
	RequestedDays []int `json:"requestedDays,omitempty" yaml:"requestedDays,omitempty"`

	Active bool `json:"active" yaml:"active"`

	// Nursing profile extras
	Specialty string `json:"specialty,omitempty" yaml:"specialty,omitempty"`
	RoomID    string `json:"roomId,omitempty" yaml:"roomId,omitempty"`
}

// IsOff returns true if the day is one of the staff member's off days
func (s StaffMember) IsOff(day int) bool {
	return slices.Contains(s.OffDays, day)
}

// HasRequested returns true if the staff member asked to work on the day
func (s StaffMember) HasRequested(day int) bool {
	return slices.Contains(s.RequestedDays, day)
}

// SlotType represents a recurring daily duty ("service")
type SlotType struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	MinDailyCount int    `json:"minDailyCount" yaml:"minDailyCount"`
	MaxDailyCount int    `json:"maxDailyCount" yaml:"maxDailyCount"`

	// AllowedTiers and AllowedUnits form the eligibility set.
	// When both are set a candidate must match both.
	AllowedTiers []int    `json:"allowedTiers,omitempty" yaml:"allowedTiers,omitempty"`
	AllowedUnits []string `json:"allowedUnits,omitempty" yaml:"allowedUnits,omitempty"`

	// PriorityTiers are tiers preferred for this slot
	PriorityTiers []int `json:"priorityTiers,omitempty" yaml:"priorityTiers,omitempty"`

	// RequiredGroup restricts the slot to one group/unit (empty = any)
	RequiredGroup string `json:"requiredGroup,omitempty" yaml:"requiredGroup,omitempty"`

	// IsEmergency marks emergency slots (clinical profile)
	IsEmergency bool `json:"isEmergency,omitempty" yaml:"isEmergency,omitempty"`
}

// HasEligibilitySet returns true if at least one eligibility list is configured
func (s SlotType) HasEligibilitySet() bool {
	return len(s.AllowedTiers) > 0 || len(s.AllowedUnits) > 0
}

// Admits returns true if the staff member matches the slot's eligibility set
// and required group. Availability and adjacency are not considered here.
func (s SlotType) Admits(staff StaffMember) bool {
	if !s.HasEligibilitySet() {
		return false
	}
	if len(s.AllowedTiers) > 0 && !slices.Contains(s.AllowedTiers, staff.Tier) {
		return false
	}
	if len(s.AllowedUnits) > 0 && !slices.Contains(s.AllowedUnits, staff.Group) {
		return false
	}
	if s.RequiredGroup != "" && s.RequiredGroup != staff.Group {
		return false
	}
	return true
}

// StaffSnapshot is the denormalized copy of a staff member stored on an assignment
type StaffSnapshot struct {
	Name  string `json:"name"`
	Tier  int    `json:"tier"`
	Group string `json:"group,omitempty"`
}

// Assignment is one filled (or EMPTY) position of a slot on a day
type Assignment struct {
	Day         int            `json:"day"`
	SlotTypeID  string         `json:"slotTypeId"`
	StaffID     string         `json:"staffId"`
	Staff       *StaffSnapshot `json:"staff,omitempty"`
	IsEmergency bool           `json:"isEmergency,omitempty"`
}

// IsEmpty returns true if the assignment marks an unfilled position
func (a Assignment) IsEmpty() bool {
	return a.StaffID == EmptyStaffID
}

// DaySchedule holds all assignments for one day of the month
type DaySchedule struct {
	Day         int          `json:"day"`
	Weekday     time.Weekday `json:"weekday"`
	Assignments []Assignment `json:"assignments"`
	IsWeekend   bool         `json:"isWeekend"`
	IsHoliday   bool         `json:"isHoliday,omitempty"`
}

// HasStaff returns true if the staff member holds any assignment on this day
func (d DaySchedule) HasStaff(staffID string) bool {
	for _, a := range d.Assignments {
		if a.StaffID == staffID {
			return true
		}
	}
	return false
}

// SlotCount returns the number of positions (including EMPTY) of a slot type on this day
func (d DaySchedule) SlotCount(slotTypeID string) int {
	count := 0
	for _, a := range d.Assignments {
		if a.SlotTypeID == slotTypeID {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the day
func (d DaySchedule) Clone() DaySchedule {
	out := d
	out.Assignments = make([]Assignment, len(d.Assignments))
	for i, a := range d.Assignments {
		if a.Staff != nil {
			snap := *a.Staff
			a.Staff = &snap
		}
		out.Assignments[i] = a
	}
	return out
}

// CloneSchedule deep copies a whole month
func CloneSchedule(days []DaySchedule) []DaySchedule {
	out := make([]DaySchedule, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}

// Stats holds per-staff shift counts derived from a schedule
type Stats struct {
	StaffID         string `json:"staffId"`
	TotalShifts     int    `json:"totalShifts"`
	ServiceShifts   int    `json:"serviceShifts"`
	EmergencyShifts int    `json:"emergencyShifts"`
	WeekendShifts   int    `json:"weekendShifts"`
	SaturdayShifts  int    `json:"saturdayShifts"`
	SundayShifts    int    `json:"sundayShifts"`
	HolidayShifts   int    `json:"holidayShifts"`
}

// Result is the outcome of one roster generation
type Result struct {
	Schedule      []DaySchedule `json:"schedule"`
	Stats         []Stats       `json:"stats"`
	UnfilledSlots int           `json:"unfilledSlots"`
	Logs          []string      `json:"logs"`

	// QuotaDeviation is the sum of |target - actual| over staff and categories
	QuotaDeviation int `json:"quotaDeviation"`

	// Fitness is only set by the genetic controller
	Fitness *float64 `json:"fitness,omitempty"`

	// Seed reproduces the run when passed back through Config.Seed
	Seed int64 `json:"seed"`
}

// StatsFor returns the stats entry for a staff member (zero value if absent)
func (r *Result) StatsFor(staffID string) Stats {
	for _, s := range r.Stats {
		if s.StaffID == staffID {
			return s
		}
	}
	return Stats{StaffID: staffID}
}
