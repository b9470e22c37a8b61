package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

var (
	// ErrAssignmentNotFound is returned when no assignment matches the edit
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrStaffNotFound is returned when the replacement staff id is unknown
	ErrStaffNotFound = errors.New("staff member not found")
)

// AssignmentEdit replaces the staff of one assignment.
// An empty OldStaffID matches an EMPTY position; an empty NewStaffID clears the position.
type AssignmentEdit struct {
	Day        int
	SlotTypeID string
	OldStaffID string
	NewStaffID string
}

// EditResult contains the edited roster and any rule the edit breaks.
// Manual edits are never rejected for breaking a rule.
type EditResult struct {
	Result   *model.Result
	Warnings []string
}

// EditAssignment returns a copy of res with one assignment replaced and its stats,
// unfilled count and quota deviation recomputed. res itself is left untouched.
func EditAssignment(res *model.Result, profile model.Profile, staff []model.StaffMember, edit AssignmentEdit) (*EditResult, error) {
	oldID := normaliseStaffID(edit.OldStaffID)
	newID := normaliseStaffID(edit.NewStaffID)

	schedule := model.CloneSchedule(res.Schedule)

	dayIndex := -1
	for i := range schedule {
		if schedule[i].Day == edit.Day {
			dayIndex = i
			break
		}
	}
	if dayIndex < 0 {
		return nil, fmt.Errorf("%w: day %d is not in the roster", ErrAssignmentNotFound, edit.Day)
	}

	day := &schedule[dayIndex]
	pos := -1
	for i, a := range day.Assignments {
		if a.SlotTypeID == edit.SlotTypeID && a.StaffID == oldID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, fmt.Errorf("%w: no %s assignment for %s on day %d", ErrAssignmentNotFound, edit.SlotTypeID, oldID, edit.Day)
	}

	var member *model.StaffMember
	if newID != model.EmptyStaffID {
		for i := range staff {
			if staff[i].ID == newID {
				member = &staff[i]
				break
			}
		}
		if member == nil {
			return nil, fmt.Errorf("%w: %s", ErrStaffNotFound, newID)
		}
	}

	a := &day.Assignments[pos]
	a.StaffID = newID
	a.Staff = nil
	if member != nil {
		a.Staff = &model.StaffSnapshot{Name: member.Name, Tier: member.Tier, Group: member.Group}
	}

	edited := &model.Result{
		Schedule: schedule,
		Logs:     append([]string(nil), res.Logs...),
		Seed:     res.Seed,
	}
	if res.Fitness != nil {
		fitness := *res.Fitness
		edited.Fitness = &fitness
	}
	Reconcile(edited, profile, staff)

	var warnings []string
	if member != nil {
		warnings = editWarnings(schedule, dayIndex, pos, member)
		if profile == model.ProfileNursing {
			warnings = append(warnings, roommateWarnings(schedule, dayIndex, member, staff)...)
		}
	}

	return &EditResult{Result: edited, Warnings: warnings}, nil
}

// editWarnings lists the hard rules the new assignment at schedule[dayIndex].Assignments[pos] breaks
func editWarnings(schedule []model.DaySchedule, dayIndex, pos int, member *model.StaffMember) []string {
	var warnings []string
	day := schedule[dayIndex]

	if !member.Active {
		warnings = append(warnings, fmt.Sprintf("%s is inactive", member.ID))
	}
	if member.IsOff(day.Day) {
		warnings = append(warnings, fmt.Sprintf("%s is off on day %d", member.ID, day.Day))
	}
	for i, a := range day.Assignments {
		if i != pos && a.StaffID == member.ID {
			warnings = append(warnings, fmt.Sprintf("%s already works %s on day %d", member.ID, a.SlotTypeID, day.Day))
			break
		}
	}
	for _, other := range schedule {
		if other.Day != day.Day-1 && other.Day != day.Day+1 {
			continue
		}
		if other.HasStaff(member.ID) {
			warnings = append(warnings, fmt.Sprintf("%s also works day %d", member.ID, other.Day))
		}
	}
	return warnings
}

// roommateWarnings lists the active roommates of member who work the day before, the day
// or the day after the edited day, or who are off on it
func roommateWarnings(schedule []model.DaySchedule, dayIndex int, member *model.StaffMember, staff []model.StaffMember) []string {
	if member.RoomID == "" {
		return nil
	}

	day := schedule[dayIndex].Day
	var warnings []string
	for i := range staff {
		mate := &staff[i]
		if mate.ID == member.ID || mate.RoomID != member.RoomID || !mate.Active {
			continue
		}
		if mate.IsOff(day) {
			warnings = append(warnings, fmt.Sprintf("%s shares room %s with %s who is off on day %d", member.ID, member.RoomID, mate.ID, day))
		}
		for _, other := range schedule {
			if other.Day < day-1 || other.Day > day+1 {
				continue
			}
			if other.HasStaff(mate.ID) {
				warnings = append(warnings, fmt.Sprintf("%s shares room %s with %s who works day %d", member.ID, member.RoomID, mate.ID, other.Day))
			}
		}
	}
	return warnings
}

func normaliseStaffID(id string) string {
	if id == "" {
		return model.EmptyStaffID
	}
	return id
}

// SaveEditStore defines the database operations needed to persist an edit
type SaveEditStore interface {
	InsertRoster(ctx context.Context, roster *db.Roster, assignments []db.RosterAssignment) error
}

// SaveEditedRoster stores an edited roster as a new record derived from parent
func SaveEditedRoster(ctx context.Context, store SaveEditStore, parent *db.Roster, res *model.Result, logger *zap.Logger) (*db.Roster, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	period := Period{Profile: model.Profile(parent.Profile), Year: parent.Year, Month: parent.Month}
	record, rows := toRecords(res, period, parent.ID, time.Now())
	if err := store.InsertRoster(ctx, record, rows); err != nil {
		return nil, fmt.Errorf("failed to save edited roster: %w", err)
	}

	logger.Debug("Saved edited roster", zap.String("roster_id", record.ID), zap.String("parent_id", parent.ID))
	return record, nil
}
