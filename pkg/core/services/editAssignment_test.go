package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

func TestEditAssignment_ReplacesStaff(t *testing.T) {
	staff := testStaff()
	res := editableResult(staff)
	require.Equal(t, 1, res.QuotaDeviation)

	out, err := EditAssignment(res, model.ProfileClinical, staff, AssignmentEdit{
		Day: 1, SlotTypeID: "ward", OldStaffID: "a", NewStaffID: "c",
	})
	require.NoError(t, err)

	edited := out.Result.Schedule[0].Assignments[0]
	assert.Equal(t, "c", edited.StaffID)
	require.NotNil(t, edited.Staff)
	assert.Equal(t, "Cara", edited.Staff.Name)

	assert.Equal(t, 1, out.Result.StatsFor("a").TotalShifts)
	assert.Equal(t, 1, out.Result.StatsFor("c").TotalShifts)
	assert.Equal(t, 1, out.Result.UnfilledSlots)
	assert.Equal(t, 1, out.Result.QuotaDeviation)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, res.Seed, out.Result.Seed)

	// The input result is untouched
	assert.Equal(t, "a", res.Schedule[0].Assignments[0].StaffID)
	assert.Equal(t, 2, res.StatsFor("a").TotalShifts)
}

func TestEditAssignment_ClearPosition(t *testing.T) {
	staff := testStaff()
	res := editableResult(staff)

	out, err := EditAssignment(res, model.ProfileClinical, staff, AssignmentEdit{
		Day: 2, SlotTypeID: "ward", OldStaffID: "b",
	})
	require.NoError(t, err)

	cleared := out.Result.Schedule[1].Assignments[0]
	assert.True(t, cleared.IsEmpty())
	assert.Nil(t, cleared.Staff)
	assert.Equal(t, 2, out.Result.UnfilledSlots)
	assert.Equal(t, 0, out.Result.StatsFor("b").TotalShifts)
}

func TestEditAssignment_FillEmptyWarnsOnBrokenRules(t *testing.T) {
	staff := testStaff()
	res := editableResult(staff)

	out, err := EditAssignment(res, model.ProfileClinical, staff, AssignmentEdit{
		Day: 2, SlotTypeID: "er", OldStaffID: "", NewStaffID: "a",
	})
	require.NoError(t, err)

	filled := out.Result.Schedule[1].Assignments[1]
	assert.Equal(t, "a", filled.StaffID)
	assert.True(t, filled.IsEmergency)
	assert.Equal(t, 0, out.Result.UnfilledSlots)

	stats := out.Result.StatsFor("a")
	assert.Equal(t, 3, stats.TotalShifts)
	assert.Equal(t, 1, stats.EmergencyShifts)
	assert.Equal(t, 2, out.Result.QuotaDeviation)

	assert.Equal(t, []string{"a also works day 1", "a also works day 3"}, out.Warnings)
}

func TestEditAssignment_WarnsOnOffDayAndDoubleBooking(t *testing.T) {
	staff := testStaff()
	staff[1].OffDays = []int{2}
	res := editableResult(staff)

	out, err := EditAssignment(res, model.ProfileClinical, staff, AssignmentEdit{
		Day: 2, SlotTypeID: "er", OldStaffID: model.EmptyStaffID, NewStaffID: "b",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b is off on day 2", "b already works ward on day 2"}, out.Warnings)
}

func TestEditAssignment_WarnsOnRoommates(t *testing.T) {
	staff := testStaff()
	staff[0].RoomID = "r1"
	staff[2].RoomID = "r1"
	staff[2].OffDays = []int{2}
	res := editableResult(staff)

	out, err := EditAssignment(res, model.ProfileNursing, staff, AssignmentEdit{
		Day: 2, SlotTypeID: "er", NewStaffID: "c",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"c is off on day 2",
		"c shares room r1 with a who works day 1",
		"c shares room r1 with a who works day 3",
	}, out.Warnings)

	// The roommate rule only exists in the nursing profile
	out, err = EditAssignment(res, model.ProfileClinical, staff, AssignmentEdit{
		Day: 2, SlotTypeID: "er", NewStaffID: "c",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c is off on day 2"}, out.Warnings)
}

func TestEditAssignment_KeepsFitnessInStep(t *testing.T) {
	staff := testStaff()
	res := editableResult(staff)
	fitness := 10001.0
	res.Fitness = &fitness

	out, err := EditAssignment(res, model.ProfileClinical, staff, AssignmentEdit{
		Day: 2, SlotTypeID: "er", NewStaffID: "c",
	})
	require.NoError(t, err)

	require.NotNil(t, out.Result.Fitness)
	assert.Equal(t, float64(out.Result.QuotaDeviation), *out.Result.Fitness)
	assert.Equal(t, 10001.0, *res.Fitness)
}

func TestEditAssignment_Errors(t *testing.T) {
	staff := testStaff()
	res := editableResult(staff)

	tests := []struct {
		name string
		edit AssignmentEdit
		want error
	}{
		{"unknown day", AssignmentEdit{Day: 9, SlotTypeID: "ward", OldStaffID: "a", NewStaffID: "b"}, ErrAssignmentNotFound},
		{"wrong old staff", AssignmentEdit{Day: 1, SlotTypeID: "ward", OldStaffID: "b", NewStaffID: "c"}, ErrAssignmentNotFound},
		{"wrong slot", AssignmentEdit{Day: 1, SlotTypeID: "er", OldStaffID: "a", NewStaffID: "c"}, ErrAssignmentNotFound},
		{"unknown staff", AssignmentEdit{Day: 1, SlotTypeID: "ward", OldStaffID: "a", NewStaffID: "zed"}, ErrStaffNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EditAssignment(res, model.ProfileClinical, staff, tt.edit)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestSaveEditedRoster(t *testing.T) {
	staff := testStaff()
	store := &mockRosterStore{}
	parent := &db.Roster{ID: "parent-1", Profile: "nursing", Year: 2025, Month: 9}

	record, err := SaveEditedRoster(context.Background(), store, parent, editableResult(staff), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "parent-1", record.ParentID)
	assert.Equal(t, "nursing", record.Profile)
	assert.NotEqual(t, parent.ID, record.ID)
	require.Len(t, store.insertedRow, 1)
	assert.Len(t, store.insertedRow[0], 4)
}
