package services

import (
	"context"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// mockRosterStore is an in-memory store shared by the service tests
type mockRosterStore struct {
	rosters     []db.Roster
	assignments map[string][]db.RosterAssignment

	latestErr error
	insertErr error

	latestCalls []Period
	inserted    []*db.Roster
	insertedRow [][]db.RosterAssignment
}

func (m *mockRosterStore) GetLatestRoster(ctx context.Context, profile string, year int, month time.Month) (*db.Roster, error) {
	m.latestCalls = append(m.latestCalls, Period{Profile: model.Profile(profile), Year: year, Month: month})
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	latest := db.LatestRoster(m.rosters, profile, year, month)
	if latest == nil {
		return nil, db.ErrRosterNotFound
	}
	return latest, nil
}

func (m *mockRosterStore) GetAssignments(ctx context.Context, rosterID string) ([]db.RosterAssignment, error) {
	return m.assignments[rosterID], nil
}

func (m *mockRosterStore) InsertRoster(ctx context.Context, roster *db.Roster, assignments []db.RosterAssignment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, roster)
	m.insertedRow = append(m.insertedRow, assignments)
	return nil
}

type recordedRun struct {
	profile    model.Profile
	controller string
	res        *model.Result
}

type mockRecorder struct {
	runs []recordedRun
}

func (m *mockRecorder) ObserveRun(profile model.Profile, controller string, res *model.Result, duration time.Duration) {
	m.runs = append(m.runs, recordedRun{profile: profile, controller: controller, res: res})
}

func fixedNow() time.Time {
	return time.Date(2025, time.August, 20, 9, 0, 0, 0, time.UTC)
}

func testStaff() []model.StaffMember {
	return []model.StaffMember{
		{ID: "a", Name: "Alice", Tier: 2, Group: "north", Quota: 2, Active: true},
		{ID: "b", Name: "Bob", Tier: 2, Group: "south", Quota: 1, Active: true},
		{ID: "c", Name: "Cara", Tier: 2, Group: "north", Quota: 1, Active: true},
	}
}

func testSlots() []model.SlotType {
	return []model.SlotType{
		{ID: "ward", Name: "Ward", MinDailyCount: 1, MaxDailyCount: 1, AllowedTiers: []int{2}},
	}
}

func assign(day int, slot string, staff *model.StaffMember, emergency bool) model.Assignment {
	a := model.Assignment{Day: day, SlotTypeID: slot, StaffID: model.EmptyStaffID, IsEmergency: emergency}
	if staff != nil {
		a.StaffID = staff.ID
		a.Staff = &model.StaffSnapshot{Name: staff.Name, Tier: staff.Tier, Group: staff.Group}
	}
	return a
}

// editableResult covers Mon 1 to Wed 3 September 2025:
// day 1 ward a, day 2 ward b plus an EMPTY er position, day 3 ward a
func editableResult(staff []model.StaffMember) *model.Result {
	a, b := &staff[0], &staff[1]
	res := &model.Result{
		Schedule: []model.DaySchedule{
			{Day: 1, Weekday: time.Monday, Assignments: []model.Assignment{assign(1, "ward", a, false)}},
			{Day: 2, Weekday: time.Tuesday, Assignments: []model.Assignment{assign(2, "ward", b, false), assign(2, "er", nil, true)}},
			{Day: 3, Weekday: time.Wednesday, Assignments: []model.Assignment{assign(3, "ward", a, false)}},
		},
		Logs: []string{"attempt 0 kept"},
		Seed: 11,
	}
	Reconcile(res, model.ProfileClinical, staff)
	return res
}
