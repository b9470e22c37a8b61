package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func TestCriteriaForProfile_Clinical(t *testing.T) {
	cfg := clinicalConfig(0)
	cfg.AntiClustering = true
	cfg.Options = &model.ClinicalOptions{FatigueModel: true}

	names := criterionNames(CriteriaForProfile(cfg))
	assert.Contains(t, names, "AntiClustering")
	assert.Contains(t, names, "Fatigue")
	assert.NotContains(t, names, "SeniorCap")
}

func TestCriteriaForProfile_Nursing(t *testing.T) {
	names := criterionNames(CriteriaForProfile(nursingConfig(0, nil)))
	assert.Contains(t, names, "TierCatchUp")
	assert.Contains(t, names, "SeniorCap")
	assert.Contains(t, names, "DayPermission")
	assert.NotContains(t, names, "AntiClustering", "Anti-clustering is off unless configured")
	assert.NotContains(t, names, "Fatigue")
}

func criterionNames(criteria []Criterion) []string {
	names := make([]string, len(criteria))
	for i, c := range criteria {
		names[i] = c.Name()
	}
	return names
}

func TestPassesHardFilter_Adjacency(t *testing.T) {
	in := Input{
		Staff:     []model.StaffMember{staffMember("a", 1, 5)},
		SlotTypes: []model.SlotType{slotType("duty", 1, 1, 1)},
		Config:    clinicalConfig(10),
	}
	engine := NewEngine(in, nil)
	staff := engine.staffByID("a")
	slot := engine.slotByID("duty")
	occ := occupancy{"a": {5}}

	assert.False(t, engine.PassesHardFilter(occ, staff, slot, 4), "Day before an assignment")
	assert.False(t, engine.PassesHardFilter(occ, staff, slot, 5), "Already working")
	assert.False(t, engine.PassesHardFilter(occ, staff, slot, 6), "Day after an assignment")
	assert.True(t, engine.PassesHardFilter(occ, staff, slot, 3))
	assert.True(t, engine.PassesHardFilter(occ, staff, slot, 7))
}

func TestPassesHardFilter_EligibilityAndOffDays(t *testing.T) {
	junior := staffMember("j", 3, 5)
	junior.OffDays = []int{2}
	unit := staffMember("u", 1, 5)
	unit.Group = "icu"

	restricted := slotType("senior", 1, 1, 1, 2)
	byUnit := model.SlotType{ID: "icu", MinDailyCount: 1, MaxDailyCount: 1, AllowedUnits: []string{"icu"}}
	both := model.SlotType{ID: "both", MinDailyCount: 1, MaxDailyCount: 1, AllowedTiers: []int{1}, AllowedUnits: []string{"ward"}}
	required := slotType("required", 1, 1, 1, 2, 3)
	required.RequiredGroup = "icu"

	engine := NewEngine(Input{
		Staff:     []model.StaffMember{junior, unit},
		SlotTypes: []model.SlotType{restricted, byUnit, both, required},
		Config:    clinicalConfig(5),
	}, nil)
	occ := occupancy{}
	j, u := engine.staffByID("j"), engine.staffByID("u")

	assert.False(t, engine.PassesHardFilter(occ, j, engine.slotByID("senior"), 1), "Tier outside the eligibility set")
	assert.True(t, engine.PassesHardFilter(occ, u, engine.slotByID("icu"), 1))
	assert.False(t, engine.PassesHardFilter(occ, j, engine.slotByID("icu"), 1), "Unit outside the eligibility set")
	assert.False(t, engine.PassesHardFilter(occ, u, engine.slotByID("both"), 1), "Tier and unit must both match")
	assert.False(t, engine.PassesHardFilter(occ, j, engine.slotByID("required"), 1), "Required group mismatch")
	assert.True(t, engine.PassesHardFilter(occ, u, engine.slotByID("required"), 1))

	junior.Group = "icu"
	engine = NewEngine(Input{Staff: []model.StaffMember{junior}, SlotTypes: []model.SlotType{required}, Config: clinicalConfig(5)}, nil)
	j = engine.staffByID("j")
	assert.False(t, engine.PassesHardFilter(occ, j, engine.slotByID("required"), 2), "Off day")
	assert.True(t, engine.PassesHardFilter(occ, j, engine.slotByID("required"), 3))
}

func TestPassesHardFilter_Roommates(t *testing.T) {
	a := staffMember("a", 2, 5)
	a.RoomID = "r1"
	b := staffMember("b", 2, 5)
	b.RoomID = "r1"
	b.OffDays = []int{9}
	c := staffMember("c", 2, 5)

	engine := NewEngine(Input{
		Staff:     []model.StaffMember{a, b, c},
		SlotTypes: []model.SlotType{slotType("duty", 1, 2, 2)},
		Config:    nursingConfig(12, nil),
	}, nil)
	slot := engine.slotByID("duty")
	occ := occupancy{"b": {5}, "c": {2}}
	staffA := engine.staffByID("a")

	assert.False(t, engine.PassesHardFilter(occ, staffA, slot, 4), "Roommate works the next day")
	assert.False(t, engine.PassesHardFilter(occ, staffA, slot, 5), "Roommate works the same day")
	assert.False(t, engine.PassesHardFilter(occ, staffA, slot, 6), "Roommate worked the previous day")
	assert.False(t, engine.PassesHardFilter(occ, staffA, slot, 9), "Roommate is off")
	assert.True(t, engine.PassesHardFilter(occ, staffA, slot, 2), "Other rooms do not matter")
	assert.True(t, engine.PassesHardFilter(occ, engine.staffByID("c"), slot, 5), "No room, no roommate rule")
}

func TestPassesHardFilter_InactiveRoommateIgnored(t *testing.T) {
	a := staffMember("a", 2, 5)
	a.RoomID = "r1"
	b := staffMember("b", 2, 5)
	b.RoomID = "r1"
	b.OffDays = []int{3}
	b.Active = false

	engine := NewEngine(Input{
		Staff:     []model.StaffMember{a, b},
		SlotTypes: []model.SlotType{slotType("duty", 1, 2, 2)},
		Config:    nursingConfig(5, nil),
	}, nil)

	assert.Empty(t, engine.roommates["a"])
	assert.True(t, engine.PassesHardFilter(occupancy{}, engine.staffByID("a"), engine.slotByID("duty"), 3))
}

func TestPassesHardFilter_RoommatesOnlyForNursing(t *testing.T) {
	a := staffMember("a", 2, 5)
	a.RoomID = "r1"
	b := staffMember("b", 2, 5)
	b.RoomID = "r1"

	engine := NewEngine(Input{
		Staff:     []model.StaffMember{a, b},
		SlotTypes: []model.SlotType{slotType("duty", 1, 2, 2)},
		Config:    clinicalConfig(10),
	}, nil)

	assert.True(t, engine.PassesHardFilter(occupancy{"b": {5}}, engine.staffByID("a"), engine.slotByID("duty"), 5))
}

func TestSpanCriterion(t *testing.T) {
	in := Input{
		Staff:     []model.StaffMember{staffMember("a", 1, 10), staffMember("b", 1, 10)},
		SlotTypes: []model.SlotType{slotType("duty", 1, 1, 1)},
		Config:    clinicalConfig(14),
	}
	engine, state := newTestState(t, in)
	place(t, engine, state, 4, "duty", "a")  // Thursday
	place(t, engine, state, 13, "duty", "b") // Saturday
	criterion := NewSpanCriterion()
	slot := engine.slotByID("duty")
	a, b := engine.staffByID("a"), engine.staffByID("b")

	assert.False(t, criterion.Allows(state, a, slot, engine.days[5], false), "Thursday worker on Saturday")
	assert.False(t, criterion.Allows(state, a, slot, engine.days[6], false), "Thursday worker on Sunday")
	assert.True(t, criterion.Allows(state, a, slot, engine.days[6], true), "Relaxed in desperate mode")
	assert.True(t, criterion.Allows(state, b, slot, engine.days[6], false))
	assert.False(t, criterion.Allows(state, b, slot, engine.days[10], false), "Saturday worker on the Thursday before")
	assert.True(t, criterion.Allows(state, a, slot, engine.days[10], false))
}

func TestSpanCriterion_HolidayLooksTwoDaysBack(t *testing.T) {
	cfg := clinicalConfig(10)
	cfg.Options = &model.ClinicalOptions{Holidays: []int{9}}
	in := Input{
		Staff:     []model.StaffMember{staffMember("a", 1, 10)},
		SlotTypes: []model.SlotType{slotType("duty", 1, 1, 1)},
		Config:    cfg,
	}
	engine, state := newTestState(t, in)
	place(t, engine, state, 7, "duty", "a")

	assert.False(t, NewSpanCriterion().Allows(state, engine.staffByID("a"), engine.slotByID("duty"), engine.days[8], false))
}

func TestSpanCriterion_WeekdayHoliday(t *testing.T) {
	// 9 September 2025 is a Tuesday
	cfg := clinicalConfig(14)
	cfg.Options = &model.ClinicalOptions{Holidays: []int{9}}
	in := Input{
		Staff:     []model.StaffMember{staffMember("a", 1, 10), staffMember("b", 1, 10)},
		SlotTypes: []model.SlotType{slotType("duty", 1, 1, 1)},
		Config:    cfg,
	}
	engine, state := newTestState(t, in)
	place(t, engine, state, 11, "duty", "a")
	place(t, engine, state, 9, "duty", "b")
	criterion := NewSpanCriterion()
	slot := engine.slotByID("duty")
	a, b := engine.staffByID("a"), engine.staffByID("b")

	assert.False(t, criterion.Allows(state, a, slot, engine.days[8], false), "Works two days after the holiday")
	assert.False(t, criterion.Allows(state, b, slot, engine.days[6], false), "Holiday worker two days before")
	assert.False(t, criterion.Allows(state, b, slot, engine.days[10], false), "Holiday worker two days after")
	assert.True(t, criterion.Allows(state, b, slot, engine.days[12], false))
	assert.True(t, criterion.Allows(state, a, slot, engine.days[6], false))
}

func TestSpanCriterion_WeekendHolidayUsesWeekendRule(t *testing.T) {
	// 6 September 2025 is a Saturday
	cfg := clinicalConfig(10)
	cfg.Options = &model.ClinicalOptions{Holidays: []int{6}}
	in := Input{
		Staff:     []model.StaffMember{staffMember("a", 1, 10)},
		SlotTypes: []model.SlotType{slotType("duty", 1, 1, 1)},
		Config:    cfg,
	}
	engine, state := newTestState(t, in)
	place(t, engine, state, 8, "duty", "a")

	// Monday after a Saturday holiday is not part of the weekend span
	assert.True(t, NewSpanCriterion().Allows(state, engine.staffByID("a"), engine.slotByID("duty"), engine.days[5], false))
}

func TestWeekendCriterion_Limit(t *testing.T) {
	limited := staffMember("a", 1, 10)
	limited.WeekendLimit = 1
	in := Input{
		Staff:     []model.StaffMember{limited, staffMember("b", 1, 10)},
		SlotTypes: []model.SlotType{slotType("duty", 1, 1, 1)},
		Config:    clinicalConfig(14),
	}
	engine, state := newTestState(t, in)
	place(t, engine, state, 7, "duty", "a") // Sunday
	place(t, engine, state, 7, "duty", "b")
	criterion := NewWeekendCriterion()
	slot := engine.slotByID("duty")
	saturday := engine.days[12]

	assert.False(t, criterion.Allows(state, engine.staffByID("a"), slot, saturday, false), "Weekend limit reached")
	assert.True(t, criterion.Allows(state, engine.staffByID("a"), slot, saturday, true))
	assert.True(t, criterion.Allows(state, engine.staffByID("b"), slot, saturday, false), "Zero limit is unlimited")
	assert.True(t, criterion.Allows(state, engine.staffByID("a"), slot, engine.days[9], false), "Weekdays are unaffected")
}

func TestWeekendCriterion_SaturdaySundayBalance(t *testing.T) {
	in := Input{
		Staff:     []model.StaffMember{staffMember("a", 1, 10)},
		SlotTypes: []model.SlotType{slotType("duty", 1, 1, 1)},
		Config:    clinicalConfig(21),
	}
	engine, state := newTestState(t, in)
	place(t, engine, state, 6, "duty", "a") // Saturday
	criterion := NewWeekendCriterion()
	a, slot := engine.staffByID("a"), engine.slotByID("duty")

	assert.False(t, criterion.Allows(state, a, slot, engine.days[12], false), "Another Saturday before any Sunday")
	assert.True(t, criterion.Allows(state, a, slot, engine.days[13], false), "A Sunday restores the balance")

	place(t, engine, state, 14, "duty", "a") // Sunday
	assert.True(t, criterion.Allows(state, a, slot, engine.days[19], false))
}

func TestQuotaCriterion(t *testing.T) {
	member := staffMember("a", 1, 1)
	member.EmergencyQuota = 2
	emergency := slotType("er", 1, 1, 1)
	emergency.IsEmergency = true
	in := Input{
		Staff:     []model.StaffMember{member},
		SlotTypes: []model.SlotType{slotType("ward", 1, 1, 1), emergency},
		Config:    clinicalConfig(10),
	}
	engine, state := newTestState(t, in)
	criterion := NewQuotaCriterion(WeightRemainingQuota)
	a := engine.staffByID("a")
	ward, er := engine.slotByID("ward"), engine.slotByID("er")

	assert.Equal(t, -1.0, criterion.Cost(state, a, ward, engine.days[0]))
	assert.Equal(t, -2.0, criterion.Cost(state, a, er, engine.days[0]))

	place(t, engine, state, 1, "ward", "a")
	assert.False(t, criterion.Allows(state, a, ward, engine.days[4], false), "Service quota exhausted")
	assert.True(t, criterion.Allows(state, a, ward, engine.days[4], true))
	assert.True(t, criterion.Allows(state, a, er, engine.days[4], false), "Emergency quota is separate")
}

func TestQuotaCriterion_NursingUnifiedQuota(t *testing.T) {
	emergency := slotType("er", 1, 1, 2)
	emergency.IsEmergency = true
	in := Input{
		Staff:     []model.StaffMember{staffMember("a", 2, 1)},
		SlotTypes: []model.SlotType{slotType("ward", 1, 1, 2), emergency},
		Config:    nursingConfig(10, nil),
	}
	engine, state := newTestState(t, in)
	place(t, engine, state, 1, "ward", "a")

	assert.False(t, NewQuotaCriterion(1).Allows(state, engine.staffByID("a"), engine.slotByID("er"), engine.days[4], false))
}

func TestRequestedDayCriterion(t *testing.T) {
	member := staffMember("a", 1, 5)
	member.RequestedDays = []int{3}
	in := Input{Staff: []model.StaffMember{member}, SlotTypes: []model.SlotType{slotType("duty", 1, 1, 1)}, Config: clinicalConfig(5)}
	engine, state := newTestState(t, in)
	criterion := NewRequestedDayCriterion(WeightRequestedDay)
	a, slot := engine.staffByID("a"), engine.slotByID("duty")

	assert.Equal(t, -1.0, criterion.Cost(state, a, slot, engine.days[2]))
	assert.Equal(t, 0.0, criterion.Cost(state, a, slot, engine.days[1]))
	assert.Equal(t, WeightRequestedDay, criterion.Weight())
}

func TestPriorityTierCriterion(t *testing.T) {
	slot := slotType("duty", 1, 1, 1, 2)
	slot.PriorityTiers = []int{2}
	in := Input{
		Staff:     []model.StaffMember{staffMember("a", 1, 5), staffMember("b", 2, 5)},
		SlotTypes: []model.SlotType{slot},
		Config:    clinicalConfig(5),
	}
	engine, state := newTestState(t, in)
	criterion := NewPriorityTierCriterion(WeightPriorityTier)

	assert.Equal(t, 0.0, criterion.Cost(state, engine.staffByID("a"), engine.slotByID("duty"), engine.days[0]))
	assert.Equal(t, -1.0, criterion.Cost(state, engine.staffByID("b"), engine.slotByID("duty"), engine.days[0]))
}

func TestResourcePreservationCriterion(t *testing.T) {
	in := Input{
		Staff: []model.StaffMember{
			staffMember("specialist", 1, 5),
			staffMember("allrounder", 2, 5),
			staffMember("other", 2, 5),
		},
		SlotTypes: []model.SlotType{
			slotType("generic", 1, 1, 1, 2),
			slotType("junior", 1, 1, 2),
			slotType("junior2", 1, 1, 2),
		},
		Config: clinicalConfig(5),
	}
	engine, state := newTestState(t, in)
	criterion := NewResourcePreservationCriterion(WeightResourcePreservation)
	generic := engine.slotByID("generic")

	assert.Equal(t, 1.0, criterion.Cost(state, engine.staffByID("specialist"), generic, engine.days[0]),
		"Specialists are penalised on generic slots")
	assert.Equal(t, -flexibleNudge, criterion.Cost(state, engine.staffByID("allrounder"), generic, engine.days[0]),
		"All-rounders are nudged onto generic slots")

	// A slot only a third of the staff can fill is never generic
	scarce := Input{
		Staff:     []model.StaffMember{staffMember("a", 1, 5), staffMember("b", 2, 5), staffMember("c", 2, 5)},
		SlotTypes: []model.SlotType{slotType("rare", 1, 1, 1), slotType("common", 1, 1, 1, 2), slotType("junior", 1, 1, 2)},
		Config:    clinicalConfig(5),
	}
	engine, state = newTestState(t, scarce)
	assert.Equal(t, 0.0, criterion.Cost(state, engine.staffByID("a"), engine.slotByID("rare"), engine.days[0]))
	assert.Equal(t, 1.0, criterion.Cost(state, engine.staffByID("a"), engine.slotByID("common"), engine.days[0]))
}

func TestGroupBalanceCriterion(t *testing.T) {
	a := staffMember("a", 1, 5)
	a.Group = "g1"
	b := staffMember("b", 1, 5)
	b.Group = "g1"
	c := staffMember("c", 1, 5)
	c.Group = "g2"
	in := Input{Staff: []model.StaffMember{a, b, c}, SlotTypes: []model.SlotType{slotType("duty", 1, 3, 1)}, Config: clinicalConfig(5)}
	engine, state := newTestState(t, in)
	place(t, engine, state, 2, "duty", "a")
	criterion := NewGroupBalanceCriterion(WeightGroupBalance)
	slot := engine.slotByID("duty")

	assert.Equal(t, 1.0, criterion.Cost(state, engine.staffByID("b"), slot, engine.days[1]))
	assert.Equal(t, 0.0, criterion.Cost(state, engine.staffByID("c"), slot, engine.days[1]))
}

func TestAntiClusteringCriterion(t *testing.T) {
	in := Input{Staff: []model.StaffMember{staffMember("a", 1, 5)}, SlotTypes: []model.SlotType{slotType("duty", 1, 1, 1)}, Config: clinicalConfig(10)}
	engine, state := newTestState(t, in)
	place(t, engine, state, 3, "duty", "a")
	place(t, engine, state, 7, "duty", "a")
	criterion := NewAntiClusteringCriterion(WeightAntiClustering)
	a, slot := engine.staffByID("a"), engine.slotByID("duty")

	assert.Equal(t, 2.0, criterion.Cost(state, a, slot, engine.days[4]), "Day 5 sits between days 3 and 7")
	assert.Equal(t, 1.0, criterion.Cost(state, a, slot, engine.days[0]))
	assert.Equal(t, 0.0, criterion.Cost(state, a, slot, engine.days[9]))
}

func TestFatigueCriterion(t *testing.T) {
	emergency := slotType("er", 1, 1, 1)
	emergency.IsEmergency = true
	in := Input{Staff: []model.StaffMember{staffMember("a", 1, 10)}, SlotTypes: []model.SlotType{emergency}, Config: clinicalConfig(14)}
	engine, state := newTestState(t, in)
	place(t, engine, state, 1, "er", "a")  // Monday, emergency: 2.0
	place(t, engine, state, 6, "er", "a")  // Saturday, emergency: 2.5
	criterion := NewFatigueCriterion(WeightFatigue, 4)
	a, slot := engine.staffByID("a"), engine.slotByID("er")

	assert.Equal(t, 4.5, state.Stress("a"))
	assert.Equal(t, 4.5, criterion.Cost(state, a, slot, engine.days[9]))
	assert.False(t, criterion.Allows(state, a, slot, engine.days[9], false), "Threshold reached")
	assert.True(t, criterion.Allows(state, a, slot, engine.days[9], true))
}

func TestCatchUpCriterion(t *testing.T) {
	in := Input{
		Staff:     []model.StaffMember{staffMember("p", 2, 5), staffMember("q", 2, 5), staffMember("senior", 1, 5)},
		SlotTypes: []model.SlotType{slotType("duty", 1, 2, 1, 2)},
		Config:    nursingConfig(10, nil),
	}
	engine, state := newTestState(t, in)
	place(t, engine, state, 1, "duty", "p")
	criterion := NewCatchUpCriterion()
	slot := engine.slotByID("duty")

	assert.False(t, criterion.Allows(state, engine.staffByID("p"), slot, engine.days[4], false), "p is ahead of q")
	assert.True(t, criterion.Allows(state, engine.staffByID("q"), slot, engine.days[4], false))
	assert.True(t, criterion.Allows(state, engine.staffByID("senior"), slot, engine.days[4], false), "Other tiers are independent")
	assert.True(t, criterion.Allows(state, engine.staffByID("p"), slot, engine.days[4], true))
}

func TestSeniorCapCriterion(t *testing.T) {
	in := Input{
		Staff:     []model.StaffMember{staffMember("s1", 1, 5), staffMember("s2", 1, 5), staffMember("s3", 1, 5), staffMember("n", 2, 5)},
		SlotTypes: []model.SlotType{slotType("duty", 1, 4, 1, 2)},
		Config:    nursingConfig(5, nil),
	}
	engine, state := newTestState(t, in)
	place(t, engine, state, 2, "duty", "s1")
	criterion := NewSeniorCapCriterion()
	slot := engine.slotByID("duty")

	assert.False(t, criterion.Allows(state, engine.staffByID("s2"), slot, engine.days[1], false))
	assert.True(t, criterion.Allows(state, engine.staffByID("s2"), slot, engine.days[1], true), "Two seniors in desperate mode")
	assert.True(t, criterion.Allows(state, engine.staffByID("n"), slot, engine.days[1], false))

	place(t, engine, state, 2, "duty", "s2")
	assert.False(t, criterion.Allows(state, engine.staffByID("s3"), slot, engine.days[1], true), "Never three seniors")
}

func TestPermissionCriterion(t *testing.T) {
	icu := staffMember("icu", 2, 5)
	icu.Group = "icu"
	dialysis := staffMember("dialysis", 2, 5)
	dialysis.Specialty = "dialysis"
	cfg := nursingConfig(7, &model.NursingOptions{Permissions: map[string][]time.Weekday{
		"icu":      {time.Monday},
		"dialysis": {time.Tuesday},
	}})
	in := Input{Staff: []model.StaffMember{icu, dialysis}, SlotTypes: []model.SlotType{slotType("duty", 1, 2, 2)}, Config: cfg}
	engine, state := newTestState(t, in)
	criterion := NewPermissionCriterion()
	slot := engine.slotByID("duty")

	assert.True(t, criterion.Allows(state, engine.staffByID("icu"), slot, engine.days[0], false))
	assert.False(t, criterion.Allows(state, engine.staffByID("icu"), slot, engine.days[1], false))
	assert.False(t, criterion.Allows(state, engine.staffByID("dialysis"), slot, engine.days[0], false))
	assert.True(t, criterion.Allows(state, engine.staffByID("dialysis"), slot, engine.days[1], false))
}

func TestRunAttempt_NursingDailyTarget(t *testing.T) {
	staff := make([]model.StaffMember, 0, 6)
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		staff = append(staff, staffMember(id, 2, 15))
	}
	in := Input{
		Staff:     staff,
		SlotTypes: []model.SlotType{slotType("ward", 1, 3, 2)},
		Config:    nursingConfig(0, &model.NursingOptions{DailyTarget: 2}),
	}

	res := NewEngine(in, nil).RunAttempt(NewRand(4))
	require.Len(t, res.Schedule, 30)
	for _, day := range res.Schedule {
		assert.LessOrEqual(t, len(day.Assignments), 2, "day %d exceeds the daily target", day.Day)
		assert.GreaterOrEqual(t, len(day.Assignments), 1)
	}
	assertNoConsecutiveDays(t, res.Schedule)
}

func TestRunAttempt_NursingSeniorCap(t *testing.T) {
	staff := []model.StaffMember{
		staffMember("s1", 1, 15), staffMember("s2", 1, 15), staffMember("s3", 1, 15), staffMember("s4", 1, 15),
		staffMember("n1", 2, 15), staffMember("n2", 2, 15), staffMember("n3", 2, 15), staffMember("n4", 2, 15),
	}
	in := Input{
		Staff:     staff,
		SlotTypes: []model.SlotType{slotType("ward", 2, 2, 1, 2)},
		Config:    nursingConfig(14, nil),
	}

	res := NewEngine(in, nil).RunAttempt(NewRand(8))
	for _, day := range res.Schedule {
		seniors := 0
		for _, a := range day.Assignments {
			if a.Staff != nil && a.Staff.Tier == model.SeniorTier {
				seniors++
			}
		}
		assert.LessOrEqual(t, seniors, 2, "day %d", day.Day)
	}
}

func TestLogBuffer_Bounded(t *testing.T) {
	log := newLogBuffer()
	for i := 0; i < MaxLogLines+500; i++ {
		log.addf("line %d", i)
	}

	lines := log.Lines()
	require.Len(t, lines, MaxLogLines)
	assert.Equal(t, "line 0", lines[0])
	assert.Equal(t, "... 501 log lines dropped", lines[MaxLogLines-1])
}

func TestLogBuffer_NoDropNote(t *testing.T) {
	log := newLogBuffer()
	log.addf("a %s", "b")
	assert.Equal(t, []string{"a b"}, log.Lines())
}
