package roster

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Input holds the read-only inputs for one generation run
type Input struct {
	Staff     []model.StaffMember
	SlotTypes []model.SlotType
	Config    model.Config

	// PreviousTail holds the final day(s) of the previous month's roster (the bridge)
	PreviousTail []model.DaySchedule
}

// Engine holds everything that is static across the attempts of one generation run.
// A fresh Engine is constructed per run; attempts never share mutable state.
type Engine struct {
	cfg     model.Config
	profile model.Profile

	// allStaff is a private copy of the input, active holds pointers into it
	allStaff []model.StaffMember
	active   []*model.StaffMember
	slots    []model.SlotType
	days     []DayContext

	maxLayers int

	// flexibility counts the slot types each staff member is eligible for
	flexibility map[string]int

	// eligibleShare is the share of active staff eligible for each slot type
	eligibleShare map[string]float64

	// slotOrder holds slot indices per day, hardest first
	slotOrder [][]int

	// roommates maps a staff id to the other staff sharing its room (nursing)
	roommates map[string][]*model.StaffMember

	// bridge maps staff ids to the previous-month day offsets they worked (<= 0)
	bridge map[string][]int

	criteria []Criterion
	notes    []string
	logger   *zap.Logger
}

// NewEngine precomputes the static facts for a run. Inputs are copied and never mutated.
func NewEngine(in Input, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		cfg:           in.Config,
		profile:       in.Config.Profile(),
		allStaff:      cloneStaff(in.Staff),
		slots:         append([]model.SlotType(nil), in.SlotTypes...),
		days:          BuildDayContexts(in.Config),
		flexibility:   make(map[string]int),
		eligibleShare: make(map[string]float64),
		roommates:     make(map[string][]*model.StaffMember),
		bridge:        buildBridge(in.PreviousTail, previousMonthLength(in.Config)),
		logger:        logger,
	}

	for i := range e.allStaff {
		if e.allStaff[i].Active {
			e.active = append(e.active, &e.allStaff[i])
		}
	}

	for _, slot := range e.slots {
		if slot.MaxDailyCount > e.maxLayers {
			e.maxLayers = slot.MaxDailyCount
		}
	}

	e.buildEligibility()
	e.buildRoommates()
	e.buildSlotOrder()
	e.criteria = CriteriaForProfile(in.Config)

	logger.Debug("Roster engine initialised",
		zap.String("profile", string(e.profile)),
		zap.Int("days", len(e.days)),
		zap.Int("active_staff", len(e.active)),
		zap.Int("slot_types", len(e.slots)),
		zap.Int("layers", e.maxLayers),
		zap.Int("criteria", len(e.criteria)))

	return e
}

// Days returns the day contexts of the run
func (e *Engine) Days() []DayContext {
	return e.days
}

// Profile returns the constraint profile of the run
func (e *Engine) Profile() model.Profile {
	return e.profile
}

func cloneStaff(staff []model.StaffMember) []model.StaffMember {
	out := make([]model.StaffMember, len(staff))
	for i, s := range staff {
		s.OffDays = append([]int(nil), s.OffDays...)
		s.RequestedDays = append([]int(nil), s.RequestedDays...)
		out[i] = s
	}
	return out
}

// buildBridge maps the previous month's tail onto day offsets, where the
// previous month's last day (prevLast) is 0. Days past prevLast are ignored.
func buildBridge(tail []model.DaySchedule, prevLast int) map[string][]int {
	bridge := make(map[string][]int)
	for _, day := range tail {
		offset := day.Day - prevLast
		if offset > 0 {
			continue
		}
		for _, a := range day.Assignments {
			if a.IsEmpty() {
				continue
			}
			bridge[a.StaffID] = append(bridge[a.StaffID], offset)
		}
	}
	return bridge
}

// previousMonthLength returns the number of days in the month before cfg's
func previousMonthLength(cfg model.Config) int {
	return time.Date(cfg.Year, cfg.Month, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (e *Engine) buildEligibility() {
	for _, slot := range e.slots {
		if !slot.HasEligibilitySet() {
			e.notes = append(e.notes, "slot "+slot.ID+" has an empty eligibility set; nobody can fill it")
		}
		eligible := 0
		for _, staff := range e.active {
			if slot.Admits(*staff) {
				eligible++
				e.flexibility[staff.ID]++
			}
		}
		if len(e.active) > 0 {
			e.eligibleShare[slot.ID] = float64(eligible) / float64(len(e.active))
		}
	}
}

func (e *Engine) buildRoommates() {
	if e.profile != model.ProfileNursing {
		return
	}
	// Inactive staff are not rostered, so they never constrain a roommate
	byRoom := make(map[string][]*model.StaffMember)
	for _, staff := range e.active {
		if staff.RoomID != "" {
			byRoom[staff.RoomID] = append(byRoom[staff.RoomID], staff)
		}
	}
	for _, members := range byRoom {
		for _, member := range members {
			for _, mate := range members {
				if mate.ID != member.ID {
					e.roommates[member.ID] = append(e.roommates[member.ID], mate)
				}
			}
		}
	}
}

// buildSlotOrder sorts slot types per day by difficulty, hardest first:
// fewer available eligible staff, higher minimum, priority tiers present, emergency.
func (e *Engine) buildSlotOrder() {
	e.slotOrder = make([][]int, len(e.days))
	for d, day := range e.days {
		available := make([]int, len(e.slots))
		for i, slot := range e.slots {
			for _, staff := range e.active {
				if slot.Admits(*staff) && !staff.IsOff(day.Day) {
					available[i]++
				}
			}
		}

		order := make([]int, len(e.slots))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			a, b := e.slots[order[i]], e.slots[order[j]]
			if available[order[i]] != available[order[j]] {
				return available[order[i]] < available[order[j]]
			}
			if a.MinDailyCount != b.MinDailyCount {
				return a.MinDailyCount > b.MinDailyCount
			}
			if (len(a.PriorityTiers) > 0) != (len(b.PriorityTiers) > 0) {
				return len(a.PriorityTiers) > 0
			}
			if a.IsEmergency != b.IsEmergency {
				return a.IsEmergency
			}
			return false
		})
		e.slotOrder[d] = order
	}
}

// orderDays returns day indices hardest first. Ties keep calendar order unless
// RandomizeOrder is set, in which case they are shuffled.
func (e *Engine) orderDays(rng Rand) []int {
	order := make([]int, len(e.days))
	for i := range order {
		order[i] = i
	}
	if e.cfg.RandomizeOrder {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	sort.SliceStable(order, func(i, j int) bool {
		return e.days[order[i]].difficulty() > e.days[order[j]].difficulty()
	})
	return order
}

// RunAttempt runs one full greedy layered pass over the month.
//
// For each layer, every day (hardest first) and every slot type (hardest first) gets at
// most one more position. Placements are never revisited within the attempt.
func (e *Engine) RunAttempt(rng Rand) *model.Result {
	state := newRosterState(e, rng)

	for layer := 0; layer < e.maxLayers; layer++ {
		for _, d := range e.orderDays(rng) {
			for _, s := range e.slotOrder[d] {
				state.fillPosition(e.days[d], &e.slots[s], layer)
			}
		}
	}

	return state.result()
}

// Evaluate rebuilds the derived fields of a result from its schedule
func (e *Engine) Evaluate(schedule []model.DaySchedule, logs []string) *model.Result {
	stats := AggregateStats(schedule, e.allStaff)
	unfilled := CountUnfilled(schedule)
	return &model.Result{
		Schedule:       schedule,
		Stats:          stats,
		UnfilledSlots:  unfilled,
		QuotaDeviation: QuotaDeviation(e.profile, e.allStaff, stats),
		Logs:           logs,
	}
}

// slotByID looks up a slot type
func (e *Engine) slotByID(id string) *model.SlotType {
	for i := range e.slots {
		if e.slots[i].ID == id {
			return &e.slots[i]
		}
	}
	return nil
}

// staffByID looks up an active staff member
func (e *Engine) staffByID(id string) *model.StaffMember {
	for _, staff := range e.active {
		if staff.ID == id {
			return staff
		}
	}
	return nil
}
