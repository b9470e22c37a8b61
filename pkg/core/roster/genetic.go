package roster

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// tournamentSize is the number of individuals compared when picking a parent
const tournamentSize = 3

// maxSwapTries bounds the random pair draws of one swap mutation
const maxSwapTries = 10

// GeneticOptions configures the genetic refinement controller
type GeneticOptions struct {
	PopulationSize int
	Generations    int
	EliteCount     int
	CrossoverRate  float64
}

// GeneticOptionsFrom fills unset clinical options with the defaults
func GeneticOptionsFrom(opts *model.ClinicalOptions) GeneticOptions {
	out := GeneticOptions{
		PopulationSize: model.DefaultPopulationSize,
		Generations:    model.DefaultGenerations,
		EliteCount:     model.DefaultEliteCount,
		CrossoverRate:  model.DefaultCrossoverRate,
	}
	if opts == nil {
		return out
	}
	if opts.PopulationSize > 0 {
		out.PopulationSize = opts.PopulationSize
	}
	if opts.Generations > 0 {
		out.Generations = opts.Generations
	}
	if opts.EliteCount > 0 {
		out.EliteCount = opts.EliteCount
	}
	if opts.CrossoverRate > 0 {
		out.CrossoverRate = opts.CrossoverRate
	}
	return out
}

// GeneticOutcome is the result of a genetic run
type GeneticOutcome struct {
	Best *model.Result

	// BestFitness holds the best fitness before each bred generation,
	// followed by the best fitness of the final population
	BestFitness []float64

	// Generations is the number of generations actually bred
	Generations int
}

type individual struct {
	result  *model.Result
	fitness float64
}

func (e *Engine) newIndividual(res *model.Result) individual {
	return individual{result: res, fitness: Fitness(res.UnfilledSlots, res.QuotaDeviation)}
}

// RunGenetic evolves a population of independently generated greedy rosters.
//
// Every generation the population is sorted by fitness (lower is better), the elite are
// kept unchanged and the rest is bred by crossover or mutation. The run stops early
// once a perfect roster (fitness 0) exists.
func (e *Engine) RunGenetic(ctx context.Context, opts GeneticOptions, seed int64, workers int) (*GeneticOutcome, error) {
	if opts.PopulationSize <= 0 {
		return nil, ErrNoAttempts
	}
	elite := min(opts.EliteCount, opts.PopulationSize)

	pop := make([]individual, opts.PopulationSize)
	err := e.runAttempts(ctx, opts.PopulationSize, seed, workers, func(i int, res *model.Result) {
		pop[i] = e.newIndividual(res)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build initial population: %w", err)
	}

	rng := NewRand(AttemptSeed(seed, opts.PopulationSize))
	outcome := &GeneticOutcome{}
	log := newLogBuffer()

	for gen := 0; gen < opts.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("genetic run interrupted: %w", err)
		}

		sortPopulation(pop)
		outcome.BestFitness = append(outcome.BestFitness, pop[0].fitness)
		log.addf("genetic: generation %d best fitness %.0f", gen, pop[0].fitness)

		if pop[0].fitness == 0 {
			log.addf("genetic: perfect roster found, stopping at generation %d", gen)
			break
		}

		next := make([]individual, 0, opts.PopulationSize)
		next = append(next, pop[:elite]...)
		for len(next) < opts.PopulationSize {
			next = append(next, e.breed(pop, opts, rng))
		}
		pop = next
		outcome.Generations++
	}

	sortPopulation(pop)
	outcome.BestFitness = append(outcome.BestFitness, pop[0].fitness)

	best := *pop[0].result
	fitness := pop[0].fitness
	best.Fitness = &fitness
	best.Seed = seed
	log.addAll(best.Logs)
	best.Logs = log.Lines()
	outcome.Best = &best

	e.logger.Debug("Genetic run complete",
		zap.Int("population", opts.PopulationSize),
		zap.Int("generations", outcome.Generations),
		zap.Float64("fitness", fitness),
		zap.Int("unfilled", best.UnfilledSlots))

	return outcome, nil
}

// breed produces one child by crossover or mutation
func (e *Engine) breed(pop []individual, opts GeneticOptions, rng Rand) individual {
	days := len(e.days)
	if days >= 3 && rng.Float64() < opts.CrossoverRate {
		a := tournament(pop, rng)
		b := tournament(pop, rng)
		split := 2 + rng.Intn(days-2)
		schedule := Crossover(a.result.Schedule, b.result.Schedule, split)
		return e.newIndividual(e.Evaluate(schedule, []string{fmt.Sprintf("crossover at day %d", split)}))
	}

	parent := tournament(pop, rng)
	schedule, note := e.Mutate(parent.result.Schedule, rng)
	return e.newIndividual(e.Evaluate(schedule, []string{note}))
}

func sortPopulation(pop []individual) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].fitness < pop[j].fitness
	})
}

func tournament(pop []individual, rng Rand) individual {
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < tournamentSize; i++ {
		candidate := pop[rng.Intn(len(pop))]
		if candidate.fitness < best.fitness {
			best = candidate
		}
	}
	return best
}

// Crossover builds a child from days 1..split of a and the remaining days of b.
//
// Parents are deep copied and never modified. The boundary is repaired by setting to
// EMPTY any assignment on day split+1 whose staff member already works on day split.
func Crossover(a, b []model.DaySchedule, split int) []model.DaySchedule {
	n := min(len(a), len(b))
	split = max(0, min(split, n))

	child := make([]model.DaySchedule, n)
	for i := 0; i < n; i++ {
		if i < split {
			child[i] = a[i].Clone()
		} else {
			child[i] = b[i].Clone()
		}
	}

	if split > 0 && split < n {
		before := child[split-1]
		after := &child[split]
		for i, assignment := range after.Assignments {
			if assignment.IsEmpty() || !before.HasStaff(assignment.StaffID) {
				continue
			}
			after.Assignments[i].StaffID = model.EmptyStaffID
			after.Assignments[i].Staff = nil
		}
	}

	return child
}

// Mutate returns a mutated copy of schedule and a short description of the change.
//
// It picks a day holding an EMPTY slot (or a random day if none) and first tries to fill
// that EMPTY slot with a staff member passing the hard filter. Otherwise it tries to swap
// two assignments of different slot types whose staff are each eligible for the other slot.
func (e *Engine) Mutate(schedule []model.DaySchedule, rng Rand) ([]model.DaySchedule, string) {
	child := model.CloneSchedule(schedule)
	if len(child) == 0 {
		return child, "mutation: empty schedule"
	}

	var emptyDays []int
	for i, day := range child {
		for _, a := range day.Assignments {
			if a.IsEmpty() {
				emptyDays = append(emptyDays, i)
				break
			}
		}
	}

	index := rng.Intn(len(child))
	if len(emptyDays) > 0 {
		index = emptyDays[rng.Intn(len(emptyDays))]
	}
	day := &child[index]

	if staffID, ok := e.fillEmpty(child, index, rng); ok {
		return child, fmt.Sprintf("mutation: filled EMPTY on day %d with %s", day.Day, staffID)
	}
	if e.swapAssignments(day, rng) {
		return child, fmt.Sprintf("mutation: swapped assignments on day %d", day.Day)
	}
	return child, fmt.Sprintf("mutation: no change on day %d", day.Day)
}

// fillEmpty places a random hard-eligible staff member on the first EMPTY slot of the day
func (e *Engine) fillEmpty(schedule []model.DaySchedule, index int, rng Rand) (string, bool) {
	day := &schedule[index]
	occ := newScheduleOccupancy(schedule, e.bridge)

	for i, a := range day.Assignments {
		if !a.IsEmpty() {
			continue
		}
		slot := e.slotByID(a.SlotTypeID)
		if slot == nil {
			continue
		}

		var candidates []*model.StaffMember
		for _, staff := range e.active {
			if e.PassesHardFilter(occ, staff, slot, day.Day) {
				candidates = append(candidates, staff)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		chosen := candidates[rng.Intn(len(candidates))]
		day.Assignments[i].StaffID = chosen.ID
		day.Assignments[i].Staff = &model.StaffSnapshot{Name: chosen.Name, Tier: chosen.Tier, Group: chosen.Group}
		return chosen.ID, true
	}
	return "", false
}

// swapAssignments exchanges the staff of two assignments of different slot types on one day
func (e *Engine) swapAssignments(day *model.DaySchedule, rng Rand) bool {
	var filled []int
	for i, a := range day.Assignments {
		if !a.IsEmpty() {
			filled = append(filled, i)
		}
	}
	if len(filled) < 2 {
		return false
	}

	for try := 0; try < maxSwapTries; try++ {
		i := filled[rng.Intn(len(filled))]
		j := filled[rng.Intn(len(filled))]
		a, b := day.Assignments[i], day.Assignments[j]
		if i == j || a.SlotTypeID == b.SlotTypeID {
			continue
		}

		slotA, slotB := e.slotByID(a.SlotTypeID), e.slotByID(b.SlotTypeID)
		staffA, staffB := e.staffByID(a.StaffID), e.staffByID(b.StaffID)
		if slotA == nil || slotB == nil || staffA == nil || staffB == nil {
			continue
		}
		if !slotB.Admits(*staffA) || !slotA.Admits(*staffB) {
			continue
		}

		day.Assignments[i].StaffID, day.Assignments[j].StaffID = b.StaffID, a.StaffID
		day.Assignments[i].Staff, day.Assignments[j].Staff = b.Staff, a.Staff
		return true
	}
	return false
}
