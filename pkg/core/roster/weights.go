package roster

// Built-in cost weights for candidate scoring.
// Costs are summed per candidate and the lowest total wins.
const (
	// WeightRequestedDay is subtracted when the day is in the candidate's requested days.
	// It dominates every other term so requests are honoured whenever the candidate is legal.
	WeightRequestedDay = 1000.0

	// WeightRemainingQuota is applied per shift of remaining quota in the slot's category.
	// Candidates furthest from their target are preferred.
	WeightRemainingQuota = 10.0

	// WeightResourcePreservation penalises specialists on widely available slots
	WeightResourcePreservation = 15.0

	// WeightAntiClustering is applied per assignment two days before or after
	WeightAntiClustering = 8.0

	// WeightGroupBalance is applied per member of the same group already working the day
	WeightGroupBalance = 5.0

	// WeightPriorityTier is subtracted when the candidate's tier is a priority tier of the slot
	WeightPriorityTier = 6.0

	// WeightFatigue is applied per point of accumulated stress
	WeightFatigue = 3.0

	// JitterScale bounds the random tie-break added to every candidate cost
	JitterScale = 1.0
)

// Fatigue increments per assignment
const (
	StressPerShift     = 1.0
	StressEmergency    = 1.0
	StressWeekendExtra = 0.5
)

// UnfilledFitnessWeight makes every unfilled slot outweigh any quota deviation
const UnfilledFitnessWeight = 10000.0

// Resource preservation thresholds
const (
	// SpecialistMaxSlotTypes is the largest number of compatible slot types a specialist has
	SpecialistMaxSlotTypes = 2

	// GenericSlotShare is the share of active staff eligible for a slot above which it counts as generic
	GenericSlotShare = 0.5

	// flexibleNudge is the relative cost reduction for all-rounders on generic slots
	flexibleNudge = 0.25
)
