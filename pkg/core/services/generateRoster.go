package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// BridgeDays is the number of trailing days of the previous month fed to the engine
const BridgeDays = 2

// GenerateRosterStore defines the database operations needed to generate a roster
type GenerateRosterStore interface {
	GetLatestRoster(ctx context.Context, profile string, year int, month time.Month) (*db.Roster, error)
	GetAssignments(ctx context.Context, rosterID string) ([]db.RosterAssignment, error)
	InsertRoster(ctx context.Context, roster *db.Roster, assignments []db.RosterAssignment) error
}

// MetricsRecorder receives the outcome of a generation run
type MetricsRecorder interface {
	ObserveRun(profile model.Profile, controller string, res *model.Result, duration time.Duration)
}

// GenerateOptions controls persistence and instrumentation of GenerateRoster
type GenerateOptions struct {
	// DryRun skips saving the generated roster
	DryRun bool

	// Recorder is optional
	Recorder MetricsRecorder

	// Now defaults to time.Now
	Now func() time.Time
}

// GenerateRosterResult contains the generated roster and its stored record
type GenerateRosterResult struct {
	Result *model.Result

	// Roster is nil for dry runs
	Roster *db.Roster

	// BridgeRosterID is the previous month's roster used for the bridge, if any
	BridgeRosterID string
	Controller     string
}

// GenerateRoster builds the roster for the period described by input.Config.
// The previous month's latest roster, when one exists, provides the bridge tail.
func GenerateRoster(
	ctx context.Context,
	store GenerateRosterStore,
	input roster.Input,
	logger *zap.Logger,
	opts GenerateOptions,
) (*GenerateRosterResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	period := PeriodOf(input.Config)
	logger.Debug("Starting generateRoster",
		zap.String("profile", string(period.Profile)),
		zap.Int("year", period.Year),
		zap.String("month", period.Month.String()),
		zap.Bool("dry_run", opts.DryRun))

	// Step 1: Fetch the previous month's tail for the bridge
	bridgeID := ""
	if len(input.PreviousTail) == 0 {
		tail, id, err := previousTail(ctx, store, period.Previous(), logger)
		if err != nil {
			return nil, err
		}
		input.PreviousTail = tail
		bridgeID = id
	}

	// Step 2: Run the engine
	controller := controllerName(input.Config)
	logger.Info("Generating roster",
		zap.String("controller", controller),
		zap.Int("staff", len(input.Staff)),
		zap.Int("slot_types", len(input.SlotTypes)),
		zap.Int("bridge_days", len(input.PreviousTail)))

	started := now()
	res, err := roster.Generate(ctx, input, roster.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to generate roster: %w", err)
	}
	elapsed := now().Sub(started)

	logger.Info("Roster generated",
		zap.Int64("seed", res.Seed),
		zap.Int("unfilled_slots", res.UnfilledSlots),
		zap.Int("quota_deviation", res.QuotaDeviation),
		zap.Duration("duration", elapsed))

	// Step 3: Record metrics
	if opts.Recorder != nil {
		opts.Recorder.ObserveRun(period.Profile, controller, res, elapsed)
	}

	out := &GenerateRosterResult{Result: res, BridgeRosterID: bridgeID, Controller: controller}
	if opts.DryRun {
		logger.Info("Dry run, roster not saved")
		return out, nil
	}

	// Step 4: Save
	record, rows := toRecords(res, period, "", now())
	if err := store.InsertRoster(ctx, record, rows); err != nil {
		return nil, fmt.Errorf("failed to save roster: %w", err)
	}
	logger.Debug("Saved roster", zap.String("roster_id", record.ID), zap.Int("assignments", len(rows)))

	out.Roster = record
	return out, nil
}

// previousTail loads the last BridgeDays days of the latest roster for period.
// A missing roster yields an empty tail.
func previousTail(ctx context.Context, store GenerateRosterStore, period Period, logger *zap.Logger) ([]model.DaySchedule, string, error) {
	prev, err := store.GetLatestRoster(ctx, string(period.Profile), period.Year, period.Month)
	if errors.Is(err, db.ErrRosterNotFound) {
		logger.Debug("No previous roster found, generating without bridge",
			zap.Int("year", period.Year),
			zap.String("month", period.Month.String()))
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch previous roster: %w", err)
	}

	rows, err := store.GetAssignments(ctx, prev.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch previous roster assignments: %w", err)
	}

	tail := Tail(scheduleFromRecords(prev.Year, prev.Month, rows), BridgeDays)
	logger.Debug("Loaded bridge tail", zap.String("roster_id", prev.ID), zap.Int("days", len(tail)))
	return tail, prev.ID, nil
}

func controllerName(cfg model.Config) string {
	if clinical := cfg.Clinical(); clinical != nil && clinical.Genetic {
		return "genetic"
	}
	return "montecarlo"
}
