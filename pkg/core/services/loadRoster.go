package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// LoadRosterStore defines the database operations needed to load a roster
type LoadRosterStore interface {
	GetLatestRoster(ctx context.Context, profile string, year int, month time.Month) (*db.Roster, error)
	GetAssignments(ctx context.Context, rosterID string) ([]db.RosterAssignment, error)
}

// StoredRoster is a roster read back from the database
type StoredRoster struct {
	Roster *db.Roster
	Result *model.Result
}

// LoadRoster reads the latest roster for a period and rebuilds its stats
// against the given staff list. Diagnostic logs are not stored and come back empty.
func LoadRoster(ctx context.Context, store LoadRosterStore, period Period, staff []model.StaffMember, logger *zap.Logger) (*StoredRoster, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Debug("Loading roster",
		zap.String("profile", string(period.Profile)),
		zap.Int("year", period.Year),
		zap.String("month", period.Month.String()))

	record, err := store.GetLatestRoster(ctx, string(period.Profile), period.Year, period.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	rows, err := store.GetAssignments(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	res := &model.Result{
		Schedule: scheduleFromRecords(record.Year, record.Month, rows),
		Seed:     record.Seed,
		Fitness:  record.Fitness,
	}
	Reconcile(res, period.Profile, staff)

	logger.Debug("Loaded roster",
		zap.String("roster_id", record.ID),
		zap.Int("days", len(res.Schedule)),
		zap.Int("unfilled_slots", res.UnfilledSlots))

	return &StoredRoster{Roster: record, Result: res}, nil
}
