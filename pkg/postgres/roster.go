package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/db"
)

const rosterColumns = `id, profile, year, month, seed, unfilled_slots, quota_deviation, fitness, generated_at, parent_id`

// GetLatestRoster returns the most recently generated roster for a period
func (d *DB) GetLatestRoster(ctx context.Context, profile string, year int, month time.Month) (*db.Roster, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+rosterColumns+`
		FROM roster
		WHERE profile = $1 AND year = $2 AND month = $3
		ORDER BY generated_at DESC
		LIMIT 1
	`, profile, year, int(month))

	r, err := scanRoster(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrRosterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest roster: %w", err)
	}
	return r, nil
}

// GetRosters retrieves all roster records, newest first
func (d *DB) GetRosters(ctx context.Context) ([]db.Roster, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+rosterColumns+`
		FROM roster
		ORDER BY generated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters: %w", err)
	}
	defer rows.Close()

	var rosters []db.Roster
	for rows.Next() {
		r, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rosters: %w", err)
	}

	return rosters, nil
}

// InsertRoster inserts a roster and its assignments in one transaction
func (d *DB) InsertRoster(ctx context.Context, roster *db.Roster, assignments []db.RosterAssignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var parentID *string
	if roster.ParentID != "" {
		parentID = &roster.ParentID
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO roster (`+rosterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, roster.ID, roster.Profile, roster.Year, int(roster.Month), roster.Seed,
		roster.UnfilledSlots, roster.QuotaDeviation, roster.Fitness, roster.GeneratedAt.UTC(), parentID)
	if err != nil {
		return fmt.Errorf("failed to insert roster: %w", err)
	}

	if len(assignments) > 0 {
		copied, err := tx.CopyFrom(ctx,
			pgx.Identifier{"roster_assignment"},
			[]string{"id", "roster_id", "day", "position", "slot_type_id", "staff_id",
				"staff_name", "staff_tier", "staff_group", "is_emergency", "is_weekend", "is_holiday"},
			pgx.CopyFromSlice(len(assignments), func(i int) ([]any, error) {
				a := assignments[i]
				return []any{a.ID, a.RosterID, a.Day, a.Position, a.SlotTypeID, a.StaffID,
					a.StaffName, a.StaffTier, a.StaffGroup, a.IsEmergency, a.IsWeekend, a.IsHoliday}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignments: %w", err)
		}
		d.logger.Debug("Copied roster assignments", zap.String("roster_id", roster.ID), zap.Int64("rows", copied))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAssignments retrieves the assignments of a roster ordered by day and position
func (d *DB) GetAssignments(ctx context.Context, rosterID string) ([]db.RosterAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, roster_id, day, position, slot_type_id, staff_id,
		       staff_name, staff_tier, staff_group, is_emergency, is_weekend, is_holiday
		FROM roster_assignment
		WHERE roster_id = $1
		ORDER BY day, position
	`, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.RosterAssignment
	for rows.Next() {
		var a db.RosterAssignment
		if err := rows.Scan(&a.ID, &a.RosterID, &a.Day, &a.Position, &a.SlotTypeID, &a.StaffID,
			&a.StaffName, &a.StaffTier, &a.StaffGroup, &a.IsEmergency, &a.IsWeekend, &a.IsHoliday); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

func scanRoster(row pgx.Row) (*db.Roster, error) {
	var r db.Roster
	var month int
	var parentID *string
	if err := row.Scan(&r.ID, &r.Profile, &r.Year, &month, &r.Seed, &r.UnfilledSlots,
		&r.QuotaDeviation, &r.Fitness, &r.GeneratedAt, &parentID); err != nil {
		return nil, err
	}
	r.Month = time.Month(month)
	r.GeneratedAt = r.GeneratedAt.UTC()
	if parentID != nil {
		r.ParentID = *parentID
	}
	return &r, nil
}
