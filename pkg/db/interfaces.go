package db

import (
	"context"
	"errors"
	"time"
)

// ErrRosterNotFound is returned when no roster exists for the requested period
var ErrRosterNotFound = errors.New("roster not found")

// RosterStore defines the interface for roster database operations
type RosterStore interface {
	// GetLatestRoster returns the most recently generated roster for a period,
	// or ErrRosterNotFound
	GetLatestRoster(ctx context.Context, profile string, year int, month time.Month) (*Roster, error)
	GetRosters(ctx context.Context) ([]Roster, error)
	InsertRoster(ctx context.Context, roster *Roster, assignments []RosterAssignment) error
}

// AssignmentStore defines the interface for assignment database operations
type AssignmentStore interface {
	GetAssignments(ctx context.Context, rosterID string) ([]RosterAssignment, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	RosterStore
	AssignmentStore
	RunMigrations(ctx context.Context) error
	Close()
}
