package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/db"
	"github.com/jakechorley/duty-roster/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Settings *config.Settings
	Logger   *zap.Logger
	Ctx      context.Context

	// ConfigPath overrides Settings.ConfigPath when set
	ConfigPath string

	// Database is opened on first use by OpenDatabase
	Database db.Database
}

// LoadProblem loads the problem file and logs its warnings
func (app *AppContext) LoadProblem() (*config.Config, *config.Problem, error) {
	path := app.ConfigPath
	if path == "" && app.Settings != nil {
		path = app.Settings.ConfigPath
	}

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	problem, err := cfg.Problem()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build roster input: %w", err)
	}
	for _, w := range problem.Warnings {
		app.Logger.Warn("Config warning", zap.String("warning", w))
	}

	return cfg, problem, nil
}

// OpenDatabase connects to PostgreSQL on first use
func (app *AppContext) OpenDatabase() (db.Database, error) {
	if app.Database != nil {
		return app.Database, nil
	}
	if err := app.Settings.RequireDatabase(); err != nil {
		return nil, err
	}

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Settings.Database.URL, app.Settings.Database.MaxConns, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Database = database
	app.Logger.Debug("Database connected")

	return database, nil
}

// Close releases the database connection, if any
func (app *AppContext) Close() {
	if app.Database != nil {
		app.Database.Close()
	}
}
