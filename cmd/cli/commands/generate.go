package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/services"
	"github.com/jakechorley/duty-roster/pkg/db"
	"github.com/jakechorley/duty-roster/pkg/metrics"
	"github.com/jakechorley/duty-roster/pkg/spreadsheet"
)

// offlineStore stands in for the database on dry runs without one
type offlineStore struct{}

func (offlineStore) GetLatestRoster(ctx context.Context, profile string, year int, month time.Month) (*db.Roster, error) {
	return nil, db.ErrRosterNotFound
}

func (offlineStore) GetAssignments(ctx context.Context, rosterID string) ([]db.RosterAssignment, error) {
	return nil, nil
}

func (offlineStore) InsertRoster(ctx context.Context, roster *db.Roster, assignments []db.RosterAssignment) error {
	return fmt.Errorf("no database configured")
}

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the roster for the month in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetInt64("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			workers, _ := cmd.Flags().GetInt("workers")
			genetic, _ := cmd.Flags().GetBool("genetic")
			push, _ := cmd.Flags().GetBool("push")
			exportPath, _ := cmd.Flags().GetString("export")
			showLogs, _ := cmd.Flags().GetBool("logs")

			_, problem, err := app.LoadProblem()
			if err != nil {
				return err
			}

			input := problem.Input
			if cmd.Flags().Changed("seed") {
				input.Config.Seed = seed
			}
			if workers == 0 {
				workers = app.Settings.Workers
			}
			if workers > 0 {
				input.Config.Workers = workers
			}
			if genetic {
				clinical := input.Config.Clinical()
				if clinical == nil {
					return fmt.Errorf("--genetic is only supported by the clinical profile")
				}
				clinical.Genetic = true
			}

			app.Logger.Info("generate command",
				zap.Int64("seed", input.Config.Seed),
				zap.Bool("dry_run", dryRun),
				zap.Int("workers", input.Config.Workers))

			var store services.GenerateRosterStore = offlineStore{}
			if !dryRun || app.Settings.Database.URL != "" {
				database, err := app.OpenDatabase()
				if err != nil {
					return err
				}
				store = database
			}

			var recorder *metrics.Recorder
			opts := services.GenerateOptions{DryRun: dryRun}
			if push {
				recorder = metrics.NewRecorder()
				opts.Recorder = recorder
			}

			out, err := services.GenerateRoster(app.Ctx, store, input, app.Logger, opts)
			if err != nil {
				return err
			}

			res := out.Result
			fmt.Printf("\nRoster %d-%02d (%s, %s, seed %d)\n\n",
				input.Config.Year, int(input.Config.Month), input.Config.Profile(), out.Controller, res.Seed)
			printRoster(os.Stdout, res, input.SlotTypes, true)
			fmt.Println()
			printStats(os.Stdout, res, input.Staff, input.Config.Profile())
			printLines(os.Stdout, "Warnings", problem.Warnings, true)
			if showLogs {
				printLines(os.Stdout, "Engine log", res.Logs, true)
			}

			if out.Roster != nil {
				fmt.Printf("\n✓ Saved roster %s\n", out.Roster.ID)
			} else {
				fmt.Println("\nDry run, roster not saved")
			}

			if exportPath != "" {
				if err := writeWorkbook(exportPath, res, input.Staff, input.SlotTypes); err != nil {
					return err
				}
				fmt.Printf("✓ Exported to %s\n", exportPath)
			}

			if recorder != nil {
				if app.Settings.Pushgateway.URL == "" {
					app.Logger.Warn("ROSTER_PUSHGATEWAY_URL not set, metrics not pushed")
				} else if err := metrics.Push(app.Settings.Pushgateway.URL, app.Settings.Pushgateway.Job); err != nil {
					app.Logger.Warn("Failed to push metrics", zap.Error(err))
				} else {
					app.Logger.Info("Pushed metrics", zap.String("url", app.Settings.Pushgateway.URL))
				}
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed for random decisions (0 picks one)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().Int("workers", 0, "Number of attempts run in parallel")
	cmd.Flags().Bool("genetic", false, "Use genetic refinement (clinical profile)")
	cmd.Flags().Bool("push", false, "Push run metrics to the Pushgateway")
	cmd.Flags().String("export", "", "Also write the roster to this .xlsx file")
	cmd.Flags().Bool("logs", false, "Print the engine diagnostic log")

	return cmd
}

func writeWorkbook(path string, res *model.Result, staff []model.StaffMember, slots []model.SlotType) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := spreadsheet.ExportRoster(f, res, staff, slots); err != nil {
		f.Close()
		return fmt.Errorf("failed to export roster: %w", err)
	}
	return f.Close()
}
