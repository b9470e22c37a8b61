package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// parseEditArgs reads <day> <slot_type_id> <old_staff_id> [new_staff_id].
// "-" or a missing new staff id clears the position; "-" as old staff id matches an EMPTY one.
func parseEditArgs(args []string) (services.AssignmentEdit, error) {
	day, err := strconv.Atoi(args[0])
	if err != nil || day < 1 {
		return services.AssignmentEdit{}, fmt.Errorf("day must be a positive number, got: %s", args[0])
	}

	edit := services.AssignmentEdit{Day: day, SlotTypeID: args[1], OldStaffID: args[2]}
	if len(args) > 3 {
		edit.NewStaffID = args[3]
	}
	if edit.OldStaffID == "-" {
		edit.OldStaffID = ""
	}
	if edit.NewStaffID == "-" {
		edit.NewStaffID = ""
	}
	return edit, nil
}

// EditCmd creates the edit command
func EditCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <day> <slot_type_id> <old_staff_id|-> [new_staff_id|-]",
		Short: "Replace one assignment of the latest saved roster",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit, err := parseEditArgs(args)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			_, problem, err := app.LoadProblem()
			if err != nil {
				return err
			}
			database, err := app.OpenDatabase()
			if err != nil {
				return err
			}

			input := problem.Input
			profile := input.Config.Profile()
			stored, err := services.LoadRoster(app.Ctx, database, services.PeriodOf(input.Config), input.Staff, app.Logger)
			if err != nil {
				return err
			}

			app.Logger.Info("edit command",
				zap.String("roster_id", stored.Roster.ID),
				zap.Int("day", edit.Day),
				zap.String("slot_type_id", edit.SlotTypeID),
				zap.String("old_staff_id", edit.OldStaffID),
				zap.String("new_staff_id", edit.NewStaffID))

			out, err := services.EditAssignment(stored.Result, profile, input.Staff, edit)
			if err != nil {
				return err
			}

			printLines(os.Stdout, "Warnings", out.Warnings, true)
			fmt.Println()
			printStats(os.Stdout, out.Result, input.Staff, profile)

			if dryRun {
				fmt.Println("\nDry run, edit not saved")
				return nil
			}

			record, err := services.SaveEditedRoster(app.Ctx, database, stored.Roster, out.Result, app.Logger)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Saved roster %s (edited from %s)\n", record.ID, stored.Roster.ID)
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show the result without saving")

	return cmd
}
