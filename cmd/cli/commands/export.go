package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export the latest saved roster to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, problem, err := app.LoadProblem()
			if err != nil {
				return err
			}
			database, err := app.OpenDatabase()
			if err != nil {
				return err
			}

			input := problem.Input
			stored, err := services.LoadRoster(app.Ctx, database, services.PeriodOf(input.Config), input.Staff, app.Logger)
			if err != nil {
				return err
			}

			if err := writeWorkbook(args[0], stored.Result, input.Staff, input.SlotTypes); err != nil {
				return err
			}
			fmt.Printf("✓ Exported roster %s to %s\n", stored.Roster.ID, args[0])
			return nil
		},
	}
}
