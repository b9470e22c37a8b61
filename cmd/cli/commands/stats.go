package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// StatsCmd creates the stats command
func StatsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the latest saved roster and its stats for the month in the config file",
		Args:  cobra.NoArgs,
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

			fmt.Printf("\nRoster %s generated %s\n\n", stored.Roster.ID, stored.Roster.GeneratedAt.Format("2006-01-02 15:04"))
			printRoster(os.Stdout, stored.Result, input.SlotTypes, true)
			fmt.Println()
			printStats(os.Stdout, stored.Result, input.Staff, input.Config.Profile())
			return nil
		},
	}
}
