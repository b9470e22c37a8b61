package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/spreadsheet"
)

// writeStaffYAML renders imported staff as a staff section for the problem file
func writeStaffYAML(w io.Writer, staff []model.StaffMember) error {
	entries := make([]config.Staff, 0, len(staff))
	for _, s := range staff {
		entries = append(entries, config.Staff{
			ID:        s.ID,
			Name:      s.Name,
			Tier:      s.Tier,
			Group:     s.Group,
			Specialty: s.Specialty,
			Room:      s.RoomID,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"staff": entries}); err != nil {
		return fmt.Errorf("failed to encode staff: %w", err)
	}
	return enc.Close()
}

// ImportCmd creates the import command
func ImportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import staff from a spreadsheet and print them as a roster.yaml staff section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			staff, err := spreadsheet.ImportStaff(f)
			if err != nil {
				return err
			}
			app.Logger.Info("Imported staff", zap.Int("count", len(staff)))

			fmt.Fprintln(os.Stderr, "# quotas are zeroed; set quota, emergencyQuota and weekendLimit before generating")
			return writeStaffYAML(os.Stdout, staff)
		},
	}
}
