package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Sheet names of the exported workbook
const (
	RosterSheet = "Roster"
	StatsSheet  = "Stats"
)

// StatsHeader is the header row of the Stats sheet
var StatsHeader = []string{
	"Staff ID",
	"Name",
	"Total",
	"Service",
	"Emergency",
	"Weekend",
	"Saturday",
	"Sunday",
	"Holiday",
	"Quota",
	"Emergency Quota",
}

// ExportRoster writes a workbook with the roster grid (one row per day, one column per
// slot type) and the per-staff stats to w.
func ExportRoster(w io.Writer, res *model.Result, staff []model.StaffMember, slots []model.SlotType) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(RosterSheet); err != nil {
		return fmt.Errorf("failed to create roster sheet: %w", err)
	}
	if _, err := f.NewSheet(StatsSheet); err != nil {
		return fmt.Errorf("failed to create stats sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(RosterSheet); err == nil {
		f.SetActiveSheet(index)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	names := make(map[string]string, len(staff))
	for _, s := range staff {
		names[s.ID] = s.Name
	}

	if err := writeRosterSheet(f, st, res, names, slots); err != nil {
		return err
	}
	if err := writeStatsSheet(f, st, res, staff, names); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type styles struct {
	header  int
	weekend int
	empty   int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}

	s.weekend, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFF2CC"}, Pattern: 1},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create weekend style: %w", err)
	}

	s.empty, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#C00000"},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create empty style: %w", err)
	}

	return s, nil
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("failed to convert column number: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", last, 16); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeRosterSheet(f *excelize.File, st styles, res *model.Result, names map[string]string, slots []model.SlotType) error {
	headers := []string{"Day", "Weekday"}
	for _, slot := range slots {
		label := slot.Name
		if label == "" {
			label = slot.ID
		}
		headers = append(headers, label)
	}
	if err := writeHeader(f, RosterSheet, st.header, headers); err != nil {
		return fmt.Errorf("failed to write roster header: %w", err)
	}

	for i, day := range res.Schedule {
		row := i + 2
		values := []any{day.Day, day.Weekday.String()}
		hasEmpty := make([]bool, len(slots))
		for s, slot := range slots {
			var cellNames []string
			for _, a := range day.Assignments {
				if a.SlotTypeID != slot.ID {
					continue
				}
				if a.IsEmpty() {
					hasEmpty[s] = true
				}
				cellNames = append(cellNames, displayName(a, names))
			}
			values = append(values, strings.Join(cellNames, ", "))
		}

		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(RosterSheet, start, &values); err != nil {
			return fmt.Errorf("failed to write day %d: %w", day.Day, err)
		}

		if day.IsWeekend || day.IsHoliday {
			end, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(RosterSheet, start, end, st.weekend); err != nil {
				return fmt.Errorf("failed to style day %d: %w", day.Day, err)
			}
		}
		for s := range slots {
			if !hasEmpty[s] {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(s+3, row)
			if err := f.SetCellStyle(RosterSheet, cell, cell, st.empty); err != nil {
				return fmt.Errorf("failed to style cell %s: %w", cell, err)
			}
		}
	}

	return nil
}

func writeStatsSheet(f *excelize.File, st styles, res *model.Result, staff []model.StaffMember, names map[string]string) error {
	if err := writeHeader(f, StatsSheet, st.header, StatsHeader); err != nil {
		return fmt.Errorf("failed to write stats header: %w", err)
	}

	quotas := make(map[string]model.StaffMember, len(staff))
	for _, s := range staff {
		quotas[s.ID] = s
	}

	for i, s := range res.Stats {
		member := quotas[s.StaffID]
		name := names[s.StaffID]
		if name == "" {
			name = s.StaffID
		}
		values := []any{
			s.StaffID,
			name,
			s.TotalShifts,
			s.ServiceShifts,
			s.EmergencyShifts,
			s.WeekendShifts,
			s.SaturdayShifts,
			s.SundayShifts,
			s.HolidayShifts,
			member.Quota,
			member.EmergencyQuota,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(StatsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write stats for %s: %w", s.StaffID, err)
		}
	}

	return nil
}

// displayName prefers the snapshot taken at assignment time
func displayName(a model.Assignment, names map[string]string) string {
	if a.IsEmpty() {
		return model.EmptyStaffID
	}
	if a.Staff != nil && a.Staff.Name != "" {
		return a.Staff.Name
	}
	if name := names[a.StaffID]; name != "" {
		return name
	}
	return a.StaffID
}
