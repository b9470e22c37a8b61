package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Staff import columns. Only Name is required.
const (
	ColumnID        = "ID"
	ColumnName      = "Name"
	ColumnTier      = "Tier"
	ColumnGroup     = "Group"
	ColumnSpecialty = "Specialty"
	ColumnRoom      = "Room"
)

// ErrMissingColumn is returned when the header row lacks a required column
var ErrMissingColumn = errors.New("missing required column")

// ImportStaff reads staff members from the first sheet of a workbook.
//
// The first row is the header; columns are matched by name, case-insensitively, in any
// order. Imported staff are active with zeroed quotas, pending manual configuration.
// Rows without a name are skipped. A missing ID is replaced with a generated one.
func ImportStaff(r io.Reader) ([]model.StaffMember, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make(map[string]int)
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := header[strings.ToLower(ColumnName)]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnName)
	}

	cell := func(row []string, column string) string {
		i, ok := header[strings.ToLower(column)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var staff []model.StaffMember
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		name := cell(row, ColumnName)
		if name == "" {
			continue
		}

		member := model.StaffMember{
			ID:        cell(row, ColumnID),
			Name:      name,
			Group:     cell(row, ColumnGroup),
			Specialty: cell(row, ColumnSpecialty),
			RoomID:    cell(row, ColumnRoom),
			Active:    true,
		}
		if member.ID == "" {
			member.ID = uuid.New().String()
		}
		if tier := cell(row, ColumnTier); tier != "" {
			member.Tier, err = strconv.Atoi(tier)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid tier %q: %w", rowIdx+1, tier, err)
			}
		}

		staff = append(staff, member)
	}

	return staff, nil
}
