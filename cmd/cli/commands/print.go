package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// printRoster writes one line per day with the staff of every slot type
func printRoster(w io.Writer, res *model.Result, slots []model.SlotType, color bool) {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	for _, day := range res.Schedule {
		label := fmt.Sprintf("%2d %s", day.Day, day.Weekday.String()[:3])
		switch {
		case day.IsHoliday:
			label = paint(colorYellow, label+" H")
		case day.IsWeekend:
			label = paint(colorYellow, label+"  ")
		default:
			label += "  "
		}

		var parts []string
		for _, slot := range slots {
			var names []string
			for _, a := range day.Assignments {
				if a.SlotTypeID != slot.ID {
					continue
				}
				if a.IsEmpty() {
					names = append(names, paint(colorRed, model.EmptyStaffID))
					continue
				}
				names = append(names, assignmentName(a))
			}
			if len(names) == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", slot.Name, strings.Join(names, ", ")))
		}

		fmt.Fprintf(w, "%s  %s\n", label, strings.Join(parts, " | "))
	}
}

func assignmentName(a model.Assignment) string {
	if a.Staff != nil && a.Staff.Name != "" {
		return a.Staff.Name
	}
	return a.StaffID
}

// printStats writes the per-staff shift counts against their quotas
func printStats(w io.Writer, res *model.Result, staff []model.StaffMember, profile model.Profile) {
	nameWidth := 20
	for _, s := range staff {
		if len(s.Name) > nameWidth {
			nameWidth = len(s.Name)
		}
	}

	if profile == model.ProfileNursing {
		fmt.Fprintf(w, "%-*s %7s %7s %4s %4s\n", nameWidth, "Staff", "Total", "Weekend", "Sat", "Sun")
	} else {
		fmt.Fprintf(w, "%-*s %7s %9s %7s %4s %4s %4s\n", nameWidth, "Staff", "Service", "Emergency", "Weekend", "Sat", "Sun", "Hol")
	}
	fmt.Fprintln(w, strings.Repeat("-", nameWidth+40))

	for _, member := range staff {
		if !member.Active {
			continue
		}
		s := res.StatsFor(member.ID)
		if profile == model.ProfileNursing {
			fmt.Fprintf(w, "%-*s %7s %7d %4d %4d\n", nameWidth, member.Name,
				fmt.Sprintf("%d/%d", s.TotalShifts, member.Quota),
				s.WeekendShifts, s.SaturdayShifts, s.SundayShifts)
			continue
		}
		fmt.Fprintf(w, "%-*s %7s %9s %7d %4d %4d %4d\n", nameWidth, member.Name,
			fmt.Sprintf("%d/%d", s.ServiceShifts, member.Quota),
			fmt.Sprintf("%d/%d", s.EmergencyShifts, member.EmergencyQuota),
			s.WeekendShifts, s.SaturdayShifts, s.SundayShifts, s.HolidayShifts)
	}

	fmt.Fprintf(w, "\nUnfilled slots: %d\nQuota deviation: %d\n", res.UnfilledSlots, res.QuotaDeviation)
	if res.Fitness != nil {
		fmt.Fprintf(w, "Fitness: %.0f\n", *res.Fitness)
	}
}

// printLines writes a titled list, dimmed when color is set
func printLines(w io.Writer, title string, lines []string, color bool) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, l := range lines {
		if color {
			fmt.Fprintf(w, "  %s%s%s\n", colorDim, l, colorReset)
		} else {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
}
