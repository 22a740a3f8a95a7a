package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/planner"
)

var slotColumns = []string{"Start", "End", "Duration (h)", "Category", "Busy members"}

// WriteSlots renders one sheet per date with that date's categorized
// slots and streams the workbook to w.
func WriteSlots(w io.Writer, dates []planner.DateSlots) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, day := range dates {
		sheet := day.Date
		// Excel caps sheet names at 31 characters.
		if len(sheet) > 31 {
			sheet = sheet[:31]
		}

		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		for col, name := range slotColumns {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, name); err != nil {
				return err
			}
		}
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(slotColumns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, headerStyle)

		for row, slot := range day.Slots {
			values := []any{
				slot.StartTime,
				slot.EndTime,
				slot.DurationHours,
				string(slot.Category),
				busyMemberNames(slot.BusyMembers),
			}
			for col, val := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, val); err != nil {
					return err
				}
			}
		}
	}

	if len(dates) == 0 {
		f.SetSheetName("Sheet1", "No slots")
	}

	return f.Write(w)
}

func busyMemberNames(members []planner.BusyMember) string {
	if len(members) == 0 {
		return ""
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.DisplayName
	}
	return strings.Join(names, ", ")
}
