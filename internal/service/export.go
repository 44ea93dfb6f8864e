package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hr-portal/internal/i18n"
	"hr-portal/internal/model"
)

const exportSheet = "Attendance"

var exportColumns = []string{
	"export.col.date", "export.col.user_id", "export.col.user_name",
	"export.col.check_in", "export.col.check_out", "export.col.status", "export.col.work_hours",
}

func statusLabel(ctx context.Context, status model.AttendanceStatus) string {
	return i18n.T(ctx, "attendance.status."+string(status))
}

// ExportAttendance writes the records in [from, to] as an xlsx workbook, one
// row per record. Headers and statuses use the locale carried by ctx.
func (s *AttendanceService) ExportAttendance(ctx context.Context, from, to string, w io.Writer) (int, error) {
	records, err := s.Range(ctx, from, to, "")
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return 0, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return 0, fmt.Errorf("delete default sheet: %w", err)
	}

	for i, id := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, i18n.T(ctx, id)); err != nil {
			return 0, fmt.Errorf("set header: %w", err)
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err == nil {
		f.SetRowStyle(exportSheet, 1, 1, headerStyle)
	}

	for i, r := range records {
		var hours any
		if r.WorkHours != nil {
			hours = *r.WorkHours
		}
		values := []any{r.Date, r.UserID, r.UserName, r.CheckIn, r.CheckOut, statusLabel(ctx, r.Status), hours}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return 0, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	f.SetColWidth(exportSheet, "A", "G", 15)

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(records), nil
}
