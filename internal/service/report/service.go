package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/storepulse/storeops-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

// ReportService renders aggregated attendance data into downloadable files.
type ReportService interface {
	// ExportAttendance builds an xlsx workbook of period statistics
	ExportAttendance(ctx context.Context, req attendance.PeriodStatsRequest) (*bytes.Buffer, string, error)
}

type reportServiceImpl struct {
	aggregator attendance.Aggregator
}

func NewReportService(aggregator attendance.Aggregator) ReportService {
	return &reportServiceImpl{aggregator: aggregator}
}

var exportHeaders = []string{
	"Store", "Employee", "Name", "Department",
	"Days Present", "Late Count", "Late Minutes", "Overtime Minutes", "Worked Minutes",
}

// ExportAttendance implements ReportService.
func (s *reportServiceImpl) ExportAttendance(ctx context.Context, req attendance.PeriodStatsRequest) (*bytes.Buffer, string, error) {
	rows, err := s.aggregator.PeriodStats(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.StoreID, row.EmployeeID, row.EmployeeName, row.Department,
			row.DaysPresent, row.LateCount, row.LateMinutes, row.OvertimeMinutes, row.WorkedMinutes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", req.Start, req.End)
	return buf, filename, nil
}
