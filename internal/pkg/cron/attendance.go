package cron

import (
	"context"
	"log/slog"

	"github.com/storepulse/storeops-backend-go/internal/domain/attendance"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
)

// AttendanceJobs holds the background jobs derived from the attendance
// aggregator.
type AttendanceJobs struct {
	aggregator attendance.Aggregator
	calendar   clock.Calendar
	clk        clock.Clock
}

func NewAttendanceJobs(aggregator attendance.Aggregator, calendar clock.Calendar, clk clock.Clock) *AttendanceJobs {
	return &AttendanceJobs{
		aggregator: aggregator,
		calendar:   calendar,
		clk:        clk,
	}
}

// ScanMissingRecords reports yesterday's schedule entries that have no clock
// event, across all stores, so admins see gaps before payroll closes.
func (j *AttendanceJobs) ScanMissingRecords(ctx context.Context) error {
	yesterday := j.calendar.DateOf(j.clk.Now()).Prev()

	gaps, err := j.aggregator.MissingRecords(ctx, attendance.MissingRecordsRequest{
		Start: yesterday.String(),
		End:   yesterday.String(),
	})
	if err != nil {
		return err
	}

	perStore := make(map[string]int)
	for _, gap := range gaps {
		perStore[gap.StoreID]++
	}
	for storeID, count := range perStore {
		slog.Warn("attendance gaps detected", "date", yesterday.String(), "store_id", storeID, "count", count)
	}
	if len(gaps) == 0 {
		slog.Info("no attendance gaps", "date", yesterday.String())
	}

	return nil
}
