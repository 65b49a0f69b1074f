package attendance

import (
	"context"
)

// Recorder validates and appends clock events with derived timing fields.
type Recorder interface {
	// Submit records one clock event. A once-per-day violation returns
	// ErrDuplicateEvent.
	Submit(ctx context.Context, req SubmitEventRequest) (EventResponse, error)
}

// Aggregator reconstructs read views by folding the raw event log.
type Aggregator interface {
	// DaySummary builds the per-employee in/out/late snapshot for one day,
	// optionally narrowed to a single employee
	DaySummary(ctx context.Context, storeID, employeeID, date string) ([]DaySummaryRow, error)

	// MissingRecords diffs scheduled days against recorded events
	MissingRecords(ctx context.Context, req MissingRecordsRequest) ([]GapRow, error)

	// CreateFromSchedule emergency-approves a missed day by writing
	// synthetic events stamped with the planned times
	CreateFromSchedule(ctx context.Context, req CreateFromScheduleRequest) ([]EventResponse, error)

	// PeriodStats classifies lateness/overtime totals per employee for a window
	PeriodStats(ctx context.Context, req PeriodStatsRequest) ([]PeriodStatsRow, error)
}
