package schedule

import (
	"context"

	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
)

// Resolver looks up the planned shift for (store, employee, date). Read-only
// and idempotent.
type Resolver interface {
	// Resolve returns the planned shift. When forClockIn is set and no entry
	// exists for the date, the next day's entry is probed for an overnight
	// shift flagged PlanInPrevDay.
	Resolve(ctx context.Context, storeID, employeeID string, date clock.Date, forClockIn bool) (Shift, error)

	// WeeklySchedule builds the weekly roster view for a store
	WeeklySchedule(ctx context.Context, req WeeklyScheduleRequest) ([]WeeklyScheduleRow, error)
}

type WeeklyScheduleRequest struct {
	StoreID string
	Monday  string
}

// WeeklyScheduleRow is one per-day roster row. Days with no schedule entry
// but an approved leave request appear as leave placeholders.
type WeeklyScheduleRow struct {
	Date         string `json:"date"`
	StoreID      string `json:"store_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	PlanIn       string `json:"plan_in,omitempty"`
	PlanOut      string `json:"plan_out,omitempty"`
	BreakStart   string `json:"break_start,omitempty"`
	BreakEnd     string `json:"break_end,omitempty"`
	OnLeave      bool   `json:"on_leave"`
	LeaveType    string `json:"leave_type,omitempty"`
}
