package schedule

import (
	"context"
	"fmt"

	"github.com/storepulse/storeops-backend-go/internal/domain/employee"
	"github.com/storepulse/storeops-backend-go/internal/domain/leave"
	"github.com/storepulse/storeops-backend-go/internal/domain/schedule"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
)

type resolverImpl struct {
	scheduleRepo schedule.ScheduleRepository
	leaveRepo    leave.RequestRepository
	employeeRepo employee.EmployeeRepository
	calendar     clock.Calendar
	clk          clock.Clock
}

func NewResolver(
	scheduleRepo schedule.ScheduleRepository,
	leaveRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	calendar clock.Calendar,
	clk clock.Clock,
) schedule.Resolver {
	return &resolverImpl{
		scheduleRepo: scheduleRepo,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		calendar:     calendar,
		clk:          clk,
	}
}

// Resolve implements schedule.Resolver.
func (r *resolverImpl) Resolve(ctx context.Context, storeID, employeeID string, date clock.Date, forClockIn bool) (schedule.Shift, error) {
	entry, err := r.scheduleRepo.GetByKey(ctx, storeID, employeeID, date)
	if err != nil {
		return schedule.Shift{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	// An overnight shift is scheduled under the next calendar date with the
	// prev-day flag set; a clock-in on the working date must still find it.
	if entry == nil && forClockIn {
		next, err := r.scheduleRepo.GetByKey(ctx, storeID, employeeID, date.Next())
		if err != nil {
			return schedule.Shift{}, fmt.Errorf("failed to resolve overnight schedule: %w", err)
		}
		if next != nil && next.PlanInPrevDay {
			entry = next
		}
	}

	if entry == nil {
		return schedule.Shift{}, nil
	}

	return schedule.Shift{
		PlanIn:     entry.PlanIn,
		PlanOut:    entry.PlanOut,
		BreakStart: entry.BreakStart,
		BreakEnd:   entry.BreakEnd,
	}, nil
}

// WeeklySchedule implements schedule.Resolver. Days with no schedule entry
// but an approved leave request are emitted as leave placeholder rows.
func (r *resolverImpl) WeeklySchedule(ctx context.Context, req schedule.WeeklyScheduleRequest) ([]schedule.WeeklyScheduleRow, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store is required"})
	}
	if _, ok := validator.IsValidDate(req.Monday); !ok {
		errs = append(errs, validator.ValidationError{Field: "monday", Message: "monday must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	monday, err := r.calendar.ParseDate(req.Monday)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week start: %w", err)
	}
	sunday := monday.AddDays(6)

	entries, err := r.scheduleRepo.ListWeek(ctx, req.StoreID, monday)
	if err != nil {
		return nil, fmt.Errorf("failed to list week schedule: %w", err)
	}

	leaves, err := r.leaveRepo.ListApprovedRange(ctx, req.StoreID, monday, sunday)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}

	names := r.displayNames(ctx, req.StoreID)

	scheduled := make(map[string]bool, len(entries))
	rows := make([]schedule.WeeklyScheduleRow, 0, len(entries))
	for _, entry := range entries {
		scheduled[entry.Date.String()+"|"+entry.EmployeeID] = true
		rows = append(rows, schedule.WeeklyScheduleRow{
			Date:         entry.Date.String(),
			StoreID:      entry.StoreID,
			EmployeeID:   entry.EmployeeID,
			EmployeeName: names[entry.EmployeeID],
			PlanIn:       entry.PlanIn,
			PlanOut:      entry.PlanOut,
			BreakStart:   entry.BreakStart,
			BreakEnd:     entry.BreakEnd,
		})
	}

	for _, lv := range leaves {
		if scheduled[lv.Date.String()+"|"+lv.EmployeeID] {
			continue
		}
		rows = append(rows, schedule.WeeklyScheduleRow{
			Date:         lv.Date.String(),
			StoreID:      lv.StoreID,
			EmployeeID:   lv.EmployeeID,
			EmployeeName: names[lv.EmployeeID],
			OnLeave:      true,
			LeaveType:    string(lv.Type),
		})
	}

	return rows, nil
}

func (r *resolverImpl) displayNames(ctx context.Context, storeID string) map[string]string {
	names := make(map[string]string)
	employees, err := r.employeeRepo.ListActive(ctx, storeID, r.clk.Now())
	if err != nil {
		// Display names are cosmetic; the roster view survives without them.
		return names
	}
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}
	return names
}
