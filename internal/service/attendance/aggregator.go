package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/storepulse/storeops-backend-go/internal/config"
	"github.com/storepulse/storeops-backend-go/internal/domain/attendance"
	"github.com/storepulse/storeops-backend-go/internal/domain/employee"
	"github.com/storepulse/storeops-backend-go/internal/domain/schedule"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
)

type AggregatorImpl struct {
	eventRepo    attendance.EventRepository
	scheduleRepo schedule.ScheduleRepository
	employeeRepo employee.EmployeeRepository
	calendar     clock.Calendar
	clk          clock.Clock
	cfg          config.AttendanceConfig
}

func NewAggregator(
	eventRepo attendance.EventRepository,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	calendar clock.Calendar,
	clk clock.Clock,
	cfg config.AttendanceConfig,
) *AggregatorImpl {
	return &AggregatorImpl{
		eventRepo:    eventRepo,
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		calendar:     calendar,
		clk:          clk,
		cfg:          cfg,
	}
}

// DaySummary implements attendance.Aggregator: earliest clock-in and latest
// clock-out per employee, folded from the raw event stream. A non-empty
// employeeID narrows the snapshot to that employee.
func (a *AggregatorImpl) DaySummary(ctx context.Context, storeID, employeeID, dateStr string) ([]attendance.DaySummaryRow, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(storeID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store is required"})
	}
	if _, ok := validator.IsValidDate(dateStr); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	date, err := a.calendar.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	var events []attendance.Event
	if employeeID != "" {
		events, err = a.eventRepo.ListByEmployeeAndDate(ctx, storeID, employeeID, date)
	} else {
		events, err = a.eventRepo.ListRange(ctx, storeID, date, date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list day events: %w", err)
	}

	type fold struct {
		row      attendance.DaySummaryRow
		earliest time.Time
		latest   time.Time
	}

	byEmployee := make(map[string]*fold)
	for _, ev := range events {
		f, ok := byEmployee[ev.EmployeeID]
		if !ok {
			f = &fold{row: attendance.DaySummaryRow{
				StoreID:      ev.StoreID,
				EmployeeID:   ev.EmployeeID,
				EmployeeName: ev.EmployeeName,
				Date:         date.String(),
			}}
			byEmployee[ev.EmployeeID] = f
		}
		switch ev.Type {
		case attendance.EventClockIn:
			if f.earliest.IsZero() || ev.OccurredAt.Before(f.earliest) {
				f.earliest = ev.OccurredAt
				f.row.ClockIn = a.localClock(ev.OccurredAt)
				f.row.LateMinutes = ev.LateMinutes
				f.row.Status = ev.Status
			}
		case attendance.EventClockOut:
			if ev.OccurredAt.After(f.latest) {
				f.latest = ev.OccurredAt
				f.row.ClockOut = a.localClock(ev.OccurredAt)
			}
		}
	}

	rows := make([]attendance.DaySummaryRow, 0, len(byEmployee))
	for _, f := range byEmployee {
		f.row.OnlyIn = f.row.ClockIn != "" && f.row.ClockOut == ""
		rows = append(rows, f.row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeID < rows[j].EmployeeID })

	return rows, nil
}

// MissingRecords implements attendance.Aggregator: schedule keys with no
// clock-in or clock-out event in the window.
func (a *AggregatorImpl) MissingRecords(ctx context.Context, req attendance.MissingRecordsRequest) ([]attendance.GapRow, error) {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(req.Start); !ok {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "start must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(req.End); !ok {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "end must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// Managers see their own store only; an out-of-scope request is
	// rejected rather than silently narrowed.
	if req.ActorRole == "manager" {
		if req.StoreID == "" {
			req.StoreID = req.ActorStoreID
		} else if req.StoreID != req.ActorStoreID {
			return nil, attendance.ErrStoreScope
		}
	}

	start, err := a.calendar.ParseDate(req.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start: %w", err)
	}
	end, err := a.calendar.ParseDate(req.End)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end: %w", err)
	}

	entries, err := a.scheduleRepo.ListRange(ctx, req.StoreID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}

	events, err := a.eventRepo.ListRange(ctx, req.StoreID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	recorded := make(map[string]bool)
	for _, ev := range events {
		if ev.Type == attendance.EventClockIn || ev.Type == attendance.EventClockOut {
			recorded[gapKey(ev.Date, ev.StoreID, ev.EmployeeID)] = true
		}
	}

	var gaps []attendance.GapRow
	for _, entry := range entries {
		if recorded[gapKey(entry.Date, entry.StoreID, entry.EmployeeID)] {
			continue
		}
		gaps = append(gaps, attendance.GapRow{
			Date:       entry.Date.String(),
			StoreID:    entry.StoreID,
			EmployeeID: entry.EmployeeID,
			PlanIn:     entry.PlanIn,
			PlanOut:    entry.PlanOut,
		})
	}

	return gaps, nil
}

// CreateFromSchedule implements attendance.Aggregator. This is the explicit
// compensating command behind the gap report: synthetic clock events stamped
// with the planned times.
func (a *AggregatorImpl) CreateFromSchedule(ctx context.Context, req attendance.CreateFromScheduleRequest) ([]attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ActorRole == "manager" && req.ActorStoreID != "" && req.ActorStoreID != req.StoreID {
		return nil, attendance.ErrStoreScope
	}

	date, err := a.calendar.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	entry, err := a.scheduleRepo.GetByKey(ctx, req.StoreID, req.EmployeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	if entry == nil {
		return nil, schedule.ErrScheduleNotFound
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.StoreID, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}

	planIn := entry.PlanIn
	if planIn == "" {
		planIn = a.cfg.DefaultClockIn
	}
	planOut := entry.PlanOut
	if planOut == "" {
		planOut = a.cfg.DefaultClockOut
	}

	inAt, err := date.At(planIn)
	if err != nil {
		return nil, err
	}
	outAt, err := date.At(planOut)
	if err != nil {
		return nil, err
	}

	var created []attendance.EventResponse
	for _, synth := range []struct {
		eventType attendance.EventType
		at        time.Time
	}{
		{attendance.EventClockIn, inAt},
		{attendance.EventClockOut, outAt},
	} {
		event := attendance.Event{
			ID:            uuid.NewString(),
			StoreID:       req.StoreID,
			EmployeeID:    emp.ID,
			EmployeeName:  emp.Name,
			Type:          synth.eventType,
			OccurredAt:    synth.at,
			Date:          date,
			Status:        attendance.StatusNormal,
			ApprovalState: attendance.ApprovalApproved,
		}
		// Skipped, not failed, when the employee did clock that type.
		inserted, err := a.eventRepo.InsertOnce(ctx, event)
		if err != nil {
			return nil, fmt.Errorf("failed to append synthetic event: %w", err)
		}
		if inserted {
			created = append(created, mapEventToResponse(event))
		}
	}

	return created, nil
}

// PeriodStats implements attendance.Aggregator: lateness/overtime totals per
// employee over a window, grouped by roster department.
func (a *AggregatorImpl) PeriodStats(ctx context.Context, req attendance.PeriodStatsRequest) ([]attendance.PeriodStatsRow, error) {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(req.Start); !ok {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "start must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(req.End); !ok {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "end must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	start, err := a.calendar.ParseDate(req.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start: %w", err)
	}
	end, err := a.calendar.ParseDate(req.End)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end: %w", err)
	}

	events, err := a.eventRepo.ListRange(ctx, req.StoreID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	departments := a.departmentMap(ctx, req.StoreID)

	type dayPair struct {
		in  *time.Time
		out *time.Time
	}

	stats := make(map[string]*attendance.PeriodStatsRow)
	days := make(map[string]map[string]*dayPair)
	for _, ev := range events {
		if req.OfficeOnly && !validator.IsInSlice(ev.StoreID, a.cfg.OfficeStores) {
			continue
		}
		key := ev.StoreID + "|" + ev.EmployeeID
		row, ok := stats[key]
		if !ok {
			row = &attendance.PeriodStatsRow{
				StoreID:      ev.StoreID,
				EmployeeID:   ev.EmployeeID,
				EmployeeName: ev.EmployeeName,
				Department:   departments[ev.EmployeeID],
			}
			if row.Department == "" {
				row.Department = "Staff"
			}
			stats[key] = row
			days[key] = make(map[string]*dayPair)
		}

		switch ev.Type {
		case attendance.EventClockIn:
			row.DaysPresent++
			row.LateMinutes += ev.LateMinutes
			if ev.Status == attendance.StatusLate {
				row.LateCount++
			}
		case attendance.EventClockOut:
			row.OvertimeMinutes += ev.OvertimeMinutes
		}

		pair, ok := days[key][ev.Date.String()]
		if !ok {
			pair = &dayPair{}
			days[key][ev.Date.String()] = pair
		}
		at := ev.OccurredAt
		switch ev.Type {
		case attendance.EventClockIn:
			if pair.in == nil || at.Before(*pair.in) {
				pair.in = &at
			}
		case attendance.EventClockOut:
			if pair.out == nil || at.After(*pair.out) {
				pair.out = &at
			}
		}
	}

	// Worked minutes accumulate per day from the in/out pair, the same
	// duration fold used for store-visit reporting.
	for key, row := range stats {
		for _, pair := range days[key] {
			if pair.in != nil && pair.out != nil && pair.out.After(*pair.in) {
				row.WorkedMinutes += wholeMinutes(pair.out.Sub(*pair.in))
			}
		}
	}

	rows := make([]attendance.PeriodStatsRow, 0, len(stats))
	for _, row := range stats {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StoreID != rows[j].StoreID {
			return rows[i].StoreID < rows[j].StoreID
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	return rows, nil
}

func (a *AggregatorImpl) departmentMap(ctx context.Context, storeID string) map[string]string {
	departments := make(map[string]string)
	employees, err := a.employeeRepo.ListActive(ctx, storeID, a.clk.Now())
	if err != nil {
		// Grouping degrades to the default department.
		return departments
	}
	for _, emp := range employees {
		departments[emp.ID] = emp.DepartmentOrDefault()
	}
	return departments
}

func (a *AggregatorImpl) localClock(t time.Time) string {
	return t.In(a.calendar.Location()).Format("15:04")
}

func gapKey(date clock.Date, storeID, employeeID string) string {
	return date.String() + "|" + storeID + "|" + employeeID
}
