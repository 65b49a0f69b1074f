package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storepulse/storeops-backend-go/internal/config"
	"github.com/storepulse/storeops-backend-go/internal/domain/attendance"
	"github.com/storepulse/storeops-backend-go/internal/domain/employee"
	"github.com/storepulse/storeops-backend-go/internal/domain/location"
	"github.com/storepulse/storeops-backend-go/internal/domain/schedule"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory fakes shared by the recorder and aggregator tests ---

type fakeEventRepo struct {
	events    []attendance.Event
	insertErr error
}

func (f *fakeEventRepo) InsertOnce(ctx context.Context, event attendance.Event) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	for _, ev := range f.events {
		if ev.StoreID == event.StoreID && ev.EmployeeID == event.EmployeeID &&
			ev.Type == event.Type && ev.Date.Equal(event.Date) {
			return false, nil
		}
	}
	f.events = append(f.events, event)
	return true, nil
}

func (f *fakeEventRepo) ListByEmployeeAndDate(ctx context.Context, storeID, employeeID string, date clock.Date) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.StoreID == storeID && ev.EmployeeID == employeeID && ev.Date.Equal(date) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) LatestBreakStart(ctx context.Context, employeeID string, date clock.Date) (*attendance.Event, error) {
	var latest *attendance.Event
	for i := range f.events {
		ev := f.events[i]
		if ev.EmployeeID != employeeID || !ev.Date.Equal(date) || ev.Type != attendance.EventBreakStart {
			continue
		}
		if latest == nil || ev.OccurredAt.After(latest.OccurredAt) {
			latest = &f.events[i]
		}
	}
	return latest, nil
}

func (f *fakeEventRepo) ListRange(ctx context.Context, storeID string, start, end clock.Date) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if storeID != "" && ev.StoreID != storeID {
			continue
		}
		if ev.Date.Before(start) || ev.Date.After(end) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, storeID, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.StoreID == storeID && emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, storeID string, at time.Time) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if storeID != "" && emp.StoreID != storeID {
			continue
		}
		if emp.Active(at) {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakeLocationRepo struct {
	loc location.Location
	err error
}

func (f *fakeLocationRepo) GetStoreReference(ctx context.Context, storeID string) (location.Location, error) {
	if f.err != nil {
		return location.Location{}, f.err
	}
	return f.loc, nil
}

type stubResolver struct {
	shift schedule.Shift
	err   error
}

func (s *stubResolver) Resolve(ctx context.Context, storeID, employeeID string, date clock.Date, forClockIn bool) (schedule.Shift, error) {
	return s.shift, s.err
}

func (s *stubResolver) WeeklySchedule(ctx context.Context, req schedule.WeeklyScheduleRequest) ([]schedule.WeeklyScheduleRow, error) {
	return nil, nil
}

// --- test wiring ---

var testAttendanceCfg = config.AttendanceConfig{
	TimezoneOffsetMinutes: 420,
	GeofenceRadiusMeters:  100,
	DefaultClockIn:        "09:00",
	DefaultClockOut:       "18:00",
	OfficeStores:          []string{"HQ"},
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:         "E-001",
		StoreID:    "BR-01",
		Name:       "Somsak",
		SalaryType: employee.SalaryMonthly,
		JoinDate:   time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

// businessTime builds an instant at the given local wall time on the
// UTC+7 business calendar.
func businessTime(cal clock.Calendar, y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, cal.Location())
}

func newTestRecorder(events *fakeEventRepo, shift schedule.Shift, at time.Time, cal clock.Calendar, locRepo *fakeLocationRepo) *RecorderImpl {
	if locRepo == nil {
		locRepo = &fakeLocationRepo{err: location.ErrLocationNotFound}
	}
	return NewRecorder(
		events,
		&fakeEmployeeRepo{employees: []employee.Employee{testEmployee()}},
		locRepo,
		&stubResolver{shift: shift},
		cal,
		clock.Fixed(at),
		testAttendanceCfg,
	)
}

func submitReq(eventType string) attendance.SubmitEventRequest {
	return attendance.SubmitEventRequest{
		StoreID:    "BR-01",
		EmployeeID: "E-001",
		Type:       eventType,
	}
}

// --- recorder tests ---

func TestRecorder_Submit_ClockIn_OnTime(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 8, 55)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("clock_in"))

	require.NoError(t, err)
	assert.Equal(t, "clock_in", resp.Type)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, 0, resp.LateMinutes)
	assert.Equal(t, attendance.StatusNormal, resp.Status)
	assert.Equal(t, attendance.ApprovalPending, resp.ApprovalState)
}

func TestRecorder_Submit_ClockIn_Late(t *testing.T) {
	cal := clock.NewCalendar(420)
	// 09:05 against the 09:00 default.
	now := businessTime(cal, 2025, 3, 10, 9, 5)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("clock_in"))

	require.NoError(t, err)
	assert.Equal(t, 5, resp.LateMinutes)
	assert.Equal(t, attendance.StatusLate, resp.Status)
}

func TestRecorder_Submit_ClockIn_OneMinuteSlack(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 9, 1)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("clock_in"))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.LateMinutes)
	assert.Equal(t, attendance.StatusNormal, resp.Status)
}

func TestRecorder_Submit_ClockIn_ScheduledShift(t *testing.T) {
	cal := clock.NewCalendar(420)
	// 10:20 against a scheduled 10:00 start, not the 09:00 default.
	now := businessTime(cal, 2025, 3, 10, 10, 20)
	shift := schedule.Shift{PlanIn: "10:00", PlanOut: "19:00"}
	recorder := newTestRecorder(&fakeEventRepo{}, shift, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("clock_in"))

	require.NoError(t, err)
	assert.Equal(t, 20, resp.LateMinutes)
	assert.Equal(t, attendance.StatusLate, resp.Status)
}

func TestRecorder_Submit_ClockOut_Overtime(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 18, 35)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("clock_out"))

	require.NoError(t, err)
	assert.Equal(t, 35, resp.OvertimeMinutes)
	assert.Equal(t, attendance.StatusOvertime, resp.Status)
}

func TestRecorder_Submit_ClockOut_BelowOvertimeThreshold(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 18, 29)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("clock_out"))

	require.NoError(t, err)
	assert.Equal(t, 29, resp.OvertimeMinutes)
	assert.Equal(t, attendance.StatusNormal, resp.Status)
}

func TestRecorder_Submit_ClockOut_EarlyLeave(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 17, 30)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("clock_out"))

	require.NoError(t, err)
	assert.Equal(t, 30, resp.EarlyMinutes)
	assert.Equal(t, attendance.StatusEarlyLeave, resp.Status)
}

func TestRecorder_Submit_Duplicate(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 9, 0)
	events := &fakeEventRepo{}
	recorder := newTestRecorder(events, schedule.Shift{}, now, cal, nil)

	_, err := recorder.Submit(context.Background(), submitReq("clock_in"))
	require.NoError(t, err)

	_, err = recorder.Submit(context.Background(), submitReq("clock_in"))
	assert.ErrorIs(t, err, attendance.ErrDuplicateEvent)
	assert.Len(t, events.events, 1)
}

func TestRecorder_Submit_ManagerScope(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 9, 0)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	req := submitReq("clock_in")
	req.ActorRole = "manager"
	req.ActorStoreID = "BR-02"

	_, err := recorder.Submit(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrStoreScope)
}

func TestRecorder_Submit_Validation(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 9, 0)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	_, err := recorder.Submit(context.Background(), attendance.SubmitEventRequest{Type: "teleport"})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "store_id")
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "type")
}

func TestRecorder_Submit_GeofenceCompliant(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 9, 0)
	locRepo := &fakeLocationRepo{loc: location.Location{
		StoreID:   "BR-01",
		Latitude:  13.7563,
		Longitude: 100.5018,
	}}
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, locRepo)

	req := submitReq("clock_in")
	req.Latitude = "13.7563"
	req.Longitude = "100.5018"

	resp, err := recorder.Submit(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.GeofenceCompliant)
	assert.True(t, *resp.GeofenceCompliant)
	require.NotNil(t, resp.GeofenceDistanceM)
	assert.InDelta(t, 0, *resp.GeofenceDistanceM, 0.001)
}

func TestRecorder_Submit_GeofenceOutOfRange_StillRecords(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 9, 0)
	locRepo := &fakeLocationRepo{loc: location.Location{
		StoreID:   "BR-01",
		Latitude:  13.7563,
		Longitude: 100.5018,
	}}
	events := &fakeEventRepo{}
	recorder := newTestRecorder(events, schedule.Shift{}, now, cal, locRepo)

	// ~1.1 km north of the reference.
	req := submitReq("clock_in")
	req.Latitude = "13.7663"
	req.Longitude = "100.5018"

	resp, err := recorder.Submit(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.GeofenceCompliant)
	assert.False(t, *resp.GeofenceCompliant)
	assert.Len(t, events.events, 1)
}

func TestRecorder_Submit_UnknownCoordinates(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 9, 0)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	req := submitReq("clock_in")
	req.Latitude = "Unknown"
	req.Longitude = "Unknown"

	resp, err := recorder.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, resp.GeofenceCompliant)
	assert.Nil(t, resp.GeofenceDistanceM)
}

func TestRecorder_Submit_LocationLookupFailure_StillRecords(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 9, 0)
	locRepo := &fakeLocationRepo{err: errors.New("connection reset")}
	events := &fakeEventRepo{}
	recorder := newTestRecorder(events, schedule.Shift{}, now, cal, locRepo)

	req := submitReq("clock_in")
	req.Latitude = "13.7563"
	req.Longitude = "100.5018"

	resp, err := recorder.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, resp.GeofenceCompliant)
	assert.Len(t, events.events, 1)
}

func TestRecorder_Submit_BreakOverrun(t *testing.T) {
	cal := clock.NewCalendar(420)
	breakStartAt := businessTime(cal, 2025, 3, 10, 12, 0)
	now := businessTime(cal, 2025, 3, 10, 13, 15)

	events := &fakeEventRepo{events: []attendance.Event{{
		ID:         "ev-break",
		StoreID:    "BR-01",
		EmployeeID: "E-001",
		Type:       attendance.EventBreakStart,
		OccurredAt: breakStartAt,
		Date:       cal.DateOf(breakStartAt),
	}}}
	shift := schedule.Shift{PlanIn: "09:00", PlanOut: "18:00", BreakStart: "12:00", BreakEnd: "13:00"}
	recorder := newTestRecorder(events, shift, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("break_end"))

	require.NoError(t, err)
	assert.Equal(t, 75, resp.BreakMinutes)
	assert.Equal(t, attendance.StatusBreakOverrun, resp.Status)
}

func TestRecorder_Submit_BreakWithinWindow(t *testing.T) {
	cal := clock.NewCalendar(420)
	breakStartAt := businessTime(cal, 2025, 3, 10, 12, 0)
	now := businessTime(cal, 2025, 3, 10, 12, 45)

	events := &fakeEventRepo{events: []attendance.Event{{
		ID:         "ev-break",
		StoreID:    "BR-01",
		EmployeeID: "E-001",
		Type:       attendance.EventBreakStart,
		OccurredAt: breakStartAt,
		Date:       cal.DateOf(breakStartAt),
	}}}
	shift := schedule.Shift{BreakStart: "12:00", BreakEnd: "13:00"}
	recorder := newTestRecorder(events, shift, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("break_end"))

	require.NoError(t, err)
	assert.Equal(t, 45, resp.BreakMinutes)
	assert.Equal(t, attendance.StatusBreakNormal, resp.Status)
}

func TestRecorder_Submit_BreakEndWithoutStart(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 13, 0)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	resp, err := recorder.Submit(context.Background(), submitReq("break_end"))

	require.NoError(t, err)
	assert.Equal(t, 0, resp.BreakMinutes)
	assert.Equal(t, attendance.StatusBreakNormal, resp.Status)
}

func TestRecorder_Submit_UnknownEmployee(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := businessTime(cal, 2025, 3, 10, 9, 0)
	recorder := newTestRecorder(&fakeEventRepo{}, schedule.Shift{}, now, cal, nil)

	req := submitReq("clock_in")
	req.EmployeeID = "E-999"

	_, err := recorder.Submit(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
