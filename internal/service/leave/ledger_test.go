package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storepulse/storeops-backend-go/internal/domain/employee"
	"github.com/storepulse/storeops-backend-go/internal/domain/leave"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	requests []leave.Request
}

func (f *fakeRequestRepo) ListApprovedByEmployee(ctx context.Context, storeID, employeeID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.StoreID == storeID && r.EmployeeID == employeeID && r.Status == leave.StatusApproved {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListApprovedRange(ctx context.Context, storeID string, start, end clock.Date) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.StoreID != storeID || r.Status != leave.StatusApproved {
			continue
		}
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		out = append(out, r)
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

func monthlyEmployee(joined time.Time) employee.Employee {
	return employee.Employee{
		ID:         "E-001",
		StoreID:    "BR-01",
		Name:       "Somsak",
		SalaryType: employee.SalaryMonthly,
		JoinDate:   joined,
	}
}

func TestAnnualEntitlement_Tenure(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		tenureDays int
		want       float64
	}{
		{"under a year", 200, 0},
		{"just short of a year", 364, 0},
		{"first anniversary", 365, 6},
		{"one full year", 366, 6},
		{"just short of two years", 729, 6},
		{"second anniversary", 730, 7},
		{"two full years", 731, 7},
		{"five full years", 1827, 10},
	}
	for _, c := range cases {
		emp := monthlyEmployee(now.AddDate(0, 0, -c.tenureDays))
		got := AnnualEntitlement(emp, now)
		if got != c.want {
			t.Errorf("%s (%d days): AnnualEntitlement = %v, want %v", c.name, c.tenureDays, got, c.want)
		}
	}
}

func TestAnnualEntitlement_Hourly(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	emp := monthlyEmployee(now.AddDate(-5, 0, 0))
	emp.SalaryType = employee.SalaryHourly

	assert.Zero(t, AnnualEntitlement(emp, now))
}

func TestAnnualEntitlement_Override(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// A positive override beats tenure, even for a new hire.
	emp := monthlyEmployee(now.AddDate(0, 0, -30))
	emp.AnnualLeaveOverride = decimal.NewFromInt(12)
	assert.Equal(t, 12.0, AnnualEntitlement(emp, now))

	// Zero override falls through to tenure.
	emp.AnnualLeaveOverride = decimal.Zero
	assert.Zero(t, AnnualEntitlement(emp, now))
}

func approvedLeave(id string, cal clock.Calendar, dateStr string, leaveType leave.Type, halfDay bool) leave.Request {
	date, _ := cal.ParseDate(dateStr)
	return leave.Request{
		ID:         id,
		StoreID:    "BR-01",
		EmployeeID: "E-001",
		Date:       date,
		Type:       leaveType,
		HalfDay:    halfDay,
		Status:     leave.StatusApproved,
	}
}

func statsRequest() leave.StatsRequest {
	return leave.StatsRequest{
		StoreID:    "BR-01",
		EmployeeID: "E-001",
		Start:      "2025-03-01",
		End:        "2025-03-31",
	}
}

func TestLedger_Stats(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := time.Date(2025, 6, 15, 5, 0, 0, 0, time.UTC)

	// Joined just over a year ago: entitlement 6.
	emp := monthlyEmployee(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	requests := &fakeRequestRepo{requests: []leave.Request{
		// Four annual days inside the requested period.
		approvedLeave("l1", cal, "2025-03-03", leave.TypeAnnual, false),
		approvedLeave("l2", cal, "2025-03-04", leave.TypeAnnual, false),
		approvedLeave("l3", cal, "2025-03-10", leave.TypeAnnual, false),
		approvedLeave("l4", cal, "2025-03-11", leave.TypeAnnual, false),
		// Two annual days in the previous leave year: outside both the
		// period totals and the current-year remaining.
		approvedLeave("l5", cal, "2024-12-23", leave.TypeAnnual, false),
		approvedLeave("l6", cal, "2024-12-24", leave.TypeAnnual, false),
		// One personal half-day in the period.
		approvedLeave("l7", cal, "2025-03-20", leave.TypePersonal, true),
		// Sick leave in the current year but outside the period.
		approvedLeave("l8", cal, "2025-05-02", leave.TypeSick, false),
	}}

	ledger := NewLedger(requests, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, cal, clock.Fixed(now))
	resp, err := ledger.Stats(context.Background(), statsRequest())

	require.NoError(t, err)
	assert.Equal(t, "Somsak", resp.EmployeeName)

	assert.Equal(t, 6.0, resp.Annual.Entitlement)
	assert.Equal(t, 4.0, resp.Annual.UsedPeriod)
	assert.Equal(t, 4.0, resp.Annual.UsedTotal)
	require.NotNil(t, resp.Annual.Remaining)
	assert.Equal(t, 2.0, *resp.Annual.Remaining)

	assert.Equal(t, 3.0, resp.Personal.Entitlement)
	assert.Equal(t, 0.5, resp.Personal.UsedPeriod)
	require.NotNil(t, resp.Personal.Remaining)
	assert.Equal(t, 2.5, *resp.Personal.Remaining)

	assert.Equal(t, 0.0, resp.Sick.UsedPeriod)
	assert.Equal(t, 1.0, resp.Sick.UsedTotal)
	assert.Nil(t, resp.Sick.Remaining)
	assert.Nil(t, resp.Unpaid.Remaining)
}

func TestLedger_Stats_OtherFoldsIntoAnnual(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := time.Date(2025, 6, 15, 5, 0, 0, 0, time.UTC)
	emp := monthlyEmployee(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	requests := &fakeRequestRepo{requests: []leave.Request{
		approvedLeave("l1", cal, "2025-03-05", leave.TypeOther, false),
	}}

	ledger := NewLedger(requests, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, cal, clock.Fixed(now))
	resp, err := ledger.Stats(context.Background(), statsRequest())

	require.NoError(t, err)
	assert.Equal(t, 1.0, resp.Annual.UsedPeriod)
	assert.Equal(t, 1.0, resp.Annual.UsedTotal)
}

func TestLedger_Stats_RemainingClampsAtZero(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := time.Date(2025, 6, 15, 5, 0, 0, 0, time.UTC)

	// Hourly: zero entitlement, but days were still approved.
	emp := monthlyEmployee(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC))
	emp.SalaryType = employee.SalaryHourly

	requests := &fakeRequestRepo{requests: []leave.Request{
		approvedLeave("l1", cal, "2025-03-05", leave.TypeAnnual, false),
		approvedLeave("l2", cal, "2025-03-06", leave.TypeAnnual, false),
	}}

	ledger := NewLedger(requests, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, cal, clock.Fixed(now))
	resp, err := ledger.Stats(context.Background(), statsRequest())

	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Annual.Entitlement)
	assert.Equal(t, 2.0, resp.Annual.UsedTotal)
	require.NotNil(t, resp.Annual.Remaining)
	assert.Equal(t, 0.0, *resp.Annual.Remaining)
}

func TestLedger_Stats_PendingIgnored(t *testing.T) {
	cal := clock.NewCalendar(420)
	now := time.Date(2025, 6, 15, 5, 0, 0, 0, time.UTC)
	emp := monthlyEmployee(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	pending := approvedLeave("l1", cal, "2025-03-05", leave.TypeAnnual, false)
	pending.Status = leave.StatusPending
	requests := &fakeRequestRepo{requests: []leave.Request{pending}}

	ledger := NewLedger(requests, &fakeEmployeeRepo{employees: []employee.Employee{emp}}, cal, clock.Fixed(now))
	resp, err := ledger.Stats(context.Background(), statsRequest())

	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Annual.UsedPeriod)
	require.NotNil(t, resp.Annual.Remaining)
	assert.Equal(t, 6.0, *resp.Annual.Remaining)
}

func TestLedger_Stats_Validation(t *testing.T) {
	cal := clock.NewCalendar(420)
	ledger := NewLedger(&fakeRequestRepo{}, &fakeEmployeeRepo{}, cal, clock.Fixed(time.Now()))

	_, err := ledger.Stats(context.Background(), leave.StatsRequest{})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 4)
}

func TestLedger_Stats_UnknownEmployee(t *testing.T) {
	cal := clock.NewCalendar(420)
	ledger := NewLedger(&fakeRequestRepo{}, &fakeEmployeeRepo{}, cal, clock.Fixed(time.Now()))

	_, err := ledger.Stats(context.Background(), statsRequest())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
