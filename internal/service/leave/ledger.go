package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storepulse/storeops-backend-go/internal/domain/employee"
	"github.com/storepulse/storeops-backend-go/internal/domain/leave"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
)

// personalEntitlementDays is the fixed yearly quota for the personal (Lakij)
// category, independent of tenure and salary type.
const personalEntitlementDays = 3.0

type LedgerImpl struct {
	requestRepo  leave.RequestRepository
	employeeRepo employee.EmployeeRepository
	calendar     clock.Calendar
	clk          clock.Clock
}

func NewLedger(
	requestRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	calendar clock.Calendar,
	clk clock.Clock,
) *LedgerImpl {
	return &LedgerImpl{
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		calendar:     calendar,
		clk:          clk,
	}
}

// AnnualEntitlement computes the tenure-derived annual leave quota in days.
// Hourly employees accrue nothing; a positive direct override wins.
func AnnualEntitlement(emp employee.Employee, now time.Time) float64 {
	if emp.SalaryType == employee.SalaryHourly {
		return 0
	}
	if emp.AnnualLeaveOverride.GreaterThan(decimal.Zero) {
		f, _ := emp.AnnualLeaveOverride.Float64()
		return f
	}

	// A 365-day year keeps the anniversary boundaries exact: day 365 is one
	// full year, day 730 is two.
	fullYears := int(math.Floor(now.Sub(emp.JoinDate).Hours() / 24 / 365))
	if fullYears < 1 {
		return 0
	}
	// 6 days at the one-year mark, one more per additional full year.
	return float64(6 + (fullYears - 1))
}

type consumption struct {
	periodDays float64
	yearDays   float64
}

// Stats implements leave.Ledger.
func (l *LedgerImpl) Stats(ctx context.Context, req leave.StatsRequest) (leave.StatsResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.StatsResponse{}, err
	}

	start, err := l.calendar.ParseDate(req.Start)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to parse start: %w", err)
	}
	end, err := l.calendar.ParseDate(req.End)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to parse end: %w", err)
	}

	emp, err := l.employeeRepo.GetByID(ctx, req.StoreID, req.EmployeeID)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	requests, err := l.requestRepo.ListApprovedByEmployee(ctx, req.StoreID, req.EmployeeID)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to list approved leave: %w", err)
	}

	now := l.clk.Now()
	today := l.calendar.DateOf(now)
	yearStart := clock.Date{Year: today.Year, Month: time.January, Day: 1}

	totals := make(map[leave.Type]*consumption)
	for _, t := range []leave.Type{leave.TypeAnnual, leave.TypePersonal, leave.TypeSick, leave.TypeUnpaid} {
		totals[t] = &consumption{}
	}
	for _, r := range requests {
		category := r.Type
		if category == leave.TypeOther {
			category = leave.TypeAnnual
		}
		c, ok := totals[category]
		if !ok {
			continue
		}
		if !r.Date.Before(start) && !r.Date.After(end) {
			c.periodDays += r.Days()
		}
		// Entitlement resets each year; remaining counts the current
		// leave year only.
		if !r.Date.Before(yearStart) && !r.Date.After(today) {
			c.yearDays += r.Days()
		}
	}

	annualEntitlement := AnnualEntitlement(emp, now)

	resp := leave.StatsResponse{
		StoreID:      req.StoreID,
		EmployeeID:   req.EmployeeID,
		EmployeeName: emp.Name,
		Annual:       cappedStats(annualEntitlement, totals[leave.TypeAnnual]),
		Personal:     cappedStats(personalEntitlementDays, totals[leave.TypePersonal]),
		Sick:         uncappedStats(totals[leave.TypeSick]),
		Unpaid:       uncappedStats(totals[leave.TypeUnpaid]),
	}

	return resp, nil
}

func cappedStats(entitlement float64, c *consumption) leave.CategoryStats {
	remaining := round1(math.Max(0, entitlement-c.yearDays))
	return leave.CategoryStats{
		Entitlement: round1(entitlement),
		UsedPeriod:  round1(c.periodDays),
		UsedTotal:   round1(c.yearDays),
		Remaining:   &remaining,
	}
}

func uncappedStats(c *consumption) leave.CategoryStats {
	return leave.CategoryStats{
		UsedPeriod: round1(c.periodDays),
		UsedTotal:  round1(c.yearDays),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
