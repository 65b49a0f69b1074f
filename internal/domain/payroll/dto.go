package payroll

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
)

// PayrollService calculates, persists and emails monthly pay records.
type PayrollService interface {
	// Calculate reduces already-aggregated inputs to net-pay rows without
	// persisting anything
	Calculate(ctx context.Context, req CalculateRequest) ([]RecordResponse, error)

	// Save overwrites the month's records with the calculated rows
	Save(ctx context.Context, req SaveRequest) ([]RecordResponse, error)

	// ListMonth returns a store's saved records for one month
	ListMonth(ctx context.Context, req ListRequest) ([]RecordResponse, error)

	// EmailPayslip sends a saved record to the employee
	EmailPayslip(ctx context.Context, recordID string) error
}

// RowInput is one employee's already-aggregated pay inputs. Overtime pay is
// computed upstream from aggregated minutes and consumed here as a field.
type RowInput struct {
	EmployeeID        string          `json:"employee_id"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	PositionAllowance decimal.Decimal `json:"position_allowance"`
	HazardAllowance   decimal.Decimal `json:"hazard_allowance"`
	BirthdayBonus     decimal.Decimal `json:"birthday_bonus"`
	HolidayPay        decimal.Decimal `json:"holiday_pay"`
	SpecialBonus      decimal.Decimal `json:"special_bonus"`
	OvertimePay       decimal.Decimal `json:"overtime_pay"`
	LateDeduction     decimal.Decimal `json:"late_deduction"`
	SSODeduction      decimal.Decimal `json:"sso_deduction"`
	TaxDeduction      decimal.Decimal `json:"tax_deduction"`
	OtherDeduction    decimal.Decimal `json:"other_deduction"`
}

type CalculateRequest struct {
	StoreID string     `json:"store_id"`
	Month   string     `json:"month"`
	Rows    []RowInput `json:"rows"`
}

func (r CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store is required"})
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be YYYY-MM"})
	}
	for _, row := range r.Rows {
		if validator.IsEmpty(row.EmployeeID) {
			errs = append(errs, validator.ValidationError{Field: "rows", Message: "every row needs an employee"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaveRequest = CalculateRequest

type ListRequest struct {
	StoreID string `json:"store_id"`
	Month   string `json:"month"`
}

func (r ListRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store is required"})
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be YYYY-MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID                string          `json:"id,omitempty"`
	StoreID           string          `json:"store_id"`
	EmployeeID        string          `json:"employee_id"`
	Month             string          `json:"month"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	GrossAllowances   decimal.Decimal `json:"gross_allowances"`
	OvertimePay       decimal.Decimal `json:"overtime_pay"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	NetPay            decimal.Decimal `json:"net_pay"`
}
