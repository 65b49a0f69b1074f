package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one employee's pay for one month, produced by a
// calculate-then-save action. Saving again overwrites.
type Record struct {
	ID         string
	StoreID    string
	EmployeeID string
	// Month is "YYYY-MM".
	Month string

	BaseSalary        decimal.Decimal
	PositionAllowance decimal.Decimal
	HazardAllowance   decimal.Decimal
	BirthdayBonus     decimal.Decimal
	HolidayPay        decimal.Decimal
	SpecialBonus      decimal.Decimal
	OvertimePay       decimal.Decimal

	LateDeduction  decimal.Decimal
	SSODeduction   decimal.Decimal
	TaxDeduction   decimal.Decimal
	OtherDeduction decimal.Decimal

	NetPay decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GrossAllowances sums every allowance component.
func (r Record) GrossAllowances() decimal.Decimal {
	return r.PositionAllowance.
		Add(r.HazardAllowance).
		Add(r.BirthdayBonus).
		Add(r.HolidayPay).
		Add(r.SpecialBonus)
}

// TotalDeductions sums every deduction component.
func (r Record) TotalDeductions() decimal.Decimal {
	return r.LateDeduction.
		Add(r.SSODeduction).
		Add(r.TaxDeduction).
		Add(r.OtherDeduction)
}
