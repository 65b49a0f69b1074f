package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalaryType string

const (
	SalaryMonthly SalaryType = "monthly"
	SalaryHourly  SalaryType = "hourly"
)

// Employee identity is the composite key (StoreID, ID). Name and nickname
// are display attributes only and are never used as join keys.
type Employee struct {
	ID         string
	StoreID    string
	Name       string
	Nickname   string
	JobTitle   string
	Department string
	Email      string
	SalaryType SalaryType
	JoinDate   time.Time
	ResignDate *time.Time

	// AnnualLeaveOverride, when positive, replaces the tenure-derived
	// annual leave entitlement.
	AnnualLeaveOverride decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the employee is on the active roster at the given
// instant. A resignation date is a terminal state.
func (e Employee) Active(at time.Time) bool {
	return e.ResignDate == nil || e.ResignDate.After(at)
}

// DepartmentOrDefault returns the department, defaulting to "Staff" when
// unspecified.
func (e Employee) DepartmentOrDefault() string {
	if e.Department == "" {
		return "Staff"
	}
	return e.Department
}
