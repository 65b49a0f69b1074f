package leave

import (
	"context"

	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
)

// Ledger computes entitlement and consumption of leave categories.
type Ledger interface {
	Stats(ctx context.Context, req StatsRequest) (StatsResponse, error)
}

type StatsRequest struct {
	StoreID    string
	EmployeeID string
	Start      string
	End        string
}

func (r StatsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store is required"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee is required"})
	}
	if _, ok := validator.IsValidDate(r.Start); !ok {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "start must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.End); !ok {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "end must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CategoryStats carries one category's consumption. UsedTotal is the
// leave-year-to-date figure that Remaining is computed against; Remaining is
// only populated for capped categories (annual, personal).
type CategoryStats struct {
	Entitlement float64  `json:"entitlement"`
	UsedPeriod  float64  `json:"used_period"`
	UsedTotal   float64  `json:"used_total"`
	Remaining   *float64 `json:"remaining,omitempty"`
}

type StatsResponse struct {
	StoreID      string        `json:"store_id"`
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name,omitempty"`
	Annual       CategoryStats `json:"annual"`
	Personal     CategoryStats `json:"personal"`
	Sick         CategoryStats `json:"sick"`
	Unpaid       CategoryStats `json:"unpaid"`
}
