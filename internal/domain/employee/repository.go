package employee

import (
	"context"
	"time"
)

// EmployeeRepository defines data access over the employee roster. The
// roster itself is owned by the HR import subsystem; this backend only reads.
type EmployeeRepository interface {
	// GetByID retrieves an employee by composite key
	GetByID(ctx context.Context, storeID, id string) (Employee, error)

	// ListActive retrieves employees without a resignation date before `at`,
	// for one store or all stores when storeID is empty
	ListActive(ctx context.Context, storeID string, at time.Time) ([]Employee, error)
}
