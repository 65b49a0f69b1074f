package leave

import (
	"context"

	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
)

type RequestRepository interface {
	// ListApprovedByEmployee retrieves every approved request for an employee
	ListApprovedByEmployee(ctx context.Context, storeID, employeeID string) ([]Request, error)

	// ListApprovedRange retrieves approved requests for a store and date
	// range, for the weekly roster merge
	ListApprovedRange(ctx context.Context, storeID string, start, end clock.Date) ([]Request, error)
}
