package schedule

import (
	"context"

	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
)

type ScheduleRepository interface {
	// GetByKey retrieves the single entry for (store, employee, date)
	GetByKey(ctx context.Context, storeID, employeeID string, date clock.Date) (*Entry, error)

	// ListRange retrieves entries for a date range, for one store or all
	// stores when storeID is empty
	ListRange(ctx context.Context, storeID string, start, end clock.Date) ([]Entry, error)

	// ListWeek retrieves one store's entries for the seven days starting at monday
	ListWeek(ctx context.Context, storeID string, monday clock.Date) ([]Entry, error)
}
