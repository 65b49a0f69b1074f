package attendance

import (
	"context"

	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
)

// EventRepository defines data access over the append-only event log.
type EventRepository interface {
	// InsertOnce appends the event iff no event with the same
	// (store, employee, type, date) exists. The uniqueness check and the
	// write are one atomic statement; inserted=false means a duplicate.
	InsertOnce(ctx context.Context, event Event) (inserted bool, err error)

	// ListByEmployeeAndDate retrieves one employee's events for a business day
	ListByEmployeeAndDate(ctx context.Context, storeID, employeeID string, date clock.Date) ([]Event, error)

	// LatestBreakStart retrieves today's most recent break_start for the employee
	LatestBreakStart(ctx context.Context, employeeID string, date clock.Date) (*Event, error)

	// ListRange retrieves events in [start, end], for one store or all
	// stores when storeID is empty
	ListRange(ctx context.Context, storeID string, start, end clock.Date) ([]Event, error)
}
