package attendance

import (
	"time"

	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
)

type EventType string

const (
	EventClockIn    EventType = "clock_in"
	EventClockOut   EventType = "clock_out"
	EventBreakStart EventType = "break_start"
	EventBreakEnd   EventType = "break_end"
)

// OncePerDay reports whether the event type is restricted to a single
// occurrence per employee per business day. Currently all four are.
func (t EventType) OncePerDay() bool {
	switch t {
	case EventClockIn, EventClockOut, EventBreakStart, EventBreakEnd:
		return true
	}
	return false
}

func (t EventType) Valid() bool { return t.OncePerDay() }

// Status labels derived at record time.
const (
	StatusNormal       = "Normal"
	StatusLate         = "Late"
	StatusEarlyLeave   = "EarlyLeave"
	StatusOvertime     = "Overtime"
	StatusBreakNormal  = "BreakNormal"
	StatusBreakOverrun = "BreakOverrun"
)

// Approval states. Events are appended pending; manager gating is computed
// but currently disabled, so pending events still count everywhere.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
)

// Event is one immutable clock event with its derived timing fields.
type Event struct {
	ID         string
	StoreID    string
	EmployeeID string
	// EmployeeName is denormalized for dashboards only, never joined on.
	EmployeeName string

	Type       EventType
	OccurredAt time.Time
	Date       clock.Date

	Latitude  *float64
	Longitude *float64
	// GeofenceDistanceM and GeofenceCompliant are recorded for
	// observability; distance never blocks the event.
	GeofenceDistanceM *float64
	GeofenceCompliant *bool

	LateMinutes     int
	EarlyMinutes    int
	OvertimeMinutes int
	BreakMinutes    int

	Status        string
	ApprovalState string

	CreatedAt time.Time
}
