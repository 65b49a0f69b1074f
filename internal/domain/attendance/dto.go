package attendance

import (
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
)

// SubmitEventRequest is the clock-event submission payload. Latitude and
// longitude arrive as strings because devices may send "Unknown".
type SubmitEventRequest struct {
	StoreID    string `json:"store_id"`
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`

	// ActorStoreID / ActorRole come from the token, not the body.
	ActorStoreID string `json:"-"`
	ActorRole    string `json:"-"`
}

func (r SubmitEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store is required"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee is required"})
	}
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "event type is required"})
	} else if !EventType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "unknown event type"})
	}
	if _, ok := validator.ParseLatitude(r.Latitude); !ok {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "invalid latitude"})
	}
	if _, ok := validator.ParseLongitude(r.Longitude); !ok {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "invalid longitude"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID                string   `json:"id"`
	StoreID           string   `json:"store_id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      string   `json:"employee_name,omitempty"`
	Type              string   `json:"type"`
	OccurredAt        string   `json:"occurred_at"`
	Date              string   `json:"date"`
	LateMinutes       int      `json:"late_minutes"`
	EarlyMinutes      int      `json:"early_minutes"`
	OvertimeMinutes   int      `json:"overtime_minutes"`
	BreakMinutes      int      `json:"break_minutes"`
	Status            string   `json:"status"`
	ApprovalState     string   `json:"approval_state"`
	GeofenceDistanceM *float64 `json:"geofence_distance_m,omitempty"`
	GeofenceCompliant *bool    `json:"geofence_compliant,omitempty"`
}

// DaySummaryRow is the per-employee snapshot for one business day: earliest
// clock-in, latest clock-out.
type DaySummaryRow struct {
	StoreID      string `json:"store_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	ClockIn      string `json:"clock_in,omitempty"`
	ClockOut     string `json:"clock_out,omitempty"`
	LateMinutes  int    `json:"late_minutes"`
	Status       string `json:"status,omitempty"`
	// OnlyIn flags a day with a clock-in but no clock-out ("not recorded").
	OnlyIn bool `json:"only_in"`
}

// GapRow is a schedule entry with no matching clock event.
type GapRow struct {
	Date       string `json:"date"`
	StoreID    string `json:"store_id"`
	EmployeeID string `json:"employee_id"`
	PlanIn     string `json:"plan_in"`
	PlanOut    string `json:"plan_out"`
}

type MissingRecordsRequest struct {
	Start   string
	End     string
	StoreID string // empty means all stores

	ActorStoreID string
	ActorRole    string
}

// CreateFromScheduleRequest is the compensating write: synthesize clock
// events from the planned times for a missed day.
type CreateFromScheduleRequest struct {
	Date       string `json:"date"`
	StoreID    string `json:"store_id"`
	EmployeeID string `json:"employee_id"`

	ActorStoreID string `json:"-"`
	ActorRole    string `json:"-"`
}

func (r CreateFromScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store is required"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PeriodStatsRow aggregates one employee's lateness and overtime over a
// date window.
type PeriodStatsRow struct {
	StoreID         string `json:"store_id"`
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name,omitempty"`
	Department      string `json:"department"`
	DaysPresent     int    `json:"days_present"`
	LateCount       int    `json:"late_count"`
	LateMinutes     int    `json:"late_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	WorkedMinutes   int    `json:"worked_minutes"`
}

type PeriodStatsRequest struct {
	Start   string
	End     string
	StoreID string // empty means all stores
	// OfficeOnly restricts the roster to the configured office store
	// allow-list.
	OfficeOnly bool
}
