package schedule

import (
	"time"

	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
)

// Entry is the planned shift for (store, employee, date). At most one entry
// exists per key; times of day are "15:04" strings in the business timezone.
type Entry struct {
	ID         string
	StoreID    string
	EmployeeID string
	Date       clock.Date
	PlanIn     string
	PlanOut    string
	BreakStart string
	BreakEnd   string

	// PlanInPrevDay marks a shift that starts on the previous calendar day
	// (overnight work scheduled under the following date).
	PlanInPrevDay bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Shift is a resolved planned shift. Zero-value fields mean the schedule did
// not resolve; callers fall back to the configured defaults.
type Shift struct {
	PlanIn     string
	PlanOut    string
	BreakStart string
	BreakEnd   string
}

func (s Shift) Empty() bool {
	return s.PlanIn == "" && s.PlanOut == "" && s.BreakStart == "" && s.BreakEnd == ""
}

// HasBreakWindow reports whether both planned break bounds resolved.
func (s Shift) HasBreakWindow() bool {
	return s.BreakStart != "" && s.BreakEnd != ""
}
