package attendance

import "errors"

// Attendance domain errors
var (
	// ErrDuplicateEvent is the once-per-day rule violation. It is a
	// user-correctable condition, not a server fault.
	ErrDuplicateEvent = errors.New("already recorded today")

	// ErrStoreScope is returned when a manager submits for a store other
	// than their own.
	ErrStoreScope = errors.New("not permitted for this store")

	ErrUnknownEventType = errors.New("unknown attendance event type")
	ErrEventNotFound    = errors.New("attendance event not found")
)
