package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("no schedule entry for that date")
)
