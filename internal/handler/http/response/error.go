package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/storepulse/storeops-backend-go/internal/domain/attendance"
	"github.com/storepulse/storeops-backend-go/internal/domain/employee"
	"github.com/storepulse/storeops-backend-go/internal/domain/leave"
	"github.com/storepulse/storeops-backend-go/internal/domain/payroll"
	"github.com/storepulse/storeops-backend-go/internal/domain/schedule"
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors. Duplicate and scope violations are
	// user-correctable rejections, not faults.
	case errors.Is(err, attendance.ErrDuplicateEvent):
		Rejected(w, "Already recorded today")
	case errors.Is(err, attendance.ErrStoreScope):
		Rejected(w, "Not permitted for this store")
	case errors.Is(err, attendance.ErrUnknownEventType):
		BadRequest(w, "Unknown attendance event type", nil)
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// Roster / schedule domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "No schedule entry for that date")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrUnknownType):
		BadRequest(w, "Unknown leave type", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")

	// Default: upstream record-store failure on a write path. The upstream
	// text is included for diagnosis.
	default:
		InternalServerError(w, fmt.Sprintf("An unexpected error occurred: %v", err))
	}
}
