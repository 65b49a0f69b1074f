package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/storepulse/storeops-backend-go/internal/domain/attendance"
	"github.com/storepulse/storeops-backend-go/internal/handler/http/middleware"
	"github.com/storepulse/storeops-backend-go/internal/handler/http/response"
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	DaySummary(w http.ResponseWriter, r *http.Request)
	MissingRecords(w http.ResponseWriter, r *http.Request)
	CreateFromSchedule(w http.ResponseWriter, r *http.Request)
	PeriodStats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	recorder   attendance.Recorder
	aggregator attendance.Aggregator
}

func NewAttendanceHandler(recorder attendance.Recorder, aggregator attendance.Aggregator) AttendanceHandler {
	return &attendanceHandlerImpl{
		recorder:   recorder,
		aggregator: aggregator,
	}
}

// Submit implements AttendanceHandler.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor := middleware.ActorFromContext(r)
	req.ActorStoreID = actor.StoreID
	req.ActorRole = actor.Role

	result, err := h.recorder.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

// DaySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) DaySummary(w http.ResponseWriter, r *http.Request) {
	storeID := r.URL.Query().Get("store_id")
	employeeID := r.URL.Query().Get("employee_id")
	date := r.URL.Query().Get("date")

	rows, err := h.aggregator.DaySummary(r.Context(), storeID, employeeID, date)
	if err != nil {
		handleReadError(w, err, []attendance.DaySummaryRow{})
		return
	}

	response.Success(w, rows)
}

// MissingRecords implements AttendanceHandler.
func (h *attendanceHandlerImpl) MissingRecords(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r)
	req := attendance.MissingRecordsRequest{
		Start:        r.URL.Query().Get("start"),
		End:          r.URL.Query().Get("end"),
		StoreID:      r.URL.Query().Get("store_id"),
		ActorStoreID: actor.StoreID,
		ActorRole:    actor.Role,
	}

	rows, err := h.aggregator.MissingRecords(r.Context(), req)
	if err != nil {
		handleReadError(w, err, []attendance.GapRow{})
		return
	}

	response.Success(w, rows)
}

// CreateFromSchedule implements AttendanceHandler.
func (h *attendanceHandlerImpl) CreateFromSchedule(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateFromScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor := middleware.ActorFromContext(r)
	req.ActorStoreID = actor.StoreID
	req.ActorRole = actor.Role

	created, err := h.aggregator.CreateFromSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance created from schedule", created)
}

// PeriodStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) PeriodStats(w http.ResponseWriter, r *http.Request) {
	req := attendance.PeriodStatsRequest{
		Start:      r.URL.Query().Get("start"),
		End:        r.URL.Query().Get("end"),
		StoreID:    r.URL.Query().Get("store_id"),
		OfficeOnly: r.URL.Query().Get("office_only") == "true",
	}

	rows, err := h.aggregator.PeriodStats(r.Context(), req)
	if err != nil {
		handleReadError(w, err, []attendance.PeriodStatsRow{})
		return
	}

	response.Success(w, rows)
}

// handleReadError keeps dashboards renderable: only user-addressable errors
// propagate, an upstream store failure degrades to an empty payload.
func handleReadError(w http.ResponseWriter, err error, empty interface{}) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, attendance.ErrStoreScope):
		response.HandleError(w, err)
	default:
		slog.Warn("read endpoint degraded to empty payload", "error", err)
		response.Success(w, empty)
	}
}
