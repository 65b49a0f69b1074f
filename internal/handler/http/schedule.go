package http

import (
	"net/http"

	"github.com/storepulse/storeops-backend-go/internal/domain/schedule"
	"github.com/storepulse/storeops-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Weekly(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	resolver schedule.Resolver
}

func NewScheduleHandler(resolver schedule.Resolver) ScheduleHandler {
	return &scheduleHandlerImpl{resolver: resolver}
}

// Weekly implements ScheduleHandler.
func (h *scheduleHandlerImpl) Weekly(w http.ResponseWriter, r *http.Request) {
	req := schedule.WeeklyScheduleRequest{
		StoreID: r.URL.Query().Get("store_id"),
		Monday:  r.URL.Query().Get("monday"),
	}

	rows, err := h.resolver.WeeklySchedule(r.Context(), req)
	if err != nil {
		handleReadError(w, err, []schedule.WeeklyScheduleRow{})
		return
	}

	response.Success(w, rows)
}
