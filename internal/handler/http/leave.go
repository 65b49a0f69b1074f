package http

import (
	"net/http"

	"github.com/storepulse/storeops-backend-go/internal/domain/leave"
	"github.com/storepulse/storeops-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Stats(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	ledger leave.Ledger
}

func NewLeaveHandler(ledger leave.Ledger) LeaveHandler {
	return &leaveHandlerImpl{ledger: ledger}
}

// Stats implements LeaveHandler. Serves both the admin leave dashboard and
// an employee's own entitlement view.
func (h *leaveHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	req := leave.StatsRequest{
		StoreID:    r.URL.Query().Get("store_id"),
		EmployeeID: r.URL.Query().Get("employee_id"),
		Start:      r.URL.Query().Get("start"),
		End:        r.URL.Query().Get("end"),
	}

	stats, err := h.ledger.Stats(r.Context(), req)
	if err != nil {
		handleReadError(w, err, leave.StatsResponse{
			StoreID:    req.StoreID,
			EmployeeID: req.EmployeeID,
		})
		return
	}

	response.Success(w, stats)
}
