package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/storepulse/storeops-backend-go/internal/domain/payroll"
	"github.com/storepulse/storeops-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	ListMonth(w http.ResponseWriter, r *http.Request)
	EmailPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Calculate implements PayrollHandler.
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rows, err := h.payrollService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Save implements PayrollHandler.
func (h *payrollHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req payroll.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rows, err := h.payrollService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll saved", rows)
}

// ListMonth implements PayrollHandler.
func (h *payrollHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
	req := payroll.ListRequest{
		StoreID: r.URL.Query().Get("store_id"),
		Month:   r.URL.Query().Get("month"),
	}

	rows, err := h.payrollService.ListMonth(r.Context(), req)
	if err != nil {
		handleReadError(w, err, []payroll.RecordResponse{})
		return
	}

	response.Success(w, rows)
}

// EmailPayslip implements PayrollHandler.
func (h *payrollHandlerImpl) EmailPayslip(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		response.BadRequest(w, "Record id is required", nil)
		return
	}

	if err := h.payrollService.EmailPayslip(r.Context(), recordID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip sent", nil)
}
