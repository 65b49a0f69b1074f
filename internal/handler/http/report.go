package http

import (
	"fmt"
	"net/http"

	"github.com/storepulse/storeops-backend-go/internal/domain/attendance"
	"github.com/storepulse/storeops-backend-go/internal/handler/http/response"
	"github.com/storepulse/storeops-backend-go/internal/service/report"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// ExportAttendance implements ReportHandler. Streams the period statistics
// as an xlsx workbook.
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	req := attendance.PeriodStatsRequest{
		Start:      r.URL.Query().Get("start"),
		End:        r.URL.Query().Get("end"),
		StoreID:    r.URL.Query().Get("store_id"),
		OfficeOnly: r.URL.Query().Get("office_only") == "true",
	}

	buf, filename, err := h.reportService.ExportAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = buf.WriteTo(w)
}
