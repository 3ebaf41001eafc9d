package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/export"
)

type ReportHandler interface {
	// GetReport handles the attendance, leave and compliance reports
	GetReport(w http.ResponseWriter, r *http.Request)

	// Export redirects to the backend-generated file
	Export(w http.ResponseWriter, r *http.Request)

	// Download streams the backend-generated file through the console
	Download(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct{}

func NewReportHandler() ReportHandler {
	return &reportHandlerImpl{}
}

var contentTypes = map[report.ExportFormat]string{
	report.FormatCSV:  "text/csv",
	report.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	report.FormatPDF:  "application/pdf",
}

// GetReport handles GET /admin/reports/{kind}
func (h *reportHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	store := instance(r).Report

	switch chi.URLParam(r, "kind") {
	case string(report.ExportAttendance):
		req := report.AttendanceReportRequest{
			StartDate: q.Get("startDate"),
			EndDate:   q.Get("endDate"),
			UserID:    q.Get("userId"),
		}
		if !store.FetchAttendanceReport(ctx, req) {
			actionFailed(w, r, store, q)
			return
		}
		response.Success(w, store.AttendanceReport())

	case string(report.ExportLeave):
		if !store.FetchLeaveReport(ctx, report.LeaveReportRequest{Year: queryInt(r, "year")}) {
			actionFailed(w, r, store, q)
			return
		}
		response.Success(w, store.LeaveReport())

	case string(report.ExportCompliance):
		req := report.ComplianceRequest{Year: queryInt(r, "year"), Month: queryInt(r, "month")}
		if !store.FetchCompanyComplianceReport(ctx, req) {
			actionFailed(w, r, store, q)
			return
		}
		if q.Get("format") == string(report.FormatXLSX) {
			writeComplianceWorkbook(w, store.ComplianceReport())
			return
		}
		response.Success(w, store.ComplianceReport())

	default:
		response.NotFound(w, "Unknown report")
	}
}

func writeComplianceWorkbook(w http.ResponseWriter, rep *report.ComplianceReport) {
	var buf bytes.Buffer
	if err := export.WriteComplianceWorkbook(&buf, rep); err != nil {
		slog.Error("Failed to render compliance workbook", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("compliance-%04d-%02d.xlsx", rep.Period.Year, rep.Period.Month)
	w.Header().Set("Content-Type", contentTypes[report.FormatXLSX])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(buf.Bytes())
}

func exportRequest(r *http.Request) report.ExportRequest {
	q := r.URL.Query()
	return report.ExportRequest{
		Type:      report.ExportType(q.Get("type")),
		Format:    report.ExportFormat(q.Get("format")),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Year:      queryInt(r, "year"),
		Month:     queryInt(r, "month"),
	}
}

// Export handles GET /admin/reports/export
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	target, err := instance(r).Report.ExportURL(exportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Download handles GET /admin/reports/export/download
func (h *reportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	req := exportRequest(r)
	store := instance(r).Report

	var buf bytes.Buffer
	if !store.Export(r.Context(), req, &buf) {
		actionFailed(w, r, store, r.URL.Query())
		return
	}

	filename := fmt.Sprintf("%s-report.%s", req.Type, req.Format)
	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(buf.Bytes())
}
