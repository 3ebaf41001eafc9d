package report

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-console-go/internal/store/lifecycle"
)

const exportPath = "/api/reports/export"

type ReportStoreImpl struct {
	*lifecycle.Tracker
	client *apiclient.Client

	mu         sync.RWMutex
	attendance *report.AttendanceReport
	leave      *report.LeaveReport
	compliance *report.ComplianceReport
}

func NewReportStore(client *apiclient.Client, tracker *lifecycle.Tracker) report.Store {
	return &ReportStoreImpl{
		Tracker: tracker,
		client:  client,
	}
}

// FetchAttendanceReport implements report.Store.
func (s *ReportStoreImpl) FetchAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) bool {
	tk := s.Begin("attendance")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.FetchReportFailed)
		return false
	}

	resp, err := apiclient.Do[report.AttendanceReport](ctx, s.client, http.MethodGet, "/api/reports/attendance", nil, req.Query())
	if err != nil {
		s.Fail(tk, err, i18n.FetchReportFailed)
		return false
	}

	return s.Commit(tk, func() {
		s.mu.Lock()
		s.attendance = &resp.Data
		s.mu.Unlock()
	})
}

// FetchLeaveReport implements report.Store.
func (s *ReportStoreImpl) FetchLeaveReport(ctx context.Context, req report.LeaveReportRequest) bool {
	tk := s.Begin("leave")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.FetchReportFailed)
		return false
	}

	resp, err := apiclient.Do[report.LeaveReport](ctx, s.client, http.MethodGet, "/api/reports/leave", nil, req.Query())
	if err != nil {
		s.Fail(tk, err, i18n.FetchReportFailed)
		return false
	}

	return s.Commit(tk, func() {
		s.mu.Lock()
		s.leave = &resp.Data
		s.mu.Unlock()
	})
}

// FetchCompanyComplianceReport implements report.Store. The numbers are
// computed by the backend and kept as received.
func (s *ReportStoreImpl) FetchCompanyComplianceReport(ctx context.Context, req report.ComplianceRequest) bool {
	tk := s.Begin("compliance")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.FetchReportFailed)
		return false
	}

	resp, err := apiclient.Do[report.ComplianceReport](ctx, s.client, http.MethodGet, "/api/reports/compliance", nil, req.Query())
	if err != nil {
		s.Fail(tk, err, i18n.FetchReportFailed)
		return false
	}

	return s.Commit(tk, func() {
		s.mu.Lock()
		s.compliance = &resp.Data
		s.mu.Unlock()
	})
}

// ExportURL implements report.Store. It returns the backend file URL a
// browser navigates to; nothing is fetched.
func (s *ReportStoreImpl) ExportURL(req report.ExportRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", report.ErrUnsupportedExport, err)
	}
	return s.client.URL(exportPath, req.Query()), nil
}

// Export implements report.Store. The file is streamed into w unparsed.
func (s *ReportStoreImpl) Export(ctx context.Context, req report.ExportRequest, w io.Writer) bool {
	tk := s.Begin("export")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.ExportFailed)
		return false
	}

	contentType, err := s.client.Download(ctx, exportPath, req.Query(), w)
	if err != nil {
		s.Fail(tk, err, i18n.ExportFailed)
		return false
	}

	s.Logger().Info("report exported", "type", req.Type, "format", req.Format, "content_type", contentType)
	s.Commit(tk, nil)
	return true
}

// AttendanceReport implements report.Store.
func (s *ReportStoreImpl) AttendanceReport() *report.AttendanceReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attendance
}

// LeaveReport implements report.Store.
func (s *ReportStoreImpl) LeaveReport() *report.LeaveReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leave
}

// ComplianceReport implements report.Store.
func (s *ReportStoreImpl) ComplianceReport() *report.ComplianceReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compliance
}
