package report

import (
	"context"
	"io"
)

type Store interface {
	FetchAttendanceReport(ctx context.Context, req AttendanceReportRequest) bool
	FetchLeaveReport(ctx context.Context, req LeaveReportRequest) bool
	FetchCompanyComplianceReport(ctx context.Context, req ComplianceRequest) bool
	ExportURL(req ExportRequest) (string, error)
	Export(ctx context.Context, req ExportRequest, w io.Writer) bool

	AttendanceReport() *AttendanceReport
	LeaveReport() *LeaveReport
	ComplianceReport() *ComplianceReport
	IsLoading() bool
	Error() string
	FieldErrors() map[string]string
	ClearError()
}
