package report

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/store/storetest"
)

func setup(t *testing.T, register func(r chi.Router)) (report.Store, *storetest.Backend) {
	t.Helper()
	b := storetest.NewBackend(t)
	b.Protected(register)
	sess := storetest.Session(t, &user.User{ID: "admin", Role: user.RoleAdmin}, nil, b.Token(t, "admin"))
	return NewReportStore(b.Client(t, sess), storetest.Tracker("report")), b
}

func TestFetchCompanyComplianceReport_KeepsNumbersAsReceived(t *testing.T) {
	store, _ := setup(t, func(r chi.Router) {
		r.Get("/api/reports/compliance", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2026", r.URL.Query().Get("year"))
			assert.Equal(t, "9", r.URL.Query().Get("month"))
			storetest.Success(w, report.ComplianceReport{
				Period:         report.Period{Year: 2026, Month: 9, StartDate: "2026-09-01", EndDate: "2026-09-30"},
				CompanySummary: report.CompanySummary{TotalEmployees: 2, TotalOvertimeHours: 51.5, OvertimeViolations: 1},
				ComplianceReport: []report.ComplianceEntry{
					{UserID: "u1", UserName: "Alice", OvertimeHours: 46.5, OvertimeLimitExceeded: true},
					{UserID: "u2", UserName: "Bob", OvertimeHours: 5, PaidLeaveCompliant: true},
				},
			})
		})
	})

	ok := store.FetchCompanyComplianceReport(context.Background(), report.ComplianceRequest{Year: 2026, Month: 9})

	require.True(t, ok)
	got := store.ComplianceReport()
	require.NotNil(t, got)
	assert.Equal(t, 51.5, got.CompanySummary.TotalOvertimeHours)
	require.Len(t, got.ComplianceReport, 2)
	assert.True(t, got.ComplianceReport[0].OvertimeLimitExceeded)
}

func TestFetchCompanyComplianceReport_InvalidMonth(t *testing.T) {
	store, _ := setup(t, func(r chi.Router) {})

	ok := store.FetchCompanyComplianceReport(context.Background(), report.ComplianceRequest{Year: 2026, Month: 13})

	assert.False(t, ok)
	assert.Contains(t, store.FieldErrors(), "month")
	assert.Nil(t, store.ComplianceReport())
}

func TestFetchAttendanceReport_BackendFailureKeepsPreviousReport(t *testing.T) {
	var fail atomic.Bool
	store, _ := setup(t, func(r chi.Router) {
		r.Get("/api/reports/attendance", func(w http.ResponseWriter, r *http.Request) {
			if fail.Load() {
				storetest.Error(w, http.StatusInternalServerError, "")
				return
			}
			storetest.Success(w, report.AttendanceReport{StartDate: "2026-10-01", EndDate: "2026-10-31"})
		})
	})
	ctx := context.Background()
	req := report.AttendanceReportRequest{StartDate: "2026-10-01", EndDate: "2026-10-31"}
	require.True(t, store.FetchAttendanceReport(ctx, req))

	fail.Store(true)
	assert.False(t, store.FetchAttendanceReport(ctx, req))
	assert.Equal(t, "Internal Server Error", store.Error())
	require.NotNil(t, store.AttendanceReport())
	assert.Equal(t, "2026-10-01", store.AttendanceReport().StartDate)
}

func TestExportURL(t *testing.T) {
	store, b := setup(t, func(r chi.Router) {})

	got, err := store.ExportURL(report.ExportRequest{Type: report.ExportLeave, Format: report.FormatCSV, Year: 2026})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, b.Server.URL+"/api/reports/export?"))
	assert.Contains(t, got, "type=leave")
	assert.Contains(t, got, "year=2026")

	_, err = store.ExportURL(report.ExportRequest{Type: "payroll", Format: report.FormatCSV})
	assert.ErrorIs(t, err, report.ErrUnsupportedExport)
}

func TestExport_StreamsFile(t *testing.T) {
	store, _ := setup(t, func(r chi.Router) {
		r.Get("/api/reports/export", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "attendance", r.URL.Query().Get("type"))
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("name,hours\nAlice,160\n"))
		})
	})

	var buf bytes.Buffer
	ok := store.Export(context.Background(), report.ExportRequest{
		Type:      report.ExportAttendance,
		Format:    report.FormatCSV,
		StartDate: "2026-10-01",
		EndDate:   "2026-10-31",
	}, &buf)

	require.True(t, ok)
	assert.Equal(t, "name,hours\nAlice,160\n", buf.String())
	assert.False(t, store.IsLoading())
}
