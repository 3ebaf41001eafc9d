package report

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE REPORT
// ========================================

type AttendanceReportRequest struct {
	StartDate string
	EndDate   string
	UserID    string
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors
	validator.DateRange(&errs, "startDate", r.StartDate, "endDate", r.EndDate)
	return errs.Err()
}

func (r AttendanceReportRequest) Query() url.Values {
	q := url.Values{}
	q.Set("startDate", r.StartDate)
	q.Set("endDate", r.EndDate)
	if r.UserID != "" {
		q.Set("userId", r.UserID)
	}
	return q
}

type AttendanceReport struct {
	StartDate string                  `json:"startDate"`
	EndDate   string                  `json:"endDate"`
	Entries   []AttendanceReportEntry `json:"entries"`
}

type AttendanceReportEntry struct {
	UserID           string  `json:"userId"`
	UserName         string  `json:"userName"`
	WorkDays         int     `json:"workDays"`
	TotalWorkHours   float64 `json:"totalWorkHours"`
	AverageWorkHours float64 `json:"averageWorkHours"`
	OpenRecords      int     `json:"openRecords"`
}

// ========================================
// LEAVE REPORT
// ========================================

type LeaveReportRequest struct {
	Year int
}

func (r *LeaveReportRequest) Validate() error {
	var errs validator.ValidationErrors
	validateYear(&errs, r.Year)
	return errs.Err()
}

func (r LeaveReportRequest) Query() url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(r.Year))
	return q
}

type LeaveReport struct {
	Year    int                `json:"year"`
	Entries []LeaveReportEntry `json:"entries"`
}

type LeaveReportEntry struct {
	UserID     string  `json:"userId"`
	UserName   string  `json:"userName"`
	PaidDays   float64 `json:"paidDays"`
	UnpaidDays float64 `json:"unpaidDays"`
	SickDays   float64 `json:"sickDays"`
	OtherDays  float64 `json:"otherDays"`
	TotalDays  float64 `json:"totalDays"`
	Pending    int     `json:"pending"`
}

// ========================================
// COMPLIANCE REPORT
// ========================================

// ComplianceRequest selects a monthly period of the company compliance report.
type ComplianceRequest struct {
	Year  int
	Month int
}

func (r *ComplianceRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month < 1 || r.Month > 12 {
		errs.Add("month", "month must be between 1 and 12")
	}
	validateYear(&errs, r.Year)
	return errs.Err()
}

func (r ComplianceRequest) Query() url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(r.Year))
	q.Set("month", strconv.Itoa(r.Month))
	return q
}

// ComplianceReport is produced by the backend aggregation engine. The client
// only displays these numbers.
type ComplianceReport struct {
	Period           Period            `json:"period"`
	CompanySummary   CompanySummary    `json:"companySummary"`
	ComplianceReport []ComplianceEntry `json:"complianceReport"`
}

type Period struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type CompanySummary struct {
	TotalEmployees       int     `json:"totalEmployees"`
	TotalOvertimeHours   float64 `json:"totalOvertimeHours"`
	AverageOvertimeHours float64 `json:"averageOvertimeHours"`
	OvertimeViolations   int     `json:"overtimeViolations"`
	BreakViolations      int     `json:"breakViolations"`
	HolidayWorkDays      int     `json:"holidayWorkDays"`
	NightWorkHours       float64 `json:"nightWorkHours"`
	PaidLeaveShortfalls  int     `json:"paidLeaveShortfalls"`
}

type ComplianceEntry struct {
	UserID                string  `json:"userId"`
	UserName              string  `json:"userName"`
	OvertimeHours         float64 `json:"overtimeHours"`
	OvertimeLimitExceeded bool    `json:"overtimeLimitExceeded"`
	BreakViolations       int     `json:"breakViolations"`
	HolidayWorkDays       int     `json:"holidayWorkDays"`
	NightWorkHours        float64 `json:"nightWorkHours"`
	PaidLeaveTaken        float64 `json:"paidLeaveTaken"`
	PaidLeaveRequired     float64 `json:"paidLeaveRequired"`
	PaidLeaveCompliant    bool    `json:"paidLeaveCompliant"`
}

// ========================================
// EXPORT
// ========================================

type ExportType string

const (
	ExportAttendance ExportType = "attendance"
	ExportLeave      ExportType = "leave"
	ExportCompliance ExportType = "compliance"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

type ExportRequest struct {
	Type      ExportType
	Format    ExportFormat
	StartDate string
	EndDate   string
	Year      int
	Month     int
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	switch r.Format {
	case FormatCSV, FormatXLSX, FormatPDF:
	default:
		errs.Add("format", "format must be csv, xlsx or pdf")
	}

	switch r.Type {
	case ExportAttendance:
		validator.DateRange(&errs, "startDate", r.StartDate, "endDate", r.EndDate)
	case ExportLeave:
		validateYear(&errs, r.Year)
	case ExportCompliance:
		if r.Month < 1 || r.Month > 12 {
			errs.Add("month", "month must be between 1 and 12")
		}
		validateYear(&errs, r.Year)
	default:
		errs.Add("type", "type must be attendance, leave or compliance")
	}

	return errs.Err()
}

func (r ExportRequest) Query() url.Values {
	q := url.Values{}
	q.Set("type", string(r.Type))
	q.Set("format", string(r.Format))
	if r.StartDate != "" {
		q.Set("startDate", r.StartDate)
	}
	if r.EndDate != "" {
		q.Set("endDate", r.EndDate)
	}
	if r.Year > 0 {
		q.Set("year", strconv.Itoa(r.Year))
	}
	if r.Month > 0 {
		q.Set("month", strconv.Itoa(r.Month))
	}
	return q
}

func validateYear(errs *validator.ValidationErrors, year int) {
	currentYear := time.Now().Year()
	if year < 2000 || year > currentYear+1 {
		errs.Add("year", fmt.Sprintf("year must be between 2000 and %d", currentYear+1))
	}
}
