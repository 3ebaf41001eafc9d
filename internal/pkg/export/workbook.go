// Package export renders cached reports into local spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/report"
)

const (
	ComplianceSheet = "Compliance"
	SummarySheet    = "Summary"
)

var complianceHeaders = []any{
	"User ID", "Name", "Overtime Hours", "Overtime Limit Exceeded", "Break Violations",
	"Holiday Work Days", "Night Work Hours", "Paid Leave Taken", "Paid Leave Required", "Paid Leave Compliant",
}

// WriteComplianceWorkbook writes the compliance report as an xlsx workbook
// with one row per employee and a company summary sheet. Values are written
// as received.
func WriteComplianceWorkbook(w io.Writer, rep *report.ComplianceReport) error {
	if rep == nil {
		return report.ErrReportNotAvailable
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ComplianceSheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	if err := f.SetSheetRow(ComplianceSheet, "A1", &complianceHeaders); err != nil {
		return fmt.Errorf("error writing headers: %w", err)
	}
	for i, e := range rep.ComplianceReport {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			e.UserID, e.UserName, e.OvertimeHours, e.OvertimeLimitExceeded, e.BreakViolations,
			e.HolidayWorkDays, e.NightWorkHours, e.PaidLeaveTaken, e.PaidLeaveRequired, e.PaidLeaveCompliant,
		}
		if err := f.SetSheetRow(ComplianceSheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("error creating summary sheet: %w", err)
	}
	s := rep.CompanySummary
	summary := [][]any{
		{"Period", fmt.Sprintf("%04d-%02d", rep.Period.Year, rep.Period.Month)},
		{"Start Date", rep.Period.StartDate},
		{"End Date", rep.Period.EndDate},
		{"Total Employees", s.TotalEmployees},
		{"Total Overtime Hours", s.TotalOvertimeHours},
		{"Average Overtime Hours", s.AverageOvertimeHours},
		{"Overtime Violations", s.OvertimeViolations},
		{"Break Violations", s.BreakViolations},
		{"Holiday Work Days", s.HolidayWorkDays},
		{"Night Work Hours", s.NightWorkHours},
		{"Paid Leave Shortfalls", s.PaidLeaveShortfalls},
	}
	for i, row := range summary {
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("error writing summary: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}
	return nil
}
