package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/export"
)

func newReportCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Company reports (admin)",
	}
	cmd.AddCommand(
		newAttendanceReportCommand(rt),
		newLeaveReportCommand(rt),
		newComplianceReportCommand(rt),
		newExportCommand(rt),
	)
	return cmd
}

func newAttendanceReportCommand(rt *runtime) *cobra.Command {
	var req report.AttendanceReportRequest

	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Working time per user for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := rt.inst.Report
			if !store.FetchAttendanceReport(cmd.Context(), req) {
				return failure(store)
			}

			rep := store.AttendanceReport()
			return rt.print(cmd, rep, func(w io.Writer) {
				fmt.Fprintf(w, "%s to %s\n", rep.StartDate, rep.EndDate)
				fmt.Fprintln(w, "USER\tDAYS\tHOURS\tAVERAGE\tOPEN")
				for _, e := range rep.Entries {
					fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%d\n", e.UserName, e.WorkDays, e.TotalWorkHours, e.AverageWorkHours, e.OpenRecords)
				}
			})
		},
	}
	cmd.Flags().StringVar(&req.StartDate, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "to", "", "last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.UserID, "user", "", "only this user")
	return cmd
}

func newLeaveReportCommand(rt *runtime) *cobra.Command {
	var req report.LeaveReportRequest

	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Leave usage per user for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := rt.inst.Report
			if !store.FetchLeaveReport(cmd.Context(), req) {
				return failure(store)
			}

			rep := store.LeaveReport()
			return rt.print(cmd, rep, func(w io.Writer) {
				fmt.Fprintf(w, "Year %d\n", rep.Year)
				fmt.Fprintln(w, "USER\tPAID\tUNPAID\tSICK\tOTHER\tTOTAL\tPENDING")
				for _, e := range rep.Entries {
					fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%d\n", e.UserName, e.PaidDays, e.UnpaidDays, e.SickDays, e.OtherDays, e.TotalDays, e.Pending)
				}
			})
		},
	}
	cmd.Flags().IntVar(&req.Year, "year", 0, "calendar year")
	return cmd
}

func newComplianceReportCommand(rt *runtime) *cobra.Command {
	var req report.ComplianceRequest
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Labour compliance figures for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := rt.inst.Report
			if !store.FetchCompanyComplianceReport(cmd.Context(), req) {
				return failure(store)
			}
			rep := store.ComplianceReport()

			if xlsxPath != "" {
				if err := writeWorkbook(xlsxPath, rep); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", xlsxPath)
				return nil
			}

			return rt.print(cmd, rep, func(w io.Writer) {
				s := rep.CompanySummary
				fmt.Fprintf(w, "Period:\t%s to %s\n", rep.Period.StartDate, rep.Period.EndDate)
				fmt.Fprintf(w, "Employees:\t%d\n", s.TotalEmployees)
				fmt.Fprintf(w, "Overtime hours:\t%.2f (avg %.2f)\n", s.TotalOvertimeHours, s.AverageOvertimeHours)
				fmt.Fprintf(w, "Overtime violations:\t%d\n", s.OvertimeViolations)
				fmt.Fprintf(w, "Break violations:\t%d\n", s.BreakViolations)
				fmt.Fprintf(w, "Paid leave shortfalls:\t%d\n", s.PaidLeaveShortfalls)
				fmt.Fprintln(w, "USER\tOVERTIME\tLIMIT\tBREAKS\tHOLIDAY\tNIGHT\tPAID LEAVE")
				for _, e := range rep.ComplianceReport {
					limit := "ok"
					if e.OvertimeLimitExceeded {
						limit = "EXCEEDED"
					}
					fmt.Fprintf(w, "%s\t%.2f\t%s\t%d\t%d\t%.2f\t%g/%g\n",
						e.UserName, e.OvertimeHours, limit, e.BreakViolations, e.HolidayWorkDays, e.NightWorkHours, e.PaidLeaveTaken, e.PaidLeaveRequired)
				}
			})
		},
	}
	cmd.Flags().IntVar(&req.Year, "year", 0, "calendar year")
	cmd.Flags().IntVar(&req.Month, "month", 0, "month 1-12")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the report to this workbook instead of printing it")
	return cmd
}

func newExportCommand(rt *runtime) *cobra.Command {
	var req report.ExportRequest
	var exportType, format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a backend-generated report file",
		Long:  "Download a report file. Without --out only the file URL is printed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Type = report.ExportType(exportType)
			req.Format = report.ExportFormat(format)
			store := rt.inst.Report

			if out == "" {
				target, err := store.ExportURL(req)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), target)
				return nil
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			ok := store.Export(cmd.Context(), req, f)
			if err := f.Close(); err != nil && ok {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			if !ok {
				_ = os.Remove(out)
				return failure(store)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&exportType, "type", "", "attendance, leave or compliance")
	cmd.Flags().StringVar(&format, "format", string(report.FormatCSV), "csv, xlsx or pdf")
	cmd.Flags().StringVar(&req.StartDate, "from", "", "first day (attendance)")
	cmd.Flags().StringVar(&req.EndDate, "to", "", "last day (attendance)")
	cmd.Flags().IntVar(&req.Year, "year", 0, "calendar year (leave, compliance)")
	cmd.Flags().IntVar(&req.Month, "month", 0, "month 1-12 (compliance)")
	cmd.Flags().StringVar(&out, "out", "", "file to write")
	return cmd
}

func writeWorkbook(path string, rep *report.ComplianceReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteComplianceWorkbook(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
