package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/attendance"
)

func newClockInCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock-in",
		Short: "Clock in for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := attendance.ClockInRequest{
				Location: optional(cmd, "location"),
				Notes:    optional(cmd, "notes"),
			}
			store := rt.inst.Attendance
			if !store.ClockIn(cmd.Context(), req) {
				return failure(store)
			}
			return printToday(rt, cmd, store.Today())
		},
	}
	cmd.Flags().String("location", "", "where you are working from")
	cmd.Flags().String("notes", "", "free text note")
	return cmd
}

func newClockOutCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock-out",
		Short: "Clock out for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := rt.inst.Attendance
			// Loading today first lets a missing clock-in fail locally
			if !store.FetchToday(cmd.Context()) {
				return failure(store)
			}
			if !store.ClockOut(cmd.Context(), attendance.ClockOutRequest{Notes: optional(cmd, "notes")}) {
				return failure(store)
			}
			return printToday(rt, cmd, store.Today())
		},
	}
	cmd.Flags().String("notes", "", "free text note")
	return cmd
}

func newTodayCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's attendance status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := rt.inst.Attendance
			if !store.FetchToday(cmd.Context()) {
				return failure(store)
			}
			return printToday(rt, cmd, store.Today())
		},
	}
}

func newAttendanceCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Attendance records",
	}

	var filter attendance.ListFilter
	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List attendance records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := rt.inst.Attendance
			ok := false
			if all {
				ok = store.FetchAllRecords(cmd.Context(), filter)
			} else {
				ok = store.FetchRecords(cmd.Context(), filter)
			}
			if !ok {
				return failure(store)
			}

			records := store.Records()
			return rt.print(cmd, records, func(w io.Writer) {
				fmt.Fprintln(w, "DATE\tUSER\tIN\tOUT\tHOURS")
				for i := range records {
					rec := &records[i]
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						rec.Date,
						rec.UserID,
						attendance.FormatClock(&rec.ClockInTime, nil),
						attendance.FormatClock(rec.ClockOutTime, nil),
						attendance.FormatWorkingHours(rec),
					)
				}
				fmt.Fprintf(w, "total %s\n", attendance.FormatDuration(attendance.TotalWorkingHours(records)))
				if p := store.Pagination(); p != nil {
					fmt.Fprintf(w, "page %d/%d, %d records\n", p.Page, p.TotalPages, p.Total)
				}
			})
		},
	}
	list.Flags().StringVar(&filter.StartDate, "from", "", "first day (YYYY-MM-DD)")
	list.Flags().StringVar(&filter.EndDate, "to", "", "last day (YYYY-MM-DD)")
	list.Flags().StringVar(&filter.UserID, "user", "", "only this user (with --all)")
	list.Flags().IntVar(&filter.Page, "page", 0, "page number")
	list.Flags().IntVar(&filter.Limit, "limit", 0, "page size")
	list.Flags().BoolVar(&all, "all", false, "every user of the company (admin)")

	cmd.AddCommand(list)
	return cmd
}

func printToday(rt *runtime, cmd *cobra.Command, today attendance.TodayStatus) error {
	return rt.print(cmd, today, func(w io.Writer) {
		fmt.Fprintf(w, "Clocked in:\t%t\n", today.IsClockedIn)
		fmt.Fprintf(w, "Clocked out:\t%t\n", today.IsClockedOut)
		if today.Record == nil {
			return
		}
		fmt.Fprintf(w, "In:\t%s\n", attendance.FormatClock(&today.Record.ClockInTime, nil))
		fmt.Fprintf(w, "Out:\t%s\n", attendance.FormatClock(today.Record.ClockOutTime, nil))
		fmt.Fprintf(w, "Worked:\t%s\n", attendance.FormatWorkingHours(today.Record))
	})
}
