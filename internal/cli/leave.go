package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/leave"
)

func newLeaveCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Leave requests",
	}
	cmd.AddCommand(
		newLeaveCreateCommand(rt),
		newLeaveListCommand(rt),
		newLeaveEditCommand(rt),
		newLeaveCancelCommand(rt),
		newLeaveDecisionCommand(rt, "approve", leave.StatusApproved),
		newLeaveDecisionCommand(rt, "reject", leave.StatusRejected),
	)
	return cmd
}

func newLeaveCreateCommand(rt *runtime) *cobra.Command {
	var req leave.CreateRequest
	var leaveType string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a leave request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.LeaveType = leave.Type(leaveType)
			store := rt.inst.Leave
			if !store.CreateRequest(cmd.Context(), req) {
				return failure(store)
			}
			return printRequests(rt, cmd, store.Requests()[:1])
		},
	}
	cmd.Flags().StringVar(&req.StartDate, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&leaveType, "type", string(leave.TypePaid), "PAID, UNPAID, SICK or OTHER")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "reason shown to the approver")
	return cmd
}

func newLeaveListCommand(rt *runtime) *cobra.Command {
	var all bool
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leave requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := rt.inst.Leave
			ok := false
			if all {
				ok = store.FetchAllRequests(cmd.Context(), leave.Status(status))
			} else {
				ok = store.FetchMyRequests(cmd.Context())
			}
			if !ok {
				return failure(store)
			}
			return printRequests(rt, cmd, store.Requests())
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "every request of the company (admin)")
	cmd.Flags().StringVar(&status, "status", "", "only this status (with --all)")
	return cmd
}

func newLeaveEditCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a pending leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := rt.inst.Leave
			if !store.FetchMyRequests(cmd.Context()) {
				return failure(store)
			}
			req := leave.UpdateRequest{
				StartDate: optional(cmd, "start"),
				EndDate:   optional(cmd, "end"),
				Reason:    optional(cmd, "reason"),
			}
			if !store.UpdateRequest(cmd.Context(), args[0], req) {
				return failure(store)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Leave request %s updated\n", args[0])
			return nil
		},
	}
	cmd.Flags().String("start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "last day (YYYY-MM-DD)")
	cmd.Flags().String("reason", "", "reason shown to the approver")
	return cmd
}

func newLeaveCancelCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Withdraw a pending leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := rt.inst.Leave
			if !store.FetchMyRequests(cmd.Context()) {
				return failure(store)
			}
			if !store.CancelRequest(cmd.Context(), args[0]) {
				return failure(store)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Leave request %s cancelled\n", args[0])
			return nil
		},
	}
}

// newLeaveDecisionCommand loads the company requests first, so a request
// that is already decided is refused without a backend call.
func newLeaveDecisionCommand(rt *runtime, use string, status leave.Status) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: fmt.Sprintf("Mark a pending leave request %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := rt.inst.Leave
			if !store.FetchAllRequests(cmd.Context(), "") {
				return failure(store)
			}
			update := leave.StatusUpdate{Status: status, Comment: optional(cmd, "comment")}
			if !store.UpdateStatus(cmd.Context(), args[0], update) {
				return failure(store)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Leave request %s %s\n", args[0], status)
			return nil
		},
	}
	cmd.Flags().String("comment", "", "comment for the requester")
	return cmd
}

func printRequests(rt *runtime, cmd *cobra.Command, requests []leave.Request) error {
	return rt.print(cmd, requests, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tTYPE\tFROM\tTO\tDAYS\tSTATUS\tREASON")
		for i := range requests {
			req := &requests[i]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				req.ID, req.LeaveType, req.StartDate, req.EndDate, req.Days(), req.Status, req.Reason)
		}
	})
}
