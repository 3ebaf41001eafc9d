// Package cli is the terminal client. Every invocation drives one client
// instance whose session outlives the process in a local file.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/hris-console-go/internal/app"
)

// Starter builds the client instance used by the invoked command. It is
// called once per process, before the command runs.
type Starter func(ctx context.Context) (*app.Instance, error)

type runtime struct {
	start Starter
	inst  *app.Instance
	json  bool
}

// failer is the failure surface shared by every feature store.
type failer interface {
	Error() string
	FieldErrors() map[string]string
}

func NewRootCommand(start Starter) *cobra.Command {
	rt := &runtime{start: start}

	root := &cobra.Command{
		Use:           "hrisctl",
		Short:         "Attendance, leave and reporting from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.inst != nil {
				return nil
			}
			inst, err := rt.start(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to start client: %w", err)
			}
			rt.inst = inst
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&rt.json, "json", false, "print results as JSON")

	root.AddCommand(
		newLoginCommand(rt),
		newLogoutCommand(rt),
		newWhoamiCommand(rt),
		newRegisterCommand(rt),
		newVerifyEmailCommand(rt),
		newClockInCommand(rt),
		newClockOutCommand(rt),
		newTodayCommand(rt),
		newAttendanceCommand(rt),
		newLeaveCommand(rt),
		newCompanyCommand(rt),
		newReportCommand(rt),
	)
	return root
}

// print writes v as JSON with --json, otherwise renders it with text.
func (rt *runtime) print(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if rt.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

// failure turns the last store failure into the command error.
func failure(s failer) error {
	msg := s.Error()
	if msg == "" {
		msg = "request failed"
	}

	fields := s.FieldErrors()
	if len(fields) == 0 {
		return errors.New(msg)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return fmt.Errorf("%s (%s)", msg, strings.Join(parts, "; "))
}

// optional returns a pointer to the flag value when the flag was set.
func optional(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
