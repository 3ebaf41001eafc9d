package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
)

func newLoginCommand(rt *runtime) *cobra.Command {
	var req auth.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		Long:  "Log in with email and password. Without --password the password is read from the first line of stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return fmt.Errorf("failed to read password: %w", err)
				}
				req.Password = strings.TrimRight(line, "\r\n")
			}

			if !rt.inst.Auth.Login(cmd.Context(), req) {
				return failure(rt.inst.Auth)
			}
			return printSession(rt, cmd, rt.inst.Session.Snapshot())
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt.inst.Auth.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(rt *runtime) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user, company and capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !rt.inst.Session.IsAuthenticated() {
				return auth.ErrNotAuthenticated
			}
			if refresh {
				if _, ok := rt.inst.Auth.FetchMe(cmd.Context()); !ok {
					return failure(rt.inst.Auth)
				}
			}
			return printSession(rt, cmd, rt.inst.Session.Snapshot())
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the user from the backend")
	return cmd
}

func newRegisterCommand(rt *runtime) *cobra.Command {
	var req auth.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !rt.inst.Auth.Register(cmd.Context(), req) {
				return failure(rt.inst.Auth)
			}
			if !rt.inst.Session.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Registered. Check your email to verify the account.")
				return nil
			}
			return printSession(rt, cmd, rt.inst.Session.Snapshot())
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm-password", "", "password again")
	return cmd
}

func newVerifyEmailCommand(rt *runtime) *cobra.Command {
	var req auth.VerifyEmailRequest

	cmd := &cobra.Command{
		Use:   "verify-email",
		Short: "Confirm an email address with the token from the verification link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !rt.inst.Auth.VerifyEmail(cmd.Context(), req) {
				return failure(rt.inst.Auth)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Email verified")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Token, "token", "", "verification token")
	cmd.Flags().StringVar(&req.UserID, "user-id", "", "user id from the link")
	return cmd
}

type sessionView struct {
	User         *user.User        `json:"user"`
	Company      *company.Company  `json:"company"`
	Capabilities []user.Permission `json:"capabilities"`
}

func printSession(rt *runtime, cmd *cobra.Command, st session.State) error {
	view := sessionView{User: st.User, Company: st.Company, Capabilities: user.Capabilities(st.User.Role)}

	return rt.print(cmd, view, func(w io.Writer) {
		fmt.Fprintf(w, "User:\t%s <%s>\n", st.User.Name, st.User.Email)
		fmt.Fprintf(w, "Role:\t%s\n", st.User.Role)
		if st.Company != nil {
			fmt.Fprintf(w, "Company:\t%s (%s)\n", st.Company.Name, st.Company.PublicID)
		} else {
			fmt.Fprintf(w, "Company:\t-\n")
		}
		perms := make([]string, 0, len(view.Capabilities))
		for _, p := range view.Capabilities {
			perms = append(perms, string(p))
		}
		fmt.Fprintf(w, "Capabilities:\t%s\n", strings.Join(perms, ", "))
	})
}
