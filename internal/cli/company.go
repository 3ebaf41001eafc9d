package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCompanyCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Companies (super admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := rt.inst.Company
			if !store.FetchCompanies(cmd.Context()) {
				return failure(store)
			}

			companies := store.Companies()
			selected := rt.inst.Session.CompanyPublicID()
			return rt.print(cmd, companies, func(w io.Writer) {
				fmt.Fprintln(w, "\tID\tPUBLIC ID\tNAME")
				for _, c := range companies {
					mark := ""
					if c.PublicID == selected {
						mark = "*"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mark, c.ID, c.PublicID, c.Name)
				}
			})
		},
	}

	switchCmd := &cobra.Command{
		Use:   "switch ID",
		Short: "Act on behalf of another company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := rt.inst.Company
			if !store.SwitchCompany(cmd.Context(), args[0]) {
				return failure(store)
			}
			c := rt.inst.Session.Snapshot().Company
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s (%s)\n", c.Name, c.PublicID)
			return nil
		},
	}

	cmd.AddCommand(list, switchCmd)
	return cmd
}
