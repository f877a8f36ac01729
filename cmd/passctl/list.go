package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := opts.openStore()
			if err := store.Initialize(cmd.Context()); err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No passwords to show")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSITE\tUSERNAME\tPASSWORD")
			for _, rec := range records {
				password := "********"
				if show {
					password = rec.Password
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.ID, rec.Site, rec.Username, password)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print passwords in clear text")
	return cmd
}
