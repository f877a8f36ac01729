package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func newCopyCommand(opts *rootOptions) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a record field to the clipboard",
		Args:  cobra.ExactArgs(1),
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
			for _, rec := range records {
				if rec.ID != args[0] {
					continue
				}
				var value string
				switch field {
				case "site":
					value = rec.Site
				case "username":
					value = rec.Username
				case "password":
					value = rec.Password
				default:
					return fmt.Errorf("unknown field %q: must be site, username or password", field)
				}
				if err := clipboard.WriteAll(value); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Copied to clipboard!")
				return nil
			}
			return fmt.Errorf("no record with id %q", args[0])
		},
	}

	cmd.Flags().StringVar(&field, "field", "password", "field to copy (site|username|password)")
	return cmd
}
