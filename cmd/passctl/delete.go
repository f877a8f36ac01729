package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mitrajit-55/password-manager/internal/client"
)

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a password record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := opts.openStore()
			if err := store.Initialize(cmd.Context()); err != nil {
				return err
			}
			defer store.Close()

			confirm := client.ConfirmerFunc(func(prompt string) bool {
				if yes {
					return true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return false
				}
				answer := strings.ToLower(strings.TrimSpace(line))
				return answer == "y" || answer == "yes"
			})
			notify := client.NotifierFunc(func(message string) {
				fmt.Fprintln(cmd.OutOrStdout(), message)
			})

			coord := client.NewCoordinator(store, client.NewCache(), confirm, notify)
			deleted, err := coord.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
