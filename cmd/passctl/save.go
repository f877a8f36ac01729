package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mitrajit-55/password-manager/internal/client"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

func newSaveCommand(opts *rootOptions) *cobra.Command {
	var (
		id     string
		fields vault.Fields
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a password record",
		Long: `Save a password record. Without --id a new record is created;
with --id the existing record is updated in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := opts.openStore()
			if err := store.Initialize(cmd.Context()); err != nil {
				return err
			}
			defer store.Close()

			cache := client.NewCache()
			notify := client.NotifierFunc(func(message string) {
				fmt.Fprintln(cmd.OutOrStdout(), message)
			})
			coord := client.NewCoordinator(store, cache, nil, notify)
			form := client.NewFormController(coord, cache, false)

			if id != "" {
				if err := coord.Refresh(cmd.Context()); err != nil {
					return err
				}
				if !form.BeginEdit(cmd.Context(), id) {
					return fmt.Errorf("no record with id %q", id)
				}
			}

			form.SetFields(fields)
			if err := form.Commit(cmd.Context()); err != nil {
				if errors.Is(err, vault.ErrInvalidFields) {
					// The notifier already printed the admission message.
					return fmt.Errorf("every field needs more than %d characters", vault.MinFieldLength)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "id of an existing record to update")
	cmd.Flags().StringVar(&fields.Site, "site", "", "site URL")
	cmd.Flags().StringVar(&fields.Username, "username", "", "username")
	cmd.Flags().StringVar(&fields.Password, "password", "", "password")
	return cmd
}
