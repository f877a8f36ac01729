package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mitrajit-55/password-manager/internal/tui"
)

func newTUICommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit passwords interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := opts.openStore()
			if err := store.Initialize(cmd.Context()); err != nil {
				return err
			}
			defer store.Close()

			// The local blob variant drops a record when editing starts
			// and re-creates it on save; the remote variant edits in
			// place, keeping the id.
			model := tui.New(store, opts.Local)
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}
