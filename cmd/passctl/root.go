package main

import (
	"github.com/spf13/cobra"

	"github.com/mitrajit-55/password-manager/internal/client"
	"github.com/mitrajit-55/password-manager/internal/storage"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	// Server is the password service base URL used by the remote mode.
	Server string
	// Local switches to the on-disk blob instead of the HTTP service.
	Local bool
	// DataDir is where the local blob lives.
	DataDir string
}

// openStore picks the persistence variant the flags ask for. Remote is
// the default; --local reads and writes the blob directly.
func (o *rootOptions) openStore() vault.Store {
	if o.Local {
		return storage.NewFileStore(o.DataDir)
	}
	return client.NewRemoteVault(o.Server)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "passctl",
		Short: "Manage stored passwords",
		Long: `passctl manages password records against either a running
password service (the default) or a local data directory (--local).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Server, "server", "http://localhost:3000", "password service base URL")
	cmd.PersistentFlags().BoolVar(&opts.Local, "local", false, "use the local data directory instead of a server")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "./data", "data directory for --local")

	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newSaveCommand(opts))
	cmd.AddCommand(newDeleteCommand(opts))
	cmd.AddCommand(newCopyCommand(opts))
	cmd.AddCommand(newTUICommand(opts))

	return cmd
}
