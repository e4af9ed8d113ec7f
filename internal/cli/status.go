package cli

import (
	"github.com/MKhiriev/penny-sync/internal/store"
	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show the sync state of every resource",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, rootOpts)
		},
	}
}

func runStatus(cmd *cobra.Command, opts *RootOptions) error {
	cfg, log, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}

	storages, err := store.NewStorages(cmd.Context(), cfg.Storage.DB, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer storages.Close()

	states, err := storages.SyncStateRepository.List(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "read sync state", err)
	}
	return newPrinter(opts.Format, cmd.OutOrStdout()).states(states)
}
