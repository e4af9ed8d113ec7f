package cli

import (
	"github.com/MKhiriev/penny-sync/internal/adapter"
	"github.com/MKhiriev/penny-sync/internal/service"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "check",
		Short:         "Test the API connection and token",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, rootOpts)
		},
	}
}

func runCheck(cmd *cobra.Command, opts *RootOptions) error {
	cfg, log, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err = cfg.ValidateRemoteAccess(); err != nil {
		return WrapExitError(ExitCommandError, "cannot reach the API", err)
	}

	client, err := adapter.NewClient(cfg.Remote, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "create API client", err)
	}

	profile, err := service.NewConnectionService(client, log).Check(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "connection failed", err)
	}
	return newPrinter(opts.Format, cmd.OutOrStdout()).profile(profile)
}
