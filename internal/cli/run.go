package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/service"
	"github.com/spf13/cobra"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Full      bool
	Resources []string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one synchronization pass",
		Long: `Synchronize every resource of the catalog once, or only the ones named
with --resource. Changelog resources are updated incrementally unless --full
is given or they have never been synchronized.

The exit code is 1 when at least one resource failed.

Example:
  pennysync run
  pennysync run --full --resource customers --resource products`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Full, "full", false, "reload every selected resource in full")
	cmd.Flags().StringSliceVarP(&opts.Resources, "resource", "r", nil, "resource to synchronize (repeatable)")

	return cmd
}

func runSync(cmd *cobra.Command, opts *RunOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, _, log, err := opts.openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.Sync(ctx, service.SyncOptions{Force: opts.Full, Resources: opts.Resources})
	if err != nil {
		if errors.Is(err, config.ErrUnknownResource) {
			return WrapExitError(ExitCommandError, "invalid --resource", err)
		}
		log.Err(err).Str("func", "cli.runSync").Msg("sync run failed")
		return WrapExitError(ExitFailure, "sync run failed", err)
	}

	if err = newPrinter(opts.Format, cmd.OutOrStdout()).report(report); err != nil {
		return WrapExitError(ExitFailure, "write report", err)
	}

	if failed := report.Failed(); len(failed) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d resources failed", len(failed), len(report.Results)))
	}
	return nil
}
