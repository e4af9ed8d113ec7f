package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewDaemonCommand creates the daemon command.
func NewDaemonCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Synchronize on a schedule until interrupted",
		Long: `Run a forced full synchronization, then incremental runs every
--sync-interval and a forced full run daily at --full-reload-at.
When --address is set a status server exposes /api/status, /api/health
and /api/version/. SIGINT or SIGTERM stops the daemon gracefully.

Example:
  pennysync daemon --sync-interval 10m --address :8080`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, rootOpts)
		},
	}
}

func runDaemon(cmd *cobra.Command, opts *RootOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cfg, log, err := opts.openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info().
		Dur("sync_interval", cfg.Workers.SyncInterval).
		Str("full_reload_at", cfg.Workers.FullReloadAt).
		Str("version", orNA(opts.BuildInfo.BuildVersion())).
		Msg("daemon started")

	if err = a.Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "daemon stopped", err)
	}

	log.Info().Msg("daemon stopped")
	return nil
}
