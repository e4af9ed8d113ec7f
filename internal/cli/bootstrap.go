package cli

import (
	"github.com/MKhiriev/penny-sync/internal/app"
	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/spf13/cobra"
)

// loadConfig merges every configuration source and builds the command
// logger. Logs go to stderr so that stdout only carries command output.
func (o *RootOptions) loadConfig(cmd *cobra.Command) (*config.StructuredConfig, *logger.Logger, error) {
	cfg, err := config.GetStructuredConfig(o.flags)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid log level", err)
	}

	log := logger.NewWriterLogger("pennysync-"+cmd.Name(), cmd.ErrOrStderr())
	log.Debug().Str("db_driver", cfg.Storage.DB.Driver).Str("base_url", cfg.Remote.BaseURL).Msg("received configs")

	return cfg, log, nil
}

// openApp loads the configuration and opens the local store. remote
// additionally requires an API token.
func (o *RootOptions) openApp(cmd *cobra.Command, remote bool) (*app.App, *config.StructuredConfig, *logger.Logger, error) {
	cfg, log, err := o.loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	if remote {
		if err = cfg.ValidateRemoteAccess(); err != nil {
			return nil, nil, nil, WrapExitError(ExitCommandError, "cannot reach the API", err)
		}
	}

	a, err := app.NewApp(cmd.Context(), cfg, o.BuildInfo, log)
	if err != nil {
		return nil, nil, nil, WrapExitError(ExitCommandError, "startup failed", err)
	}
	return a, cfg, log, nil
}
