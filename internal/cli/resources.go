package cli

import (
	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/spf13/cobra"
)

// NewResourcesCommand creates the resources command.
func NewResourcesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "resources",
		Short:         "List the resource catalog grouped by class",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := rootOpts.loadConfig(cmd)
			if err != nil {
				return err
			}

			catalog, err := config.LoadCatalog(cfg.CatalogPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "load catalog", err)
			}
			return newPrinter(rootOpts.Format, cmd.OutOrStdout()).catalog(catalog)
		},
	}
}
