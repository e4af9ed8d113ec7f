package cli

import "github.com/spf13/cobra"

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newPrinter(rootOpts.Format, cmd.OutOrStdout()).buildInfo(rootOpts.BuildInfo)
		},
	}
}
