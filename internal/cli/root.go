// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"
	"slices"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/models"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format    string
	BuildInfo models.AppBuildInfo

	flags *config.Flags
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the pennysync root command.
func NewRootCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	opts := &RootOptions{BuildInfo: buildInfo}

	cmd := &cobra.Command{
		Use:   "pennysync",
		Short: "Mirror a Pennylane company into a local SQL database",
		Long: `pennysync keeps a local SQLite or PostgreSQL database consistent with the
Pennylane accounting API. Changelog-backed resources are synchronized
incrementally, the others are reloaded in full or through export jobs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	opts.flags = config.BindFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewDaemonCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewResourcesCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}
