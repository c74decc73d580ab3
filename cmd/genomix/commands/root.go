// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Root returns the root command for the genomix CLI.
func Root() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "genomix",
		Short: "Provision cloud infrastructure for multi-party genomic studies",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(Create())
	cmd.AddCommand(Setup())
	cmd.AddCommand(Restart())
	cmd.AddCommand(Delete())
	cmd.AddCommand(Stop())
	cmd.AddCommand(Version())

	return cmd
}
