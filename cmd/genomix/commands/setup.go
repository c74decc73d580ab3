package commands

import (
	"github.com/spf13/cobra"

	"github.com/genomix-mpc/genomix/cmd/genomix/handlers"
)

// Setup returns the command for provisioning a study's cloud footprint.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: genomix.yaml)
func Setup() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "setup <study-id>",
		Short: "Provision networks, subnets, peerings, and instances for a study",
		Long: `Provision the full cloud footprint of a study.

For every participating project this creates the study network and its
ingress firewall, removes conflicting subnets and peerings, creates the
role subnet, joins the peering mesh, and starts one protocol VM per
participant.

Examples:
  # Provision the study using genomix.yaml in the current directory
  genomix setup 5f0c1b2a

  # Provision using a specific config file
  genomix setup 5f0c1b2a -c production.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Setup(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: genomix.yaml)")

	return cmd
}
