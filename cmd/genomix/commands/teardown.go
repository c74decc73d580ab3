package commands

import (
	"github.com/spf13/cobra"

	"github.com/genomix-mpc/genomix/cmd/genomix/handlers"
)

// Restart returns the command for resetting a study to its pre-protocol
// state. Instances and the firewall are removed; networks, subnets, and
// peerings stay in place.
func Restart() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "restart <study-id>",
		Short: "Remove a study's instances and firewall, keeping the network fabric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Restart(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: genomix.yaml)")

	return cmd
}

// Delete returns the command for tearing down a study completely: every
// cloud resource, its authentication keys, and the study record itself.
func Delete() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <study-id>",
		Short: "Tear down a study's entire cloud footprint and remove its record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Delete(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: genomix.yaml)")

	return cmd
}

// Stop returns the command for powering off a study's instances without
// touching any other resource.
func Stop() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stop <study-id>",
		Short: "Power off a study's instances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Stop(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: genomix.yaml)")

	return cmd
}
