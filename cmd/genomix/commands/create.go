package commands

import (
	"github.com/spf13/cobra"

	"github.com/genomix-mpc/genomix/cmd/genomix/handlers"
)

// Create returns the create command.
func Create() *cobra.Command {
	var (
		owner        string
		studyType    string
		participants []string
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a study record",
		Long: `Create registers a new study and prints its generated identifier.

Participants join with empty personal parameters; each must configure a
cloud project before the study can be provisioned.

Examples:
  # Create a two-participant GWAS study
  genomix create "UK Biobank pilot" --owner alice --participant alice --participant bob`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Create(cmd.Context(), args[0], studyType, owner, participants)
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Participant ID of the study owner")
	cmd.Flags().StringVar(&studyType, "type", "SF-GWAS", "Study protocol type")
	cmd.Flags().StringArrayVar(&participants, "participant", nil, "Participant ID (repeatable)")

	return cmd
}
