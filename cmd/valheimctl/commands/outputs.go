package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/valheimctl/cmd/valheimctl/handlers"
)

// Outputs returns the outputs command.
func Outputs() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "Show the stack outputs",
		Long: `Outputs prints the address players connect to, the password secret,
the cluster and service names and the command that starts the server.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Outputs(cmd.Context(), configPath, asJSON, cmd.OutOrStdout())
		},
	}

	configFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print outputs as a JSON object")

	return cmd
}
