package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/valheimctl/cmd/valheimctl/handlers"
)

// Password returns the password command.
func Password() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Print the server password",
		Long: `Password reads the server password from Secrets Manager, using the
secret named in the stack outputs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Password(cmd.Context(), configPath, cmd.OutOrStdout())
		},
	}

	configFlag(cmd, &configPath)

	return cmd
}
