package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/valheimctl/cmd/valheimctl/handlers"
)

// Deploy returns the deploy command.
func Deploy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create or update the game server stack",
		Long: `Deploy creates the CloudFormation stack, or updates it when it exists,
and waits until CloudFormation reports a final status. Stack events are
logged as they arrive. On success the stack outputs are printed.

Templates larger than 51,200 bytes are staged in deploy.bucket.

Example:
  valheimctl deploy -c valheim.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath, cmd.OutOrStdout())
		},
	}

	configFlag(cmd, &configPath)

	return cmd
}
