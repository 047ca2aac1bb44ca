package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/valheimctl/cmd/valheimctl/handlers"
)

// Destroy returns the destroy command.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the game server stack",
		Long: `Destroy deletes the CloudFormation stack and waits until it is gone.

The file system holding the world save is deleted with the stack.
Back up the world first if you want to keep it.

Example:
  valheimctl destroy -c valheim.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	configFlag(cmd, &configPath)

	return cmd
}
