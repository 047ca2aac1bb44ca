package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/valheimctl/cmd/valheimctl/handlers"
	"github.com/imamik/valheimctl/internal/config"
)

// Init returns the command for interactively creating a configuration.
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a server configuration",
		Long: `Interactively create a server configuration file.

The wizard asks for:

  - Stack name and AWS region
  - Task size and game ports
  - Server and world name
  - Password source (generated or an existing secret)
  - CloudWatch logging and Container Insights`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file without asking")

	return cmd
}
