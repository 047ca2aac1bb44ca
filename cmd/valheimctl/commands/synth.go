package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/valheimctl/cmd/valheimctl/handlers"
)

// Synth returns the command that prints the CloudFormation template.
func Synth() *cobra.Command {
	var (
		configPath string
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Print the CloudFormation template",
		Long: `Synth renders the CloudFormation template without deploying it.

No AWS access is needed unless the configuration names an existing VPC
without listing its CIDR and subnets.

Example:
  valheimctl synth --format yaml -o template.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Synth(cmd.Context(), configPath, outputPath, format, cmd.OutOrStdout())
		},
	}

	configFlag(cmd, &configPath)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the template to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", handlers.FormatJSON, "Template format: json or yaml")

	return cmd
}
