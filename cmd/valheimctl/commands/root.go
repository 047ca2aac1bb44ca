// Package commands defines the CLI command structure and flag bindings.
//
// Commands parse flags and delegate to the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/valheimctl/cmd/valheimctl/handlers"
	"github.com/imamik/valheimctl/internal/logging"
)

// Root returns the root command for the valheimctl CLI.
func Root() *cobra.Command {
	var (
		verbose     bool
		logJSON     bool
		endpointURL string
	)

	cmd := &cobra.Command{
		Use:           "valheimctl",
		Short:         "Run a dedicated Valheim server on AWS Fargate",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.New(logging.Options{Verbose: verbose, JSON: logJSON, Output: cmd.ErrOrStderr()})
			ctx := logging.IntoContext(cmd.Context(), logger)
			ctx = handlers.WithEndpoint(ctx, endpointURL)
			cmd.SetContext(ctx)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	cmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON even on a terminal")
	cmd.PersistentFlags().StringVar(&endpointURL, "endpoint-url", "", "Override the AWS endpoint (e.g., LocalStack)")

	cmd.AddCommand(Init())
	cmd.AddCommand(Synth())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Outputs())
	cmd.AddCommand(Password())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// configFlag binds the shared --config flag.
func configFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "config", "c", "", "Path to config file (default: valheim.yaml in this or a parent directory)")
}
