package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/imamik/valheimctl/internal/logging"
	"github.com/imamik/valheimctl/internal/provisioning"
)

// Factory functions for dependency injection in tests.
var newProvisioningContext = provisioning.NewContext

// Deploy creates or updates the stack and prints its outputs.
func Deploy(ctx context.Context, configPath string, w io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	clients, err := newClients(ctx, cfg)
	if err != nil {
		return err
	}

	pCtx := newProvisioningContext(ctx, cfg, clients, newObserver(ctx))
	runErr := provisioning.RunPhases(pCtx, provisioning.DeployPhases())
	writeMetrics(logging.FromContext(ctx), pCtx)
	if runErr != nil {
		return runErr
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, successStyle.Render("Deployment complete"))
	fmt.Fprintln(w)
	if pCtx.State.Stack != nil {
		printOutputs(w, cfg, pCtx.State.Stack)
	}
	return nil
}

// writeMetrics exports run metrics when a metrics file is configured.
// Failing to write them does not fail the run.
func writeMetrics(log logr.Logger, pCtx *provisioning.Context) {
	path := pCtx.Config.Deploy.MetricsFile
	if path == "" {
		return
	}
	if err := pCtx.Metrics.WriteToTextfile(path); err != nil {
		log.Error(err, "Failed to write metrics", "path", path)
	}
}
