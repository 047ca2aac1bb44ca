package handlers

import (
	"context"

	"github.com/imamik/valheimctl/internal/logging"
	"github.com/imamik/valheimctl/internal/provisioning"
)

// Destroy deletes the stack and waits until it is gone.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	clients, err := newClients(ctx, cfg)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Info("Destroying game server", "stack", cfg.StackName(), "region", cfg.Region)

	pCtx := newProvisioningContext(ctx, cfg, clients, newObserver(ctx))
	runErr := provisioning.RunPhases(pCtx, provisioning.DestroyPhases())
	writeMetrics(log, pCtx)
	if runErr != nil {
		return runErr
	}

	log.Info("Game server destroyed", "stack", cfg.StackName())
	return nil
}
