package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/gameserver"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
)

// ErrNoPasswordSecret is returned when neither the stack nor the config
// names the password secret.
var ErrNoPasswordSecret = errors.New("no password secret found")

// Password prints the server password stored in Secrets Manager.
func Password(ctx context.Context, configPath string, w io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	secretID, err := passwordSecret(ctx, cfg)
	if err != nil {
		return err
	}

	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return err
	}
	value, err := newSecretReader(awsCfg).Value(ctx, secretID)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprintln(w, value)
	return nil
}

// passwordSecret prefers the secret named by the deployed stack and falls
// back to the configured one.
func passwordSecret(ctx context.Context, cfg *config.Config) (string, error) {
	stack, err := describeStack(ctx, cfg)
	switch {
	case err == nil:
		key := gameserver.OutputKey(cfg.ServerID(), gameserver.OutputServerPasswordSecretArn)
		if arn, ok := stack.Output(key); ok {
			return arn, nil
		}
	case !cloudformation.IsStackNotFound(err):
		return "", err
	}

	if cfg.Password.SecretARN != "" {
		return cfg.Password.SecretARN, nil
	}
	return "", fmt.Errorf("%w for stack %s", ErrNoPasswordSecret, cfg.StackName())
}
