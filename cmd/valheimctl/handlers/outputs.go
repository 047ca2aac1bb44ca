package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
)

// Outputs prints the stack outputs, either styled or as a JSON object.
func Outputs(ctx context.Context, configPath string, asJSON bool, w io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	stack, err := describeStack(ctx, cfg)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outputMap(stack))
	}
	printOutputs(w, cfg, stack)
	return nil
}

func describeStack(ctx context.Context, cfg *config.Config) (*cloudformation.Stack, error) {
	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	stack, err := newStackManager(awsCfg).Describe(ctx, cfg.StackName())
	if err != nil {
		if cloudformation.IsStackNotFound(err) {
			return nil, fmt.Errorf("stack %s is not deployed in %s: %w", cfg.StackName(), cfg.Region, err)
		}
		return nil, fmt.Errorf("failed to describe stack: %w", err)
	}
	return stack, nil
}
