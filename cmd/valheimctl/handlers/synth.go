package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/provisioning"
)

// Template formats accepted by Synth.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Synth renders the stack template for the config at configPath. The
// template goes to outputPath, or to w when outputPath is empty.
func Synth(ctx context.Context, configPath, outputPath, format string, w io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	body, err := renderTemplate(ctx, cfg, format)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = w.Write(body)
		return err
	}
	if err := os.WriteFile(outputPath, body, 0600); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	fmt.Fprintln(w, successStyle.Render("Template written to "+outputPath))
	return nil
}

func renderTemplate(ctx context.Context, cfg *config.Config, format string) ([]byte, error) {
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}

	var resolver provisioning.NetworkResolver
	if cfg.UsesExistingVPC() && !cfg.NetworkComplete() {
		awsCfg, err := awsConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		resolver = newNetworkResolver(awsCfg)
	}

	network, err := provisioning.ResolveNetwork(ctx, cfg, resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network: %w", err)
	}

	stack, _, err := provisioning.Synthesize(cfg, network)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize: %w", err)
	}

	if format == FormatYAML {
		return stack.Template().YAML()
	}
	body, err := stack.Template().JSON()
	if err != nil {
		return nil, err
	}
	return append(body, '\n'), nil
}
