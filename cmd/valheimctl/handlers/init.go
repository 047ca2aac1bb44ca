package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/valheimctl/internal/config/wizard"
)

// Factory functions for dependency injection in tests.
var (
	runWizard        = wizard.RunWizard
	fileExists       = wizard.FileExists
	confirmOverwrite = wizard.ConfirmOverwrite
	writeConfig      = wizard.WriteConfig
)

// Init runs the interactive wizard and writes the resulting config file.
func Init(ctx context.Context, outputPath string, force bool) error {
	if !force && fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard cancelled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return err
	}

	printInitSuccess(outputPath, result)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println(titleStyle.Render("valheimctl setup"))
	fmt.Println(hintStyle.Render("Answer a few questions to describe your game server."))
	fmt.Println()
}

func printInitSuccess(path string, result *wizard.WizardResult) {
	fmt.Println()
	fmt.Println(successStyle.Render("Configuration saved to " + path))
	fmt.Println()
	fmt.Println(labelStyle.Render("Stack") + valueStyle.Render(result.StackName))
	fmt.Println(labelStyle.Render("Region") + valueStyle.Render(result.Region))
	fmt.Println(labelStyle.Render("Size") + valueStyle.Render(result.Size))
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  valheimctl synth -c %s    # review the template\n", path)
	fmt.Printf("  valheimctl deploy -c %s   # create the stack\n", path)
	fmt.Println()
}
