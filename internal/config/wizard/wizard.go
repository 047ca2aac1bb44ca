package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	StackName string
	Region    string

	// Size is a key of Sizes.
	Size string

	// PortCount is 2 for 2456-2457 and 1 for 2456 only.
	PortCount int

	ServerName string
	WorldName  string

	PasswordMode string
	SecretARN    string

	Logging           bool
	ContainerInsights bool

	// StartStopped deploys with a desired count of 0.
	StartStopped bool
}

// defaultResult returns the preselected answers.
func defaultResult() *WizardResult {
	return &WizardResult{
		StackName:    "valheim",
		Region:       "eu-central-1",
		Size:         SizeStandard,
		PortCount:    2,
		ServerName:   "valheimctl",
		WorldName:    "Dedicated",
		PasswordMode: PasswordGenerate,
	}
}

// RunWizard runs the interactive configuration wizard. The context cancels
// the form (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := defaultResult()

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("stack identity: %w", err)
	}

	if err := runServerGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	if err := runPasswordGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("password: %w", err)
	}

	if err := runOperationsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("operations: %w", err)
	}

	return result, nil
}
