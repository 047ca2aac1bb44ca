package wizard

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

var (
	stackNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,127}$`)
	secretARNRegex = regexp.MustCompile(`^arn:aws[a-z-]*:secretsmanager:[a-z0-9-]+:\d{12}:secret:.+$`)
)

func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stack Name").
				Description("CloudFormation stack that owns every resource").
				Placeholder("valheim").
				Value(&result.StackName).
				Validate(validateStackName),
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region to run the server in").
				Options(RegionsToOptions()...).
				Value(&result.Region),
		).Title("Stack"),
	).RunWithContext(ctx)
}

func runServerGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task Size").
				Description("Fargate CPU and memory").
				Options(SizesToOptions()...).
				Value(&result.Size),
			huh.NewSelect[int]().
				Title("Game Ports").
				Description("UDP ports published through the load balancer").
				Options(PortCountOptions...).
				Value(&result.PortCount),
			huh.NewInput().
				Title("Server Name").
				Description("Shown in the in-game server browser").
				Value(&result.ServerName),
			huh.NewInput().
				Title("World Name").
				Description("Save file name on the persistent volume").
				Value(&result.WorldName),
		).Title("Game Server"),
	).RunWithContext(ctx)
}

func runPasswordGroup(ctx context.Context, result *WizardResult) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Server Password").
				Description("Players need it to join").
				Options(PasswordModes...).
				Value(&result.PasswordMode),
		).Title("Password"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if result.PasswordMode != PasswordExisting {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Secret ARN").
				Description("Secrets Manager secret holding the plain-text password").
				Placeholder("arn:aws:secretsmanager:eu-central-1:123456789012:secret:valheim").
				Value(&result.SecretARN).
				Validate(validateSecretARN),
		).Title("Existing Secret"),
	).RunWithContext(ctx)
}

func runOperationsGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Ship server logs to CloudWatch?").
				Description("Incurs additional cost").
				Value(&result.Logging),
			huh.NewConfirm().
				Title("Enable Container Insights?").
				Description("Cluster metrics in CloudWatch, incurs additional cost").
				Value(&result.ContainerInsights),
			huh.NewConfirm().
				Title("Deploy stopped?").
				Description("Start later with the command printed after deploy").
				Value(&result.StartStopped),
		).Title("Operations"),
	).RunWithContext(ctx)
}

func validateStackName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errStackNameRequired
	}
	if !stackNameRegex.MatchString(s) {
		return errStackNameInvalid
	}
	return nil
}

func validateSecretARN(s string) error {
	if !secretARNRegex.MatchString(strings.TrimSpace(s)) {
		return errSecretARNInvalid
	}
	return nil
}
