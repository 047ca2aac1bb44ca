package handlers

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/gameserver"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
	"github.com/imamik/valheimctl/internal/util/prerequisites"
)

// Factory functions for dependency injection in tests.
var checkTools = prerequisites.CheckDefault

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9fafb"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Width(26)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22c55e"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true)
)

// outputLabels orders and names the outputs shown to operators.
var outputLabels = []struct {
	name  string
	label string
}{
	{gameserver.OutputLoadBalancerDNSName, "Server address"},
	{gameserver.OutputServerPasswordSecretArn, "Password secret"},
	{gameserver.OutputClusterName, "Cluster"},
	{gameserver.OutputServiceName, "Service"},
}

// printOutputs writes the stack outputs of the server in cfg.
func printOutputs(w io.Writer, cfg *config.Config, stack *cloudformation.Stack) {
	serverID := cfg.ServerID()
	fmt.Fprintln(w, titleStyle.Render(stack.Name)+" "+hintStyle.Render(stack.Status))
	fmt.Fprintln(w)

	for _, o := range outputLabels {
		value, ok := stack.Output(gameserver.OutputKey(serverID, o.name))
		if !ok {
			continue
		}
		if o.name == gameserver.OutputLoadBalancerDNSName {
			value = fmt.Sprintf("%s:%d", value, gamePort(cfg))
		}
		fmt.Fprintln(w, labelStyle.Render(o.label)+valueStyle.Render(value))
	}

	if cmd, ok := stack.Output(gameserver.OutputKey(serverID, gameserver.OutputCLI)); ok {
		fmt.Fprintln(w)
		fmt.Fprintln(w, hintStyle.Render("Start the server with:"))
		fmt.Fprintln(w, "  "+cmd)
		if missing := checkTools().Missing; len(missing) > 0 {
			fmt.Fprintln(w, hintStyle.Render(fmt.Sprintf("The %s CLI is not on PATH: %s", missing[0].Name, missing[0].InstallURL)))
		}
	}
}

// gamePort is the port players join on.
func gamePort(cfg *config.Config) int {
	if len(cfg.Server.Ports) > 0 {
		return cfg.Server.Ports[0].Port
	}
	return gameserver.DefaultGamePort
}

// outputMap returns all stack outputs keyed by output key.
func outputMap(stack *cloudformation.Stack) map[string]string {
	m := make(map[string]string, len(stack.Outputs))
	for _, o := range stack.Outputs {
		m[o.Key] = o.Value
	}
	return m
}
