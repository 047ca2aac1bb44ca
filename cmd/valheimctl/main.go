// Package main is the entry point for the valheimctl CLI.
//
// valheimctl declares a dedicated Valheim server on AWS (VPC, EFS, ECS
// Fargate Spot, network load balancer, generated password) as a
// CloudFormation stack and deploys it.
//
// Commands: init, synth, deploy, destroy, outputs, password.
//
// For detailed usage information, run:
//
//	valheimctl --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/valheimctl/cmd/valheimctl/commands"
)

// Version information set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
