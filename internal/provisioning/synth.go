package provisioning

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/gameserver"
)

// ErrNoNetworkResolver is returned when an incomplete existing VPC has to be
// looked up but no resolver is available.
var ErrNoNetworkResolver = errors.New("network lookup needs AWS access")

// Synthesize declares the game server described by cfg in a fresh app.
// network overrides the configured VPC (see config.Config.ServerConfig).
func Synthesize(cfg *config.Config, network gameserver.Network) (*construct.Stack, *gameserver.Server, error) {
	app := construct.NewApp()
	stack, err := construct.NewStack(app, cfg.StackName(), cfg.StackProps())
	if err != nil {
		return nil, nil, err
	}

	server, err := gameserver.New(stack, cfg.ServerID(), cfg.ServerConfig(network))
	if err != nil {
		return nil, nil, err
	}
	return stack, server, nil
}

// ResolveNetwork returns the existing VPC the server deploys into, or nil
// when a new VPC is declared. Fully configured networks need no lookup.
func ResolveNetwork(ctx context.Context, cfg *config.Config, resolver NetworkResolver) (gameserver.Network, error) {
	if !cfg.UsesExistingVPC() {
		return nil, nil
	}
	if cfg.NetworkComplete() {
		return cfg.ExistingNetwork(), nil
	}
	if resolver == nil {
		return nil, fmt.Errorf("%w: %s is only partially configured", ErrNoNetworkResolver, cfg.Network.VPCID)
	}

	found, err := resolver.LookupNetwork(ctx, cfg.Network.VPCID)
	if err != nil {
		return nil, err
	}
	return cfg.MergeNetwork(*found), nil
}
