package config

import (
	"time"

	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/gameserver"
	"github.com/imamik/valheimctl/internal/util/naming"
	"github.com/imamik/valheimctl/internal/util/tags"
)

// Defaults applied during conversion.
const (
	DefaultServerID      = "Valheim"
	DefaultDeployTimeout = 30 * time.Minute
	DefaultLogDriver     = "awslogs"

	healthCheckPort = gameserver.HealthCheckPort
)

func (p PortSpec) protocol() string {
	if p.Protocol == "" {
		return string(gameserver.ProtocolUDP)
	}
	return p.Protocol
}

// ServerID returns the construct id of the game server.
func (c *Config) ServerID() string {
	if c.Server.ID == "" {
		return DefaultServerID
	}
	return c.Server.ID
}

// StackName returns the CloudFormation stack name.
func (c *Config) StackName() string {
	return naming.Stack(c.Name)
}

// DeployTimeout returns the configured wait bound for stack operations.
func (c *Config) DeployTimeout() time.Duration {
	if c.Deploy.Timeout <= 0 {
		return DefaultDeployTimeout
	}
	return c.Deploy.Timeout
}

// UsesExistingVPC reports whether the server deploys into a caller VPC.
func (c *Config) UsesExistingVPC() bool {
	return c.Network.VPCID != ""
}

// NetworkComplete reports whether the existing VPC is fully described and
// needs no lookup.
func (c *Config) NetworkComplete() bool {
	n := c.Network
	return n.VPCID != "" && n.CIDR != "" && len(n.PublicSubnets) > 0 && len(n.PrivateSubnets) > 0
}

// ExistingNetwork returns the configured VPC as a gameserver network.
func (c *Config) ExistingNetwork() gameserver.ExistingNetwork {
	return gameserver.ExistingNetwork{
		ID:             c.Network.VPCID,
		CIDRBlock:      c.Network.CIDR,
		PublicSubnets:  append([]string(nil), c.Network.PublicSubnets...),
		PrivateSubnets: append([]string(nil), c.Network.PrivateSubnets...),
	}
}

// StackProps returns the stack description and tags.
func (c *Config) StackProps() construct.StackProps {
	return construct.StackProps{
		Description: "Dedicated game server " + c.ServerID() + " (valheimctl)",
		Tags:        tags.NewTagBuilder(c.StackName()).WithGame(c.ServerID()).Merge(c.Tags).Build(),
	}
}

// ServerConfig converts c into a descriptor config. network overrides the
// configured VPC; pass nil to use the config as is, which creates a new VPC
// unless a complete existing network is configured.
func (c *Config) ServerConfig(network gameserver.Network) gameserver.Config {
	s := c.Server
	out := gameserver.Config{
		Network:             network,
		CPU:                 s.CPU,
		MemoryLimitMiB:      s.Memory,
		Image:               s.Image,
		GeneratedSecretName: c.Password.GeneratedSecretName,
		ContainerInsights:   s.ContainerInsights,
		SaveDir:             s.SaveDir,
		SidecarImage:        s.SidecarImage,
		DesiredCount:        s.DesiredCount,
		Environment:         s.Environment,
		CLIOutput:           s.CLIOutput,
		NewVPC:              c.VPCOptions(),
	}

	if out.Network == nil && c.NetworkComplete() {
		out.Network = c.ExistingNetwork()
	}

	if c.Password.SecretARN != "" {
		out.ServerPasswordSecret = gameserver.ExistingSecret(c.Password.SecretARN)
	}

	if s.Ports != nil {
		out.GamePorts = make([]gameserver.Port, 0, len(s.Ports))
		for _, p := range s.Ports {
			out.GamePorts = append(out.GamePorts, gameserver.Port{
				Number:   p.Port,
				Protocol: gameserver.Protocol(p.protocol()),
			})
		}
	}

	if c.Logging != nil {
		prefix := c.Logging.StreamPrefix
		if prefix == "" {
			prefix = naming.LogStreamPrefix(c.StackName())
		}
		out.Logging = &gameserver.LogConfig{
			StreamPrefix:  prefix,
			RetentionDays: c.Logging.RetentionDays,
		}
	}

	return out
}

// VPCOptions returns the layout for a newly created VPC.
func (c *Config) VPCOptions() gameserver.VPCOptions {
	return gameserver.VPCOptions{CIDR: c.Network.NewVPCCIDR}
}

// MergeNetwork fills the parts of the configured VPC that were left empty
// with the values found by a lookup. Configured values win.
func (c *Config) MergeNetwork(found gameserver.ExistingNetwork) gameserver.ExistingNetwork {
	out := c.ExistingNetwork()
	if out.CIDRBlock == "" {
		out.CIDRBlock = found.CIDRBlock
	}
	if len(out.PublicSubnets) == 0 {
		out.PublicSubnets = append([]string(nil), found.PublicSubnets...)
	}
	if len(out.PrivateSubnets) == 0 {
		out.PrivateSubnets = append([]string(nil), found.PrivateSubnets...)
	}
	return out
}
