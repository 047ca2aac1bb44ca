package gameserver

import (
	"fmt"

	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/resources"
	"github.com/imamik/valheimctl/internal/template"
)

// Output names. Stack output keys are prefixed with the server id, see
// OutputKey.
const (
	OutputCLI                     = "CLIOutput"
	OutputLoadBalancerDNSName     = "LoadBalancerDNSName"
	OutputServerPasswordSecretArn = "ServerPasswordSecretArn"
	OutputClusterName             = "ClusterName"
	OutputServiceName             = "ServiceName"
)

// Server is a declared game server.
type Server struct {
	node *construct.Node

	// Config is the resolved configuration.
	Config Config

	Network       Network
	Secret        SecretRef
	Storage       *Storage
	SecurityGroup *resources.Resource
	Compute       *Compute
	Exposure      *Exposure
}

// Node implements construct.Scope.
func (s *Server) Node() *construct.Node { return s.node }

// New declares a game server named id under scope. cfg is not modified.
// Errors are construction errors only: malformed or duplicate ids, an
// empty port list, invalid ports or an incomplete network.
func New(scope construct.Scope, id string, cfg Config) (*Server, error) {
	resolved := cfg.WithDefaults()
	if err := resolved.validate(); err != nil {
		return nil, err
	}

	c, err := construct.New(scope, id)
	if err != nil {
		return nil, err
	}
	s := &Server{node: c.Node(), Config: resolved}

	if err := s.build(); err != nil {
		return nil, fmt.Errorf("failed to declare game server %q: %w", id, err)
	}
	return s, nil
}

func (s *Server) build() error {
	cfg := s.Config

	s.Network = cfg.Network
	if s.Network == nil {
		vpc, err := NewVPC(s, "VPC", cfg.NewVPC)
		if err != nil {
			return err
		}
		s.Network = vpc
	}
	if err := validateNetwork(s.Network); err != nil {
		return err
	}

	s.Secret = cfg.ServerPasswordSecret
	if s.Secret == nil {
		generated, err := newGeneratedSecret(s, cfg.GeneratedSecretName)
		if err != nil {
			return err
		}
		s.Secret = generated
	}

	var err error
	s.SecurityGroup, err = newSecurityGroup(s, cfg, s.Network)
	if err != nil {
		return err
	}

	s.Storage, err = newStorage(s, s.Network, s.SecurityGroup)
	if err != nil {
		return err
	}

	s.Compute, err = newCluster(s, cfg)
	if err != nil {
		return err
	}
	if err := s.Compute.addTaskDefinition(s, cfg, s.Secret, s.Storage); err != nil {
		return err
	}

	s.Exposure, err = newExposure(s, cfg, s.Network)
	if err != nil {
		return err
	}

	if err := s.Compute.addService(s, cfg, s.Network, s.SecurityGroup, s.Exposure, s.Storage); err != nil {
		return err
	}

	return s.addOutputs()
}

type output struct {
	name  string
	desc  string
	value any
}

func (s *Server) addOutputs() error {
	stack, err := construct.StackOf(s)
	if err != nil {
		return err
	}

	id := s.node.ID()
	outputs := []output{
		{OutputLoadBalancerDNSName, "Address players connect to", s.Exposure.LoadBalancer.GetAtt("DNSName")},
		{OutputServerPasswordSecretArn, "Secret holding the server password", s.Secret.SecretARN()},
		{OutputClusterName, "ECS cluster running the server", s.Compute.Cluster.Ref()},
		{OutputServiceName, "ECS service running the server", s.Compute.Service.GetAtt("Name")},
	}
	if *s.Config.CLIOutput {
		outputs = append(outputs, output{OutputCLI, "Starts the server", s.ScaleCommand(1)})
	}

	for _, o := range outputs {
		if err := stack.AddOutput(OutputKey(id, o.name), &template.Output{
			Description: o.desc,
			Value:       o.value,
		}); err != nil {
			return err
		}
	}
	return nil
}

// ScaleCommand returns the AWS CLI invocation that sets the service's
// desired count. It is printed for operators, never executed.
func (s *Server) ScaleCommand(count int) template.Intrinsic {
	return template.Join("",
		"aws ecs update-service --cluster ",
		s.Compute.Cluster.Ref(),
		" --service ",
		s.Compute.Service.GetAtt("Name"),
		fmt.Sprintf(" --desired-count %d", count),
	)
}

// OutputKey returns the stack output key for a server output.
func OutputKey(serverID, name string) string {
	return alnum(serverID) + name
}

func alnum(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			out = append(out, r)
		}
	}
	return string(out)
}
