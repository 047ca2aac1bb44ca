package gameserver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/imamik/valheimctl/internal/resources"
	"github.com/imamik/valheimctl/internal/util/ptr"
)

// Defaults.
const (
	DefaultCPU                 = 1024
	DefaultMemoryLimitMiB      = 8192
	DefaultImage               = "raykrueger/valheim"
	DefaultGeneratedSecretName = "ValheimServerPassword"
	DefaultSaveDir             = "/root/.config/unity3d/IronGate/Valheim"
	DefaultSidecarImage        = "nginx:alpine"
	DefaultDesiredCount        = 1
	DefaultGamePort            = 2456
	DefaultLogRetentionDays    = 30
)

// Fixed names the game server container contract relies on.
const (
	// PasswordEnvVar is the environment variable the server reads its
	// password from.
	PasswordEnvVar = "SERVER_PASSWORD"

	// HealthCheckPort is the TCP port the sidecar answers on.
	HealthCheckPort = 80

	// ServerContainerName names the game server container.
	ServerContainerName = "server"

	// SidecarContainerName names the health check sidecar container.
	SidecarContainerName = "nginx"

	// VolumeName names the EFS-backed task volume.
	VolumeName = "efsVolume"

	// PasswordLength is the length of generated passwords.
	PasswordLength = 8
)

var (
	// ErrNoGamePorts is returned when a config explicitly lists no ports.
	ErrNoGamePorts = errors.New("at least one game port is required")

	// ErrInvalidPort is returned for out-of-range ports or unknown protocols.
	ErrInvalidPort = errors.New("invalid game port")

	// ErrInvalidNetwork is returned when a supplied network lacks subnets.
	ErrInvalidNetwork = errors.New("invalid network")

	// ErrInvalidSecretARN is returned when an existing secret is not an ARN.
	ErrInvalidSecretARN = errors.New("invalid secret ARN")
)

// Protocol is a transport protocol of a game port.
type Protocol string

const (
	// ProtocolUDP is UDP.
	ProtocolUDP Protocol = "udp"
	// ProtocolTCP is TCP.
	ProtocolTCP Protocol = "tcp"
)

// Port is one published (port, protocol) pair.
type Port struct {
	Number   int
	Protocol Protocol
}

// String renders the port the way security group rule descriptions do,
// e.g. "UDP 2456".
func (p Port) String() string {
	return fmt.Sprintf("%s %d", upper(p.Protocol), p.Number)
}

func (p Port) validate() error {
	if p.Number < 1 || p.Number > 65535 {
		return fmt.Errorf("%w: %d is out of range", ErrInvalidPort, p.Number)
	}
	if p.Protocol != ProtocolUDP && p.Protocol != ProtocolTCP {
		return fmt.Errorf("%w: unknown protocol %q for port %d", ErrInvalidPort, p.Protocol, p.Number)
	}
	return nil
}

// DefaultGamePorts returns the Valheim ports: 2456 and 2457 over UDP.
func DefaultGamePorts() []Port {
	return []Port{
		{Number: DefaultGamePort, Protocol: ProtocolUDP},
		{Number: DefaultGamePort + 1, Protocol: ProtocolUDP},
	}
}

// LogConfig ships the game server's output to CloudWatch Logs with the
// awslogs driver. Logging incurs additional cost.
type LogConfig struct {
	// StreamPrefix prefixes log stream names. Defaults to the server id.
	StreamPrefix string

	// RetentionDays bounds how long events are kept.
	RetentionDays int
}

// Config parameterizes a game server. Every field is optional.
type Config struct {
	// Network to deploy into. A new VPC is declared when nil.
	Network Network

	// NewVPC lays out the VPC declared when Network is nil.
	NewVPC VPCOptions

	// CPU units for the Fargate task.
	CPU int

	// MemoryLimitMiB for the Fargate task. Must pair with CPU.
	MemoryLimitMiB int

	// Image is the game server container image.
	Image string

	// ServerPasswordSecret holds the server password. When nil a random
	// password is generated into a secret named GeneratedSecretName.
	ServerPasswordSecret SecretRef

	// GeneratedSecretName names the generated secret. Unused when
	// ServerPasswordSecret is set.
	GeneratedSecretName string

	// Logging enables CloudWatch logging of the server container.
	Logging *LogConfig

	// ContainerInsights enables CloudWatch Container Insights on the cluster.
	ContainerInsights bool

	// GamePorts are published through the load balancer. nil means the
	// default Valheim ports; an empty non-nil slice is an error.
	GamePorts []Port

	// SaveDir is where the server writes its world. EFS is mounted here.
	SaveDir string

	// SidecarImage is the health check container image.
	SidecarImage string

	// DesiredCount is the number of running tasks. nil means 1.
	DesiredCount *int

	// Environment is extra plain environment for the server container.
	Environment map[string]string

	// CLIOutput controls whether the operator scale command is emitted as a
	// stack output. nil means true.
	CLIOutput *bool
}

// WithDefaults returns a copy of c with every unset field resolved. Network
// and ServerPasswordSecret stay nil when unset because resolving them
// declares resources.
func (c Config) WithDefaults() Config {
	out := c

	if out.CPU == 0 {
		out.CPU = DefaultCPU
	}
	if out.MemoryLimitMiB == 0 {
		out.MemoryLimitMiB = DefaultMemoryLimitMiB
	}
	if out.Image == "" {
		out.Image = DefaultImage
	}
	if out.GeneratedSecretName == "" {
		out.GeneratedSecretName = DefaultGeneratedSecretName
	}
	if out.GamePorts == nil {
		out.GamePorts = DefaultGamePorts()
	} else {
		out.GamePorts = append([]Port(nil), c.GamePorts...)
	}
	if out.SaveDir == "" {
		out.SaveDir = DefaultSaveDir
	}
	if out.SidecarImage == "" {
		out.SidecarImage = DefaultSidecarImage
	}
	out.DesiredCount = ptr.Int(ptr.Deref(c.DesiredCount, DefaultDesiredCount))
	out.CLIOutput = ptr.Bool(ptr.Deref(c.CLIOutput, true))

	if c.Logging != nil {
		l := *c.Logging
		if l.RetentionDays == 0 {
			l.RetentionDays = DefaultLogRetentionDays
		}
		out.Logging = &l
	}

	if c.Environment != nil {
		out.Environment = make(map[string]string, len(c.Environment))
		for k, v := range c.Environment {
			out.Environment[k] = v
		}
	}

	return out
}

func (c Config) validate() error {
	if len(c.GamePorts) == 0 {
		return ErrNoGamePorts
	}
	seen := make(map[Port]bool, len(c.GamePorts))
	for _, p := range c.GamePorts {
		if err := p.validate(); err != nil {
			return err
		}
		if seen[p] {
			return fmt.Errorf("%w: %s listed twice", ErrInvalidPort, p)
		}
		seen[p] = true
	}
	if s, ok := c.ServerPasswordSecret.(ExistingSecret); ok && !strings.HasPrefix(string(s), "arn:") {
		return fmt.Errorf("%w: %q", ErrInvalidSecretARN, string(s))
	}
	return nil
}

// sortedEnvironment returns the environment in a stable order so templates
// are reproducible.
func (c Config) sortedEnvironment() []string {
	keys := make([]string, 0, len(c.Environment))
	for k := range c.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func upper(p Protocol) string {
	switch p {
	case ProtocolUDP:
		return resources.LBProtocolUDP
	case ProtocolTCP:
		return resources.LBProtocolTCP
	default:
		return string(p)
	}
}
