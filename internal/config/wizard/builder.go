package wizard

import (
	"strings"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/gameserver"
)

// Environment variables understood by the default server image.
const (
	envServerName = "SERVER_NAME"
	envWorldName  = "WORLD_NAME"
)

// BuildConfig creates a Config from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Name:   strings.TrimSpace(result.StackName),
		Region: result.Region,
		Server: config.ServerSpec{
			ContainerInsights: result.ContainerInsights,
		},
	}

	if size, ok := SizeByKey(result.Size); ok {
		cfg.Server.CPU = size.CPU
		cfg.Server.Memory = size.MemoryMiB
	}

	if result.PortCount == 1 {
		cfg.Server.Ports = []config.PortSpec{{Port: gameserver.DefaultGamePort, Protocol: string(gameserver.ProtocolUDP)}}
	}

	env := map[string]string{}
	if result.ServerName != "" {
		env[envServerName] = result.ServerName
	}
	if result.WorldName != "" {
		env[envWorldName] = result.WorldName
	}
	if len(env) > 0 {
		cfg.Server.Environment = env
	}

	if result.StartStopped {
		stopped := 0
		cfg.Server.DesiredCount = &stopped
	}

	if result.PasswordMode == PasswordExisting {
		cfg.Password.SecretARN = strings.TrimSpace(result.SecretARN)
	}

	if result.Logging {
		cfg.Logging = &config.LoggingSpec{
			Driver:        config.DefaultLogDriver,
			RetentionDays: gameserver.DefaultLogRetentionDays,
		}
	}

	return cfg
}
