package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/gameserver"
)

func TestValidateStackName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "valheim", nil},
		{"valid with digits and hyphens", "valheim-2", nil},
		{"empty", "  ", errStackNameRequired},
		{"leading digit", "1valheim", errStackNameInvalid},
		{"underscore", "val_heim", errStackNameInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStackName(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateSecretARN(t *testing.T) {
	assert.NoError(t, validateSecretARN("arn:aws:secretsmanager:eu-central-1:123456789012:secret:valheim-AbCdEf"))
	assert.ErrorIs(t, validateSecretARN("valheim"), errSecretARNInvalid)
	assert.ErrorIs(t, validateSecretARN("arn:aws:s3:::bucket"), errSecretARNInvalid)
}

func TestBuildConfig_Defaults(t *testing.T) {
	cfg := BuildConfig(defaultResult())

	assert.Equal(t, "valheim", cfg.Name)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, 1024, cfg.Server.CPU)
	assert.Equal(t, 8192, cfg.Server.Memory)
	assert.Nil(t, cfg.Server.Ports, "two-port layout is the default and stays implicit")
	assert.Nil(t, cfg.Server.DesiredCount)
	assert.Nil(t, cfg.Logging)
	assert.Empty(t, cfg.Password.SecretARN)
	assert.Equal(t, map[string]string{"SERVER_NAME": "valheimctl", "WORLD_NAME": "Dedicated"}, cfg.Server.Environment)

	require.NoError(t, cfg.Validate())
}

func TestBuildConfig_AllOptions(t *testing.T) {
	result := defaultResult()
	result.StackName = " my-server "
	result.Size = SizeSmall
	result.PortCount = 1
	result.PasswordMode = PasswordExisting
	result.SecretARN = "arn:aws:secretsmanager:eu-central-1:123456789012:secret:valheim"
	result.Logging = true
	result.ContainerInsights = true
	result.StartStopped = true
	result.ServerName = ""
	result.WorldName = ""

	cfg := BuildConfig(result)

	assert.Equal(t, "my-server", cfg.Name)
	assert.Equal(t, 512, cfg.Server.CPU)
	assert.Equal(t, 4096, cfg.Server.Memory)
	assert.Equal(t, []config.PortSpec{{Port: gameserver.DefaultGamePort, Protocol: "udp"}}, cfg.Server.Ports)
	require.NotNil(t, cfg.Server.DesiredCount)
	assert.Equal(t, 0, *cfg.Server.DesiredCount)
	assert.True(t, cfg.Server.ContainerInsights)
	assert.Equal(t, result.SecretARN, cfg.Password.SecretARN)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "awslogs", cfg.Logging.Driver)
	assert.Equal(t, 30, cfg.Logging.RetentionDays)
	assert.Nil(t, cfg.Server.Environment)

	require.NoError(t, cfg.Validate())
}

func TestBuildConfig_GeneratedPasswordIgnoresARN(t *testing.T) {
	result := defaultResult()
	result.SecretARN = "arn:aws:secretsmanager:eu-central-1:123456789012:secret:stale"

	cfg := BuildConfig(result)
	assert.Empty(t, cfg.Password.SecretARN)
}
