package handlers

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/provisioning"
)

func TestLoadConfig_NotFound(t *testing.T) {
	orig := resolveConfigPath
	defer func() { resolveConfigPath = orig }()
	resolveConfigPath = func(string) (string, error) {
		return "", config.ErrConfigNotFound
	}

	_, err := loadConfig("")
	require.ErrorIs(t, err, config.ErrConfigNotFound)
	assert.Contains(t, err.Error(), "valheimctl init")
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeTestConfig(t, "name: valheim\n")

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestAWSConfig_EndpointUsesDummyCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	got := stubAWS(t, &mockStacks{})
	cfg := &config.Config{Name: "valheim", Region: "eu-central-1", Profile: "games"}

	ctx := WithEndpoint(context.Background(), "http://localhost:4566")
	_, err := awsConfig(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", got.Region)
	assert.Equal(t, "games", got.Profile)
	assert.Equal(t, "http://localhost:4566", got.Endpoint)
	assert.Equal(t, "test", got.AccessKeyID)
}

func TestAWSConfig_NoEndpoint(t *testing.T) {
	got := stubAWS(t, &mockStacks{})
	cfg := &config.Config{Name: "valheim", Region: "us-west-2"}

	_, err := awsConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, got.Endpoint)
	assert.Empty(t, got.AccessKeyID)
}

func TestNewClients(t *testing.T) {
	stubAWS(t, &mockStacks{})
	origStager := newStager
	origNetworks := newNetworkResolver
	defer func() {
		newStager = origStager
		newNetworkResolver = origNetworks
	}()
	newStager = func(aws.Config) provisioning.TemplateStager { return stagerFunc(nil) }
	newNetworkResolver = func(aws.Config) provisioning.NetworkResolver { return resolverFunc(nil) }

	tests := []struct {
		name         string
		cfg          *config.Config
		wantStager   bool
		wantNetworks bool
	}{
		{
			name: "new vpc",
			cfg:  &config.Config{Name: "valheim", Region: "eu-central-1"},
		},
		{
			name:       "staging bucket",
			cfg:        &config.Config{Name: "valheim", Region: "eu-central-1", Deploy: config.DeploySpec{Bucket: "templates"}},
			wantStager: true,
		},
		{
			name:         "partial existing vpc",
			cfg:          &config.Config{Name: "valheim", Region: "eu-central-1", Network: config.NetworkSpec{VPCID: "vpc-123"}},
			wantNetworks: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients, err := newClients(context.Background(), tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, clients.Stacks)
			assert.Equal(t, tt.wantStager, clients.Stager != nil)
			assert.Equal(t, tt.wantNetworks, clients.Networks != nil)
		})
	}
}
