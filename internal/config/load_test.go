package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
name: valheim-friends
region: eu-central-1
server:
  cpu: 2048
  memory: 8192
  image: lloesche/valheim-server
  ports:
    - port: 2456
    - port: 2457
      protocol: udp
  containerInsights: true
  desiredCount: 0
  environment:
    SERVER_NAME: Friends
  cliOutput: false
password:
  generatedSecretName: FriendsPassword
logging:
  driver: awslogs
  retentionDays: 14
deploy:
  bucket: my-templates
  timeout: 45m
tags:
  owner: ops
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, t.TempDir(), fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "valheim-friends", cfg.Name)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, 2048, cfg.Server.CPU)
	assert.Equal(t, []PortSpec{{Port: 2456}, {Port: 2457, Protocol: "udp"}}, cfg.Server.Ports)
	require.NotNil(t, cfg.Server.DesiredCount)
	assert.Equal(t, 0, *cfg.Server.DesiredCount)
	require.NotNil(t, cfg.Server.CLIOutput)
	assert.False(t, *cfg.Server.CLIOutput)
	assert.Equal(t, 45*time.Minute, cfg.Deploy.Timeout)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, 14, cfg.Logging.RetentionDays)
	assert.Equal(t, map[string]string{"owner": "ops"}, cfg.Tags)
}

func TestLoad_Minimal(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromBytes([]byte("name: valheim\nregion: us-east-1\n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Logging)
	assert.Nil(t, cfg.Server.Ports)
	assert.Equal(t, DefaultDeployTimeout, cfg.DeployTimeout())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadFromBytes([]byte("name: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = LoadFromBytes([]byte("name: valheim\n"))
	assert.ErrorContains(t, err, "configuration validation failed")
}

func TestLoadWithoutValidation(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWithoutValidation(writeConfig(t, t.TempDir(), "server:\n  cpu: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Server.CPU)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()

	in, err := LoadFromBytes([]byte(fullConfig))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(in, path, "# header\n"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# header\n"))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFindConfigFileFrom(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := writeConfig(t, root, "name: valheim\nregion: eu-west-1\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := findConfigFileFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigFileFrom_NotFound(t *testing.T) {
	t.Parallel()

	_, err := findConfigFileFrom(t.TempDir())
	if err == nil {
		t.Skip("a valheim.yaml exists above the temp dir")
	}
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	got, err := Resolve("explicit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "explicit.yaml", got)
}
