package wizard

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/valheimctl/internal/config"
)

func TestWriteConfig_RoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "valheim.yaml")

	cfg := BuildConfig(defaultResult())
	require.NoError(t, WriteConfig(cfg, outputPath))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# valheimctl game server configuration")
	assert.Contains(t, string(content), "valheimctl deploy -c "+outputPath)
	assert.Contains(t, string(content), "name: valheim")

	loaded, err := config.Load(outputPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Name, loaded.Name)
	assert.Equal(t, cfg.Server.CPU, loaded.Server.CPU)
	assert.Equal(t, cfg.Server.Environment, loaded.Server.Environment)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteConfig_BadPath(t *testing.T) {
	err := WriteConfig(BuildConfig(defaultResult()), filepath.Join(t.TempDir(), "missing", "valheim.yaml"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "valheim.yaml")
	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0600))
	assert.True(t, FileExists(path))
}

func TestConfirmOverwrite(t *testing.T) {
	orig := confirmOverwrite
	defer func() { confirmOverwrite = orig }()

	var asked string
	confirmOverwrite = func(path string) (bool, error) {
		asked = path
		return true, nil
	}

	ok, err := ConfirmOverwrite("valheim.yaml")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "valheim.yaml", asked)
}
