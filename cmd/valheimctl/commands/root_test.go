package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expected := []string{"init", "synth", "deploy", "destroy", "outputs", "password", "version", "completion"}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, subcommands[name], "Expected subcommand %s not found", name)
	}
	assert.Len(t, cmd.Commands(), len(expected))
}

func TestRoot_PersistentFlags(t *testing.T) {
	cmd := Root()

	for _, name := range []string{"verbose", "log-json", "endpoint-url"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "v", cmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestStackCommands_HaveConfigFlag(t *testing.T) {
	cmd := Root()

	for _, name := range []string{"synth", "deploy", "destroy", "outputs", "password"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		flag := sub.Flags().Lookup("config")
		require.NotNil(t, flag, "%s has no --config", name)
		assert.Equal(t, "c", flag.Shorthand)
	}
}

func TestSynth_Flags(t *testing.T) {
	cmd := Synth()

	assert.Equal(t, "json", cmd.Flags().Lookup("format").DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("output"))
}

func TestInit_Flags(t *testing.T) {
	cmd := Init()

	assert.Equal(t, "valheim.yaml", cmd.Flags().Lookup("output").DefValue)
	assert.Equal(t, "f", cmd.Flags().Lookup("force").Shorthand)
}

func TestRoot_ExecuteVersion(t *testing.T) {
	cmd := Root()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "valheimctl ")
}
