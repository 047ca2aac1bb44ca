package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/valheimctl/internal/gameserver"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
	"github.com/imamik/valheimctl/internal/util/prerequisites"
)

func TestOutputs_Styled(t *testing.T) {
	stacks := &mockStacks{}
	stubAWS(t, stacks)
	stacks.On("Describe", mock.Anything, "valheim").Return(deployedStack(), nil)

	var out bytes.Buffer
	require.NoError(t, Outputs(context.Background(), writeTestConfig(t, testConfigYAML), false, &out))

	assert.Contains(t, out.String(), "Server address")
	assert.Contains(t, out.String(), "valheim-nlb.elb.amazonaws.com:2456")
	assert.Contains(t, out.String(), "secret:pw")
	assert.Contains(t, out.String(), "Start the server with:")
}

func TestOutputs_JSON(t *testing.T) {
	stacks := &mockStacks{}
	stubAWS(t, stacks)
	stacks.On("Describe", mock.Anything, "valheim").Return(deployedStack(), nil)

	var out bytes.Buffer
	require.NoError(t, Outputs(context.Background(), writeTestConfig(t, testConfigYAML), true, &out))

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Len(t, got, 3)
	assert.Equal(t, "valheim-nlb.elb.amazonaws.com", got[gameserver.OutputKey("Valheim", gameserver.OutputLoadBalancerDNSName)])
}

func TestOutputs_CustomPort(t *testing.T) {
	stacks := &mockStacks{}
	stubAWS(t, stacks)
	stacks.On("Describe", mock.Anything, "valheim").Return(deployedStack(), nil)

	path := writeTestConfig(t, testConfigYAML+"server:\n  ports:\n    - port: 2458\n      protocol: udp\n")

	var out bytes.Buffer
	require.NoError(t, Outputs(context.Background(), path, false, &out))
	assert.Contains(t, out.String(), "valheim-nlb.elb.amazonaws.com:2458")
}

func TestOutputs_NotDeployed(t *testing.T) {
	stacks := &mockStacks{}
	stubAWS(t, stacks)
	stacks.On("Describe", mock.Anything, "valheim").Return(nil, cloudformation.ErrStackNotFound)

	err := Outputs(context.Background(), writeTestConfig(t, testConfigYAML), false, &bytes.Buffer{})
	require.ErrorIs(t, err, cloudformation.ErrStackNotFound)
	assert.Contains(t, err.Error(), "not deployed in eu-central-1")
}

func TestOutputs_MissingAWSCLI(t *testing.T) {
	stacks := &mockStacks{}
	stubAWS(t, stacks)
	stacks.On("Describe", mock.Anything, "valheim").Return(deployedStack(), nil)

	orig := checkTools
	defer func() { checkTools = orig }()
	checkTools = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{Missing: []prerequisites.Tool{prerequisites.AWSCLI}}
	}

	var out bytes.Buffer
	require.NoError(t, Outputs(context.Background(), writeTestConfig(t, testConfigYAML), false, &out))
	assert.Contains(t, out.String(), "The aws CLI is not on PATH")
}
