package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/valheimctl/internal/gameserver"
	"github.com/imamik/valheimctl/internal/platform/awsclient"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
	"github.com/imamik/valheimctl/internal/provisioning"
)

const testConfigYAML = `name: valheim
region: eu-central-1
`

// writeTestConfig writes a minimal config file and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "valheim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

type mockStacks struct {
	mock.Mock
}

func (m *mockStacks) Describe(ctx context.Context, name string) (*cloudformation.Stack, error) {
	args := m.Called(ctx, name)
	stack, _ := args.Get(0).(*cloudformation.Stack)
	return stack, args.Error(1)
}

func (m *mockStacks) Deploy(ctx context.Context, in cloudformation.DeployInput) (*cloudformation.DeployResult, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*cloudformation.DeployResult)
	return result, args.Error(1)
}

func (m *mockStacks) Delete(ctx context.Context, name string) (*cloudformation.DeployResult, error) {
	args := m.Called(ctx, name)
	result, _ := args.Get(0).(*cloudformation.DeployResult)
	return result, args.Error(1)
}

func (m *mockStacks) Wait(ctx context.Context, stackID string, since time.Time, onEvent func(cloudformation.Event)) (*cloudformation.Stack, error) {
	args := m.Called(ctx, stackID, since, onEvent)
	onEvent(cloudformation.Event{LogicalID: "ValheimCluster", ResourceType: "AWS::ECS::Cluster", Status: "CREATE_COMPLETE"})
	stack, _ := args.Get(0).(*cloudformation.Stack)
	return stack, args.Error(1)
}

type fakeSecrets struct {
	values map[string]string
	asked  string
}

func (f *fakeSecrets) Value(_ context.Context, secretID string) (string, error) {
	f.asked = secretID
	return f.values[secretID], nil
}

// stubAWS replaces the AWS constructors for the duration of the test and
// returns the options the config loader was called with.
func stubAWS(t *testing.T, stacks provisioning.StackManager) *awsclient.Options {
	t.Helper()
	origConfig := newAWSConfig
	origStacks := newStackManager
	t.Cleanup(func() {
		newAWSConfig = origConfig
		newStackManager = origStacks
	})

	var got awsclient.Options
	newAWSConfig = func(_ context.Context, opts awsclient.Options) (aws.Config, error) {
		got = opts
		return aws.Config{Region: opts.Region}, nil
	}
	newStackManager = func(aws.Config) provisioning.StackManager { return stacks }
	return &got
}

func deployedStack() *cloudformation.Stack {
	key := func(name string) string { return gameserver.OutputKey("Valheim", name) }
	return &cloudformation.Stack{
		ID:     "arn:aws:cloudformation:eu-central-1:123456789012:stack/valheim/1",
		Name:   "valheim",
		Status: "CREATE_COMPLETE",
		Outputs: []cloudformation.Output{
			{Key: key(gameserver.OutputCLI), Value: "aws ecs update-service --cluster c --service s --desired-count 1"},
			{Key: key(gameserver.OutputLoadBalancerDNSName), Value: "valheim-nlb.elb.amazonaws.com"},
			{Key: key(gameserver.OutputServerPasswordSecretArn), Value: "arn:aws:secretsmanager:eu-central-1:123456789012:secret:pw"},
		},
	}
}

type stagerFunc func(bucket, stack string, body []byte) (string, error)

func (f stagerFunc) StageTemplate(_ context.Context, bucket, stack string, body []byte) (string, error) {
	return f(bucket, stack, body)
}

type resolverFunc func(vpcID string) (*gameserver.ExistingNetwork, error)

func (f resolverFunc) LookupNetwork(_ context.Context, vpcID string) (*gameserver.ExistingNetwork, error) {
	return f(vpcID)
}
