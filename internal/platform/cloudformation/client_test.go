package cloudformation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) CreateStack(ctx context.Context, in *cloudformation.CreateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cloudformation.CreateStackOutput)
	return out, args.Error(1)
}

func (m *mockAPI) UpdateStack(ctx context.Context, in *cloudformation.UpdateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cloudformation.UpdateStackOutput)
	return out, args.Error(1)
}

func (m *mockAPI) DeleteStack(ctx context.Context, in *cloudformation.DeleteStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cloudformation.DeleteStackOutput)
	return out, args.Error(1)
}

func (m *mockAPI) DescribeStacks(ctx context.Context, in *cloudformation.DescribeStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cloudformation.DescribeStacksOutput)
	return out, args.Error(1)
}

func (m *mockAPI) DescribeStackEvents(ctx context.Context, in *cloudformation.DescribeStackEventsInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cloudformation.DescribeStackEventsOutput)
	return out, args.Error(1)
}

const stackID = "arn:aws:cloudformation:eu-central-1:123456789012:stack/valheim/1"

func notFound() error {
	return &smithy.GenericAPIError{Code: "ValidationError", Message: "Stack with id valheim does not exist"}
}

func stackIn(status types.StackStatus) *cloudformation.DescribeStacksOutput {
	return &cloudformation.DescribeStacksOutput{Stacks: []types.Stack{{
		StackId:     aws.String(stackID),
		StackName:   aws.String("valheim"),
		StackStatus: status,
		Outputs: []types.Output{
			{OutputKey: aws.String("ValheimServiceName"), OutputValue: aws.String("svc")},
			{OutputKey: aws.String("ValheimClusterName"), OutputValue: aws.String("cluster")},
		},
	}}}
}

func byName(name string) any {
	return mock.MatchedBy(func(in *cloudformation.DescribeStacksInput) bool {
		return aws.ToString(in.StackName) == name
	})
}

func newTestClient(api API) *Client {
	return New(api, WithPollInterval(time.Millisecond))
}

func TestDeploy_CreatesMissingStack(t *testing.T) {
	api := &mockAPI{}
	api.On("DescribeStacks", mock.Anything, byName("valheim")).Return(nil, notFound())
	api.On("CreateStack", mock.Anything, mock.MatchedBy(func(in *cloudformation.CreateStackInput) bool {
		return aws.ToString(in.TemplateBody) == "{}" &&
			in.TemplateURL == nil &&
			assert.ObjectsAreEqual([]types.Capability{types.CapabilityCapabilityIam}, in.Capabilities) &&
			len(in.Tags) == 2 && aws.ToString(in.Tags[0].Key) == "a" && aws.ToString(in.Tags[1].Key) == "game"
	})).Return(&cloudformation.CreateStackOutput{StackId: aws.String(stackID)}, nil)

	res, err := newTestClient(api).Deploy(context.Background(), DeployInput{
		StackName:    "valheim",
		TemplateBody: "{}",
		Tags:         map[string]string{"game": "valheim", "a": "b"},
	})

	require.NoError(t, err)
	assert.Equal(t, ActionCreate, res.Action)
	assert.Equal(t, stackID, res.StackID)
	api.AssertExpectations(t)
}

func TestDeploy_UpdatesExistingStack(t *testing.T) {
	api := &mockAPI{}
	api.On("DescribeStacks", mock.Anything, byName("valheim")).Return(stackIn(types.StackStatusCreateComplete), nil)
	api.On("UpdateStack", mock.Anything, mock.MatchedBy(func(in *cloudformation.UpdateStackInput) bool {
		return aws.ToString(in.TemplateURL) == "https://bucket.s3.amazonaws.com/t.json" && in.TemplateBody == nil
	})).Return(&cloudformation.UpdateStackOutput{StackId: aws.String(stackID)}, nil)

	res, err := newTestClient(api).Deploy(context.Background(), DeployInput{
		StackName:   "valheim",
		TemplateURL: "https://bucket.s3.amazonaws.com/t.json",
	})

	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, res.Action)
	api.AssertExpectations(t)
}

func TestDeploy_NoUpdates(t *testing.T) {
	api := &mockAPI{}
	api.On("DescribeStacks", mock.Anything, byName("valheim")).Return(stackIn(types.StackStatusUpdateComplete), nil)
	api.On("UpdateStack", mock.Anything, mock.Anything).Return(nil,
		&smithy.GenericAPIError{Code: "ValidationError", Message: "No updates are to be performed."})

	res, err := newTestClient(api).Deploy(context.Background(), DeployInput{StackName: "valheim", TemplateBody: "{}"})

	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Action)
	assert.Equal(t, stackID, res.StackID)
}

func TestDeploy_Busy(t *testing.T) {
	api := &mockAPI{}
	api.On("DescribeStacks", mock.Anything, byName("valheim")).Return(stackIn(types.StackStatusUpdateInProgress), nil)

	_, err := newTestClient(api).Deploy(context.Background(), DeployInput{StackName: "valheim", TemplateBody: "{}"})

	require.ErrorIs(t, err, ErrStackBusy)
	api.AssertNotCalled(t, "UpdateStack", mock.Anything, mock.Anything)
}

func TestDeploy_ReplacesRolledBackStack(t *testing.T) {
	api := &mockAPI{}
	api.On("DescribeStacks", mock.Anything, byName("valheim")).Return(stackIn(types.StackStatusRollbackComplete), nil)
	api.On("DeleteStack", mock.Anything, mock.Anything).Return(&cloudformation.DeleteStackOutput{}, nil)
	api.On("DescribeStackEvents", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStackEventsOutput{}, nil)
	api.On("DescribeStacks", mock.Anything, byName(stackID)).Return(stackIn(types.StackStatusDeleteComplete), nil)
	api.On("CreateStack", mock.Anything, mock.Anything).Return(&cloudformation.CreateStackOutput{StackId: aws.String(stackID)}, nil)

	res, err := newTestClient(api).Deploy(context.Background(), DeployInput{StackName: "valheim", TemplateBody: "{}"})

	require.NoError(t, err)
	assert.Equal(t, ActionCreate, res.Action)
	api.AssertCalled(t, "DeleteStack", mock.Anything, mock.Anything)
}

func TestWait_StreamsEventsInOrder(t *testing.T) {
	since := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	api := &mockAPI{}
	api.On("DescribeStackEvents", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStackEventsOutput{
		StackEvents: []types.StackEvent{
			{EventId: aws.String("3"), LogicalResourceId: aws.String("valheim"), ResourceStatus: types.ResourceStatusCreateComplete, Timestamp: aws.Time(since.Add(3 * time.Second))},
			{EventId: aws.String("2"), LogicalResourceId: aws.String("TestVPCBD247556"), ResourceStatus: types.ResourceStatusCreateComplete, Timestamp: aws.Time(since.Add(2 * time.Second))},
			{EventId: aws.String("1"), LogicalResourceId: aws.String("TestVPCBD247556"), ResourceStatus: types.ResourceStatusCreateInProgress, Timestamp: aws.Time(since.Add(time.Second))},
			{EventId: aws.String("0"), LogicalResourceId: aws.String("old"), ResourceStatus: types.ResourceStatusDeleteComplete, Timestamp: aws.Time(since.Add(-time.Hour))},
		},
	}, nil)
	api.On("DescribeStacks", mock.Anything, byName(stackID)).Return(stackIn(types.StackStatusCreateComplete), nil)

	var got []string
	stack, err := newTestClient(api).Wait(context.Background(), stackID, since, func(e Event) {
		got = append(got, e.ID)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, got)
	assert.Equal(t, StatusCreateComplete, stack.Status)

	value, ok := stack.Output("ValheimServiceName")
	assert.True(t, ok)
	assert.Equal(t, "svc", value)
	assert.Equal(t, "ValheimClusterName", stack.Outputs[0].Key, "outputs are sorted")
}

func TestWait_Failure(t *testing.T) {
	since := time.Now()
	api := &mockAPI{}
	api.On("DescribeStackEvents", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStackEventsOutput{
		StackEvents: []types.StackEvent{{
			EventId:              aws.String("1"),
			LogicalResourceId:    aws.String("TestServiceB2E5BFB2"),
			ResourceStatus:       types.ResourceStatusCreateFailed,
			ResourceStatusReason: aws.String("Resource handler returned message: quota exceeded"),
			Timestamp:            aws.Time(since.Add(time.Second)),
		}},
	}, nil)
	rolledBack := stackIn(types.StackStatusRollbackComplete)
	rolledBack.Stacks[0].StackStatusReason = aws.String("The following resource(s) failed to create")
	api.On("DescribeStacks", mock.Anything, byName(stackID)).Return(rolledBack, nil)

	_, err := newTestClient(api).Wait(context.Background(), stackID, since, nil)

	require.ErrorIs(t, err, ErrStackFailed)
	assert.Contains(t, err.Error(), "ROLLBACK_COMPLETE")
	assert.Contains(t, err.Error(), "TestServiceB2E5BFB2 CREATE_FAILED: Resource handler returned message: quota exceeded")
}

func TestWait_DeletedStackDisappears(t *testing.T) {
	api := &mockAPI{}
	api.On("DescribeStackEvents", mock.Anything, mock.Anything).Return(nil, notFound())
	api.On("DescribeStacks", mock.Anything, mock.Anything).Return(nil, notFound())

	stack, err := newTestClient(api).Wait(context.Background(), stackID, time.Now(), nil)

	require.NoError(t, err)
	assert.Equal(t, StatusDeleteComplete, stack.Status)
}

func TestWait_ContextCancelled(t *testing.T) {
	api := &mockAPI{}
	api.On("DescribeStackEvents", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStackEventsOutput{}, nil)
	api.On("DescribeStacks", mock.Anything, mock.Anything).Return(stackIn(types.StackStatusCreateInProgress), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(api, WithPollInterval(time.Hour)).Wait(ctx, stackID, time.Now(), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDescribe_RetriesThrottling(t *testing.T) {
	api := &mockAPI{}
	api.On("DescribeStacks", mock.Anything, mock.Anything).Return(nil, &smithy.GenericAPIError{Code: "Throttling", Message: "Rate exceeded"}).Once()
	api.On("DescribeStacks", mock.Anything, mock.Anything).Return(stackIn(types.StackStatusCreateComplete), nil).Once()

	stack, err := newTestClient(api).Describe(context.Background(), "valheim")

	require.NoError(t, err)
	assert.Equal(t, "valheim", stack.Name)
	api.AssertNumberOfCalls(t, "DescribeStacks", 2)
}

func TestDelete(t *testing.T) {
	t.Run("missing stack", func(t *testing.T) {
		api := &mockAPI{}
		api.On("DescribeStacks", mock.Anything, mock.Anything).Return(nil, notFound())

		_, err := newTestClient(api).Delete(context.Background(), "valheim")
		assert.ErrorIs(t, err, ErrStackNotFound)
	})

	t.Run("deletes by id", func(t *testing.T) {
		api := &mockAPI{}
		api.On("DescribeStacks", mock.Anything, mock.Anything).Return(stackIn(types.StackStatusUpdateComplete), nil)
		api.On("DeleteStack", mock.Anything, mock.MatchedBy(func(in *cloudformation.DeleteStackInput) bool {
			return aws.ToString(in.StackName) == stackID
		})).Return(&cloudformation.DeleteStackOutput{}, nil)

		res, err := newTestClient(api).Delete(context.Background(), "valheim")
		require.NoError(t, err)
		assert.Equal(t, stackID, res.StackID)
	})
}

func TestStatus(t *testing.T) {
	tests := []struct {
		status     string
		inProgress bool
		succeeded  bool
		failed     bool
	}{
		{"CREATE_IN_PROGRESS", true, false, false},
		{"UPDATE_COMPLETE_CLEANUP_IN_PROGRESS", true, false, false},
		{"CREATE_COMPLETE", false, true, false},
		{"UPDATE_COMPLETE", false, true, false},
		{"ROLLBACK_COMPLETE", false, false, true},
		{"UPDATE_ROLLBACK_COMPLETE", false, false, true},
		{"DELETE_FAILED", false, false, true},
		{"REVIEW_IN_PROGRESS", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.inProgress, InProgress(tt.status))
			assert.Equal(t, tt.succeeded, Succeeded(tt.status))
			assert.Equal(t, tt.failed, Failed(tt.status))
		})
	}
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNoUpdates(&smithy.GenericAPIError{Code: "ValidationError", Message: "No updates are to be performed."}))
	assert.False(t, IsNoUpdates(&smithy.GenericAPIError{Code: "ValidationError", Message: "Template format error"}))
	assert.False(t, IsNoUpdates(errors.New("No updates are to be performed")))

	assert.True(t, IsStackNotFound(notFound()))
	assert.True(t, IsStackNotFound(ErrStackNotFound))
	assert.False(t, IsStackNotFound(&smithy.GenericAPIError{Code: "AccessDenied", Message: "does not exist"}))
}
