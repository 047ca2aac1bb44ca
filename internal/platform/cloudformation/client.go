package cloudformation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"

	"github.com/imamik/valheimctl/internal/util/retry"
)

// DefaultPollInterval is how often Wait polls the stack.
const DefaultPollInterval = 5 * time.Second

// API is the subset of the CloudFormation API the client uses.
type API interface {
	CreateStack(ctx context.Context, in *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, in *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DeleteStack(ctx context.Context, in *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
	DescribeStacks(ctx context.Context, in *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	DescribeStackEvents(ctx context.Context, in *cloudformation.DescribeStackEventsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error)
}

// Client manages game server stacks.
type Client struct {
	api          API
	pollInterval time.Duration
	retryDelay   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
		c.retryDelay = d
	}
}

// NewClient creates a client for the region in cfg.
func NewClient(cfg aws.Config, opts ...Option) *Client {
	return New(cloudformation.NewFromConfig(cfg), opts...)
}

// New wraps an API implementation.
func New(api API, opts ...Option) *Client {
	c := &Client{api: api, pollInterval: DefaultPollInterval, retryDelay: time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stack is the state of a stack.
type Stack struct {
	ID      string
	Name    string
	Status  string
	Reason  string
	Outputs []Output
}

// Output is a stack output.
type Output struct {
	Key         string
	Value       string
	Description string
}

// Output returns the value of the output named key.
func (s *Stack) Output(key string) (string, bool) {
	for _, o := range s.Outputs {
		if o.Key == key {
			return o.Value, true
		}
	}
	return "", false
}

// Event is one stack event.
type Event struct {
	ID           string
	LogicalID    string
	ResourceType string
	Status       string
	Reason       string
	Timestamp    time.Time
}

// Failed reports whether the event records a resource failure.
func (e Event) Failed() bool {
	return strings.HasSuffix(e.Status, "_FAILED")
}

// Action is what Deploy did.
type Action string

// Deploy actions.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionNone   Action = "none"
)

// DeployInput describes the desired stack. Exactly one of TemplateBody and
// TemplateURL is set.
type DeployInput struct {
	StackName    string
	TemplateBody string
	TemplateURL  string
	Tags         map[string]string
}

// DeployResult is returned by Deploy.
type DeployResult struct {
	Action  Action
	StackID string

	// Since is the moment the change was submitted. Events before it belong
	// to earlier operations.
	Since time.Time
}

// Describe returns the current state of the stack name (or ID).
func (c *Client) Describe(ctx context.Context, name string) (*Stack, error) {
	var out *cloudformation.DescribeStacksOutput
	err := c.withRetry(ctx, func() error {
		var err error
		out, err = c.api.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{StackName: aws.String(name)})
		return err
	})
	if err != nil {
		if IsStackNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrStackNotFound, name)
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", name, err)
	}
	if len(out.Stacks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStackNotFound, name)
	}
	return toStack(out.Stacks[0]), nil
}

// Deploy creates the stack when it does not exist and updates it otherwise.
// A stack whose creation rolled back is deleted first. An update with no
// changes returns ActionNone.
func (c *Client) Deploy(ctx context.Context, in DeployInput) (*DeployResult, error) {
	existing, err := c.Describe(ctx, in.StackName)
	switch {
	case errors.Is(err, ErrStackNotFound):
		return c.create(ctx, in)
	case err != nil:
		return nil, err
	case InProgress(existing.Status):
		return nil, fmt.Errorf("%w: %s is %s", ErrStackBusy, in.StackName, existing.Status)
	case replaceable(existing.Status):
		if err := c.deleteAndWait(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to remove rolled back stack %s: %w", in.StackName, err)
		}
		return c.create(ctx, in)
	}

	since := time.Now()
	out, err := c.api.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(in.StackName),
		TemplateBody: optional(in.TemplateBody),
		TemplateURL:  optional(in.TemplateURL),
		Capabilities: capabilities(),
		Tags:         toTags(in.Tags),
	})
	if err != nil {
		if IsNoUpdates(err) {
			return &DeployResult{Action: ActionNone, StackID: existing.ID, Since: since}, nil
		}
		return nil, fmt.Errorf("failed to update stack %s: %w", in.StackName, err)
	}
	return &DeployResult{Action: ActionUpdate, StackID: aws.ToString(out.StackId), Since: since}, nil
}

func (c *Client) create(ctx context.Context, in DeployInput) (*DeployResult, error) {
	since := time.Now()
	out, err := c.api.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:    aws.String(in.StackName),
		TemplateBody: optional(in.TemplateBody),
		TemplateURL:  optional(in.TemplateURL),
		Capabilities: capabilities(),
		Tags:         toTags(in.Tags),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stack %s: %w", in.StackName, err)
	}
	return &DeployResult{Action: ActionCreate, StackID: aws.ToString(out.StackId), Since: since}, nil
}

// Delete starts deleting the stack name and returns its ID for Wait.
func (c *Client) Delete(ctx context.Context, name string) (*DeployResult, error) {
	existing, err := c.Describe(ctx, name)
	if err != nil {
		return nil, err
	}
	if InProgress(existing.Status) {
		return nil, fmt.Errorf("%w: %s is %s", ErrStackBusy, name, existing.Status)
	}

	since := time.Now()
	if _, err := c.api.DeleteStack(ctx, &cloudformation.DeleteStackInput{StackName: aws.String(existing.ID)}); err != nil {
		return nil, fmt.Errorf("failed to delete stack %s: %w", name, err)
	}
	return &DeployResult{StackID: existing.ID, Since: since}, nil
}

func (c *Client) deleteAndWait(ctx context.Context, stackID string) error {
	if _, err := c.api.DeleteStack(ctx, &cloudformation.DeleteStackInput{StackName: aws.String(stackID)}); err != nil {
		return err
	}
	_, err := c.Wait(ctx, stackID, time.Now(), nil)
	return err
}

// Wait polls the stack until it reaches a terminal status, passing new
// events since the given time to onEvent in chronological order. A failed
// or rolled back stack returns ErrStackFailed carrying the resource
// failures.
func (c *Client) Wait(ctx context.Context, stackID string, since time.Time, onEvent func(Event)) (*Stack, error) {
	seen := map[string]bool{}
	var failures []string

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		events, err := c.events(ctx, stackID, since, seen)
		if err != nil && !IsStackNotFound(err) {
			return nil, err
		}
		for _, e := range events {
			if e.Failed() {
				failures = append(failures, fmt.Sprintf("%s %s: %s", e.LogicalID, e.Status, e.Reason))
			}
			if onEvent != nil {
				onEvent(e)
			}
		}

		stack, err := c.Describe(ctx, stackID)
		if errors.Is(err, ErrStackNotFound) {
			return &Stack{ID: stackID, Status: StatusDeleteComplete}, nil
		}
		if err != nil {
			return nil, err
		}

		if !InProgress(stack.Status) {
			if Succeeded(stack.Status) {
				return stack, nil
			}
			return stack, failure(stack, failures)
		}

		select {
		case <-ctx.Done():
			return stack, fmt.Errorf("stopped waiting for %s in %s: %w", stack.Name, stack.Status, ctx.Err())
		case <-ticker.C:
		}
	}
}

func failure(stack *Stack, failures []string) error {
	msg := fmt.Sprintf("%s ended in %s", stack.Name, stack.Status)
	if stack.Reason != "" {
		msg += ": " + stack.Reason
	}
	errs := []error{fmt.Errorf("%w: %s", ErrStackFailed, msg)}
	for _, f := range failures {
		errs = append(errs, errors.New(f))
	}
	return errors.Join(errs...)
}

// events returns unseen events at or after since, oldest first.
func (c *Client) events(ctx context.Context, stackID string, since time.Time, seen map[string]bool) ([]Event, error) {
	var (
		events []Event
		token  *string
	)
	for {
		var out *cloudformation.DescribeStackEventsOutput
		err := c.withRetry(ctx, func() error {
			var err error
			out, err = c.api.DescribeStackEvents(ctx, &cloudformation.DescribeStackEventsInput{
				StackName: aws.String(stackID),
				NextToken: token,
			})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read events of %s: %w", stackID, err)
		}

		older := false
		for _, raw := range out.StackEvents {
			e := toEvent(raw)
			if e.Timestamp.Before(since) {
				older = true
				break
			}
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			events = append(events, e)
		}

		token = out.NextToken
		if older || token == nil {
			break
		}
	}

	// Pages are newest first.
	slices.Reverse(events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp.Before(events[j].Timestamp) })
	return events, nil
}

// withRetry retries throttled calls; anything else fails immediately.
func (c *Client) withRetry(ctx context.Context, op func() error) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		if err := op(); err != nil {
			if isThrottled(err) {
				return err
			}
			return retry.Fatal(err)
		}
		return nil
	}, retry.WithMaxRetries(4), retry.WithInitialDelay(c.retryDelay))
}

func capabilities() []types.Capability {
	return []types.Capability{types.CapabilityCapabilityIam}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func toTags(tags map[string]string) []types.Tag {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]types.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}

func toStack(s types.Stack) *Stack {
	stack := &Stack{
		ID:     aws.ToString(s.StackId),
		Name:   aws.ToString(s.StackName),
		Status: string(s.StackStatus),
		Reason: aws.ToString(s.StackStatusReason),
	}
	for _, o := range s.Outputs {
		stack.Outputs = append(stack.Outputs, Output{
			Key:         aws.ToString(o.OutputKey),
			Value:       aws.ToString(o.OutputValue),
			Description: aws.ToString(o.Description),
		})
	}
	sort.Slice(stack.Outputs, func(i, j int) bool { return stack.Outputs[i].Key < stack.Outputs[j].Key })
	return stack
}

func toEvent(e types.StackEvent) Event {
	return Event{
		ID:           aws.ToString(e.EventId),
		LogicalID:    aws.ToString(e.LogicalResourceId),
		ResourceType: aws.ToString(e.ResourceType),
		Status:       string(e.ResourceStatus),
		Reason:       aws.ToString(e.ResourceStatusReason),
		Timestamp:    aws.ToTime(e.Timestamp),
	}
}
