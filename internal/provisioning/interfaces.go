package provisioning

import (
	"context"
	"time"

	"github.com/imamik/valheimctl/internal/gameserver"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// StackManager creates, updates and deletes stacks.
// Implemented by internal/platform/cloudformation.Client.
type StackManager interface {
	Describe(ctx context.Context, name string) (*cloudformation.Stack, error)
	Deploy(ctx context.Context, in cloudformation.DeployInput) (*cloudformation.DeployResult, error)
	Delete(ctx context.Context, name string) (*cloudformation.DeployResult, error)
	Wait(ctx context.Context, stackID string, since time.Time, onEvent func(cloudformation.Event)) (*cloudformation.Stack, error)
}

// TemplateStager uploads templates and returns their URL.
// Implemented by internal/platform/s3.Client.
type TemplateStager interface {
	StageTemplate(ctx context.Context, bucketName, stackName string, body []byte) (string, error)
}

// NetworkResolver looks up an existing VPC.
// Implemented by internal/platform/ec2.Client.
type NetworkResolver interface {
	LookupNetwork(ctx context.Context, vpcID string) (*gameserver.ExistingNetwork, error)
}
