package provisioning

import (
	"context"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/gameserver"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
)

// State holds the shared results of provisioning phases.
type State struct {
	// Network is the resolved existing VPC; nil declares a new one.
	Network gameserver.Network

	// Existing is the stack before the run; nil when it does not exist.
	Existing *cloudformation.Stack

	// Template is the synthesized template body (JSON).
	Template []byte

	// TemplateURL is set when the template was staged in S3.
	TemplateURL string

	// Change is the submitted create, update or delete.
	Change *cloudformation.DeployResult

	// Stack is the stack after the run.
	Stack *cloudformation.Stack
}

// Clients are the platform dependencies of the phases. Stager and Networks
// may be nil when the configuration never needs them.
type Clients struct {
	Stacks   StackManager
	Stager   TemplateStager
	Networks NetworkResolver
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Clients  Clients
	Observer Observer
	Metrics  *Metrics
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, clients Clients, observer Observer) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    &State{},
		Clients:  clients,
		Observer: observer.WithFields(map[string]string{"stack": cfg.StackName()}),
		Metrics:  NewMetrics(),
	}
}
