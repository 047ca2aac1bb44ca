package provisioning

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/valheimctl/internal/platform/cloudformation"
	"github.com/imamik/valheimctl/internal/platform/s3"
	"github.com/imamik/valheimctl/internal/util/async"
)

// ErrTemplateTooLarge is returned when a template exceeds the inline limit
// and no staging bucket is configured.
var ErrTemplateTooLarge = errors.New("template too large to deploy inline")

// DeployPhases returns the phases of a deployment.
func DeployPhases() []Phase {
	return []Phase{Preflight{}, Synth{}, Stage{}, Apply{}}
}

// DestroyPhases returns the phases of a teardown.
func DestroyPhases() []Phase {
	return []Phase{Destroy{}}
}

// Preflight checks the stack can take a change and resolves the network.
type Preflight struct{}

// Name implements Phase.
func (Preflight) Name() string { return "preflight" }

// Provision implements Phase.
func (Preflight) Provision(ctx *Context) error {
	tasks := []async.Task{{Name: "stack status", Func: func(c context.Context) error {
		stack, err := ctx.Clients.Stacks.Describe(c, ctx.Config.StackName())
		if errors.Is(err, cloudformation.ErrStackNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if cloudformation.InProgress(stack.Status) {
			return fmt.Errorf("%w: %s is %s", cloudformation.ErrStackBusy, stack.Name, stack.Status)
		}
		ctx.State.Existing = stack
		return nil
	}}}

	if ctx.Config.UsesExistingVPC() {
		tasks = append(tasks, async.Task{Name: "network lookup", Func: func(c context.Context) error {
			network, err := ResolveNetwork(c, ctx.Config, ctx.Clients.Networks)
			if err != nil {
				return err
			}
			ctx.State.Network = network
			return nil
		}})
	}

	return async.RunParallel(ctx, tasks)
}

// Synth renders the template.
type Synth struct{}

// Name implements Phase.
func (Synth) Name() string { return "synthesize" }

// Provision implements Phase.
func (Synth) Provision(ctx *Context) error {
	stack, _, err := Synthesize(ctx.Config, ctx.State.Network)
	if err != nil {
		return err
	}
	body, err := stack.Template().CompactJSON()
	if err != nil {
		return err
	}
	ctx.State.Template = body
	return nil
}

// Stage uploads the template when it is too large to send inline.
type Stage struct{}

// Name implements Phase.
func (Stage) Name() string { return "stage" }

// Provision implements Phase.
func (Stage) Provision(ctx *Context) error {
	size := len(ctx.State.Template)
	if !s3.NeedsStaging(ctx.State.Template) {
		LogPhaseSkipped(ctx.Observer, Stage{}.Name(), fmt.Sprintf("template fits inline (%d bytes)", size))
		return nil
	}
	if ctx.Config.Deploy.Bucket == "" || ctx.Clients.Stager == nil {
		return fmt.Errorf("%w: %d bytes exceed %d, set deploy.bucket", ErrTemplateTooLarge, size, s3.MaxInlineTemplateBytes)
	}

	url, err := ctx.Clients.Stager.StageTemplate(ctx, ctx.Config.Deploy.Bucket, ctx.Config.StackName(), ctx.State.Template)
	if err != nil {
		return err
	}
	ctx.State.TemplateURL = url
	return nil
}

// Apply creates or updates the stack and waits for it to settle.
type Apply struct{}

// Name implements Phase.
func (Apply) Name() string { return "apply" }

// Provision implements Phase.
func (Apply) Provision(ctx *Context) error {
	in := cloudformation.DeployInput{
		StackName: ctx.Config.StackName(),
		Tags:      ctx.Config.StackProps().Tags,
	}
	if ctx.State.TemplateURL != "" {
		in.TemplateURL = ctx.State.TemplateURL
	} else {
		in.TemplateBody = string(ctx.State.Template)
	}

	change, err := ctx.Clients.Stacks.Deploy(ctx, in)
	if err != nil {
		return err
	}
	ctx.State.Change = change

	if change.Action == cloudformation.ActionNone {
		LogValidationWarning(ctx.Observer, Apply{}.Name(), "no changes to deploy")
		stack, err := ctx.Clients.Stacks.Describe(ctx, change.StackID)
		if err != nil {
			return err
		}
		ctx.State.Stack = stack
		return nil
	}

	return wait(ctx, Apply{}.Name(), change)
}

// Destroy deletes the stack and waits until it is gone.
type Destroy struct{}

// Name implements Phase.
func (Destroy) Name() string { return "destroy" }

// Provision implements Phase.
func (Destroy) Provision(ctx *Context) error {
	change, err := ctx.Clients.Stacks.Delete(ctx, ctx.Config.StackName())
	if errors.Is(err, cloudformation.ErrStackNotFound) {
		LogPhaseSkipped(ctx.Observer, Destroy{}.Name(), "stack does not exist")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.State.Change = change
	return wait(ctx, Destroy{}.Name(), change)
}

func wait(ctx *Context, phase string, change *cloudformation.DeployResult) error {
	waitCtx, cancel := context.WithTimeout(ctx, ctx.Config.DeployTimeout())
	defer cancel()

	stack, err := ctx.Clients.Stacks.Wait(waitCtx, change.StackID, change.Since, func(e cloudformation.Event) {
		LogStackEvent(ctx.Observer, phase, e)
		ctx.Metrics.recordStackEvent(e.Status)
	})
	ctx.State.Stack = stack
	return err
}
