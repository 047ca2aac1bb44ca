package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes phases sequentially and stops at the first failure.
func RunPhases(ctx *Context, phases []Phase) error {
	for _, phase := range phases {
		start := time.Now()
		LogPhaseStart(ctx.Observer, phase.Name())

		err := phase.Provision(ctx)
		ctx.Metrics.recordPhase(phase.Name(), err, time.Since(start).Seconds())
		if err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(start))
	}

	ctx.Metrics.recordSuccess()
	return nil
}
