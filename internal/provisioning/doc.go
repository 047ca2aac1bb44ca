// Package provisioning runs a deployment as a sequence of phases.
//
// # Core Types
//
// Context carries the configuration, the platform clients, the observer and
// the run's metrics. Phase is one step with Name() and Provision(). State
// accumulates what the phases find and produce: the resolved network, the
// synthesized template, the staged template URL and the final stack.
//
// # Phases
//
//   - Preflight: checks the stack is not mid-operation and looks up an
//     existing VPC, concurrently.
//   - Synth: builds the game server template.
//   - Stage: uploads templates too large to send inline.
//   - Apply: creates or updates the stack and waits for it.
//   - Destroy: deletes the stack and waits for it.
package provisioning
