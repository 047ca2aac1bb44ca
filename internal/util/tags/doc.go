// Package tags provides consistent tagging for declared AWS resources.
//
// This package enforces uniform tag keys across all resources in a stack,
// enabling easy identification, cost allocation, and cleanup of resources
// belonging to the same game server deployment.
//
// Standard tag keys use the valheimctl.io domain prefix for namespacing.
package tags
