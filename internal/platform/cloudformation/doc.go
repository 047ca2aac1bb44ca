// Package cloudformation hands synthesized templates to AWS CloudFormation.
//
// The client creates or updates a stack, streams its events while waiting
// for a terminal status, deletes stacks and reads outputs. Diffing and
// rollback stay with CloudFormation.
package cloudformation
