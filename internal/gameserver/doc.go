// Package gameserver declares the infrastructure for one dedicated game
// server.
//
// [New] takes a scope, an id and a [Config] whose fields are all optional,
// resolves defaults and declares a fixed topology: a network boundary (a new
// VPC unless one is supplied), an encrypted EFS file system for save data, an
// ECS cluster with a two-container Fargate task (game server plus an nginx
// sidecar that answers health checks), a server password secret (generated
// unless one is supplied), a security group, and an internet-facing network
// load balancer with one listener and target group per game port.
//
// Nothing here talks to AWS. The result is a set of declarations in the
// enclosing stack's template; CloudFormation materializes them and reports
// any invalid combination (for example an unsupported CPU/memory pair) at
// apply time.
package gameserver
