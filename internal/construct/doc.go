// Package construct provides the scope tree that declarations hang off.
//
// An [App] holds one or more [Stack]s; each stack owns a CloudFormation
// template. Any value that implements [Scope] can parent further nodes, so
// higher-level building blocks (a whole game server, a VPC) are themselves
// scopes for the resources they declare.
//
// Every node has an id unique among its siblings and a path made of the ids
// from the stack down. Resources are keyed in the template by a logical ID
// derived from that path: the alphanumeric parts of each id concatenated,
// followed by an 8-character hash of the full path. Top-level resources
// directly under a stack keep their plain id.
package construct
