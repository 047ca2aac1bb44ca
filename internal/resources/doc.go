// Package resources declares AWS resources into a construct tree.
//
// Each builder takes a scope, an id and a typed property struct whose JSON
// tags match the CloudFormation property names, declares the
// resource in the enclosing stack's template and returns a [Resource]
// handle for wiring references (Ref, Fn::GetAtt) into other resources.
//
// Stack tags are merged into every taggable resource. Networking resources
// also get a Name tag carrying their construct path, which is what the EC2
// console shows.
//
// Builders never validate property values: invalid combinations such as an
// unsupported Fargate CPU/memory pair are reported by CloudFormation at apply
// time.
package resources
