// Package template models a CloudFormation template.
//
// A Template is a plain value: resources keyed by logical ID, each with a
// resource type and a property bag, plus stack outputs. Property bags are
// arbitrary JSON-encodable values, usually the typed structs from the
// resources package. Intrinsic functions (Ref, Fn::GetAtt, Fn::Join, ...)
// are represented by [Intrinsic] values that encode to the CloudFormation
// wire shape.
//
// Templates render to JSON with [Template.JSON] and to YAML with
// [Template.YAML].
package template
