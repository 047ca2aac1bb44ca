package resources

import (
	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/template"
)

// IAM resource types.
const (
	TypeRole   = "AWS::IAM::Role"
	TypePolicy = "AWS::IAM::Policy"
)

// PolicyVersion is the IAM policy language version.
const PolicyVersion = "2012-10-17"

// Statement is one IAM policy statement.
type Statement struct {
	Effect    string         `json:"Effect"`
	Action    []string       `json:"Action"`
	Resource  any            `json:"Resource,omitempty"`
	Principal map[string]any `json:"Principal,omitempty"`
}

// PolicyDocument is an IAM policy document.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// ServicePrincipalDocument returns a trust policy allowing service to assume
// the role.
func ServicePrincipalDocument(service string) PolicyDocument {
	return PolicyDocument{
		Version: PolicyVersion,
		Statement: []Statement{{
			Effect:    "Allow",
			Action:    []string{"sts:AssumeRole"},
			Principal: map[string]any{"Service": service},
		}},
	}
}

// RoleProps configures an AWS::IAM::Role.
type RoleProps struct {
	AssumeRolePolicyDocument PolicyDocument `json:"AssumeRolePolicyDocument"`
	Tags                     []template.Tag `json:"Tags,omitempty"`
}

// NewRole declares an IAM role.
func NewRole(scope construct.Scope, id string, props *RoleProps) (*Resource, error) {
	return declare(scope, id, TypeRole, props, &props.Tags)
}

// PolicyProps configures an AWS::IAM::Policy attached to roles.
type PolicyProps struct {
	PolicyName     any            `json:"PolicyName"`
	PolicyDocument PolicyDocument `json:"PolicyDocument"`
	Roles          []any          `json:"Roles"`
}

// NewPolicy declares an inline policy.
func NewPolicy(scope construct.Scope, id string, props *PolicyProps) (*Resource, error) {
	return declare(scope, id, TypePolicy, props, nil)
}
