package resources

import (
	"fmt"

	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/template"
)

// Resource is a handle to a declared resource.
type Resource struct {
	LogicalID string
	Type      string
	decl      *template.Resource
}

// Ref returns a Ref to the resource.
func (r *Resource) Ref() template.Intrinsic {
	return template.Ref(r.LogicalID)
}

// GetAtt returns an Fn::GetAtt of the resource.
func (r *Resource) GetAtt(attribute string) template.Intrinsic {
	return template.GetAtt(r.LogicalID, attribute)
}

// Properties returns the property struct the resource was declared with.
func (r *Resource) Properties() any {
	return r.decl.Properties
}

// DependsOn adds explicit dependencies on other resources.
func (r *Resource) DependsOn(others ...*Resource) {
	for _, o := range others {
		if o == nil {
			continue
		}
		r.decl.DependsOn = appendUnique(r.decl.DependsOn, o.LogicalID)
	}
}

// Dependencies returns the logical IDs the resource explicitly depends on.
func (r *Resource) Dependencies() []string {
	out := make([]string, len(r.decl.DependsOn))
	copy(out, r.decl.DependsOn)
	return out
}

// DeletionPolicy sets what CloudFormation does with the physical resource
// when it is removed from the stack.
func (r *Resource) DeletionPolicy(policy string) {
	r.decl.DeletionPolicy = policy
	r.decl.UpdateReplacePolicy = policy
}

// PolicyDelete removes the physical resource with the stack.
const PolicyDelete = "Delete"

// declare registers props in the stack that contains scope. When tags is
// non-nil the stack tags are prepended to it.
func declare(scope construct.Scope, id, resourceType string, props any, tags *[]template.Tag) (*Resource, error) {
	stack, err := construct.StackOf(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to declare %s %q: %w", resourceType, id, err)
	}

	if tags != nil {
		*tags = mergeTags(stack.Tags(), *tags)
	}

	decl := &template.Resource{Type: resourceType, Properties: props}
	lid, err := stack.Declare(scope, id, decl)
	if err != nil {
		return nil, fmt.Errorf("failed to declare %s %q: %w", resourceType, id, err)
	}

	return &Resource{LogicalID: lid, Type: resourceType, decl: decl}, nil
}

// mergeTags combines base and extra, with extra winning on key collisions.
func mergeTags(base, extra []template.Tag) []template.Tag {
	out := make([]template.Tag, 0, len(base)+len(extra))
	seen := make(map[string]int, len(base)+len(extra))
	for _, t := range append(append([]template.Tag{}, base...), extra...) {
		if i, ok := seen[t.Key]; ok {
			out[i] = t
			continue
		}
		seen[t.Key] = len(out)
		out = append(out, t)
	}
	return out
}

// nameTag returns the Name tag for a resource about to be declared.
func nameTag(scope construct.Scope, id string) template.Tag {
	return template.Tag{Key: "Name", Value: scope.Node().Path() + construct.PathSeparator + id}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
