package template

import (
	"fmt"
	"sort"
)

// FormatVersion is the only template format version CloudFormation accepts.
const FormatVersion = "2010-09-09"

// Template is a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string               `json:"AWSTemplateFormatVersion"`
	Description              string               `json:"Description,omitempty"`
	Resources                map[string]*Resource `json:"Resources"`
	Outputs                  map[string]*Output   `json:"Outputs,omitempty"`
}

// Resource is a single declared resource.
type Resource struct {
	Type                string   `json:"Type"`
	Properties          any      `json:"Properties,omitempty"`
	DependsOn           []string `json:"DependsOn,omitempty"`
	DeletionPolicy      string   `json:"DeletionPolicy,omitempty"`
	UpdateReplacePolicy string   `json:"UpdateReplacePolicy,omitempty"`
}

// Output is a stack output.
type Output struct {
	Description string  `json:"Description,omitempty"`
	Value       any     `json:"Value"`
	Export      *Export `json:"Export,omitempty"`
}

// Export names an output for cross-stack references.
type Export struct {
	Name any `json:"Name"`
}

// Tag is a CloudFormation resource tag.
type Tag struct {
	Key   string `json:"Key"`
	Value any    `json:"Value"`
}

// New returns an empty template.
func New(description string) *Template {
	return &Template{
		AWSTemplateFormatVersion: FormatVersion,
		Description:              description,
		Resources:                make(map[string]*Resource),
		Outputs:                  make(map[string]*Output),
	}
}

// AddResource registers a resource under logicalID.
func (t *Template) AddResource(logicalID string, r *Resource) error {
	if _, exists := t.Resources[logicalID]; exists {
		return fmt.Errorf("resource %q already declared", logicalID)
	}
	t.Resources[logicalID] = r
	return nil
}

// AddOutput registers an output under key.
func (t *Template) AddOutput(key string, o *Output) error {
	if _, exists := t.Outputs[key]; exists {
		return fmt.Errorf("output %q already declared", key)
	}
	t.Outputs[key] = o
	return nil
}

// LogicalIDs returns the sorted logical IDs of all resources.
func (t *Template) LogicalIDs() []string {
	ids := make([]string, 0, len(t.Resources))
	for id := range t.Resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResourcesOfType returns the resources of the given type keyed by logical ID.
func (t *Template) ResourcesOfType(resourceType string) map[string]*Resource {
	out := make(map[string]*Resource)
	for id, r := range t.Resources {
		if r.Type == resourceType {
			out[id] = r
		}
	}
	return out
}

// CountOfType returns how many resources of the given type are declared.
func (t *Template) CountOfType(resourceType string) int {
	return len(t.ResourcesOfType(resourceType))
}
