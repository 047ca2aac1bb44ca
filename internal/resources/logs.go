package resources

import (
	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/template"
)

// TypeLogGroup is the CloudWatch Logs log group resource type.
const TypeLogGroup = "AWS::Logs::LogGroup"

// LogGroupProps configures an AWS::Logs::LogGroup.
type LogGroupProps struct {
	LogGroupName    string         `json:"LogGroupName,omitempty"`
	RetentionInDays int            `json:"RetentionInDays,omitempty"`
	Tags            []template.Tag `json:"Tags,omitempty"`
}

// NewLogGroup declares a log group.
func NewLogGroup(scope construct.Scope, id string, props *LogGroupProps) (*Resource, error) {
	return declare(scope, id, TypeLogGroup, props, &props.Tags)
}
