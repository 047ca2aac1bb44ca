package naming

import (
	"fmt"
	"strings"
)

// Naming functions for stack-level names.
// Every AWS name valheimctl picks is derived from the stack name so that a
// deployment's resources are easy to find and never collide across stacks.

// Stack returns the CloudFormation stack name for a server name.
func Stack(name string) string {
	return name
}

// TemplateObjectKey returns the S3 key a template with the given content
// digest is staged under.
func TemplateObjectKey(stack, digest string) string {
	return fmt.Sprintf("valheimctl/%s/%s.template.json", stack, digest)
}

// TemplateURL returns the virtual-hosted S3 URL for a staged template.
func TemplateURL(bucket, region, key string) string {
	if region == "" || region == "us-east-1" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

// LogStreamPrefix returns the default awslogs stream prefix for a stack.
func LogStreamPrefix(stack string) string {
	return strings.ToLower(stack)
}
