package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errStackNameRequired = errors.New("stack name is required")
	errStackNameInvalid  = errors.New("stack name must start with a letter and contain only letters, digits and hyphens (max 128)")
	errSecretARNInvalid  = errors.New("secret ARN must look like arn:aws:secretsmanager:<region>:<account>:secret:<name>")
)
