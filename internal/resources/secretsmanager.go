package resources

import (
	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/template"
)

// TypeSecret is the Secrets Manager secret resource type.
const TypeSecret = "AWS::SecretsManager::Secret"

// GenerateSecretString asks Secrets Manager to generate the secret value at
// creation time.
type GenerateSecretString struct {
	PasswordLength     int    `json:"PasswordLength"`
	ExcludeCharacters  string `json:"ExcludeCharacters,omitempty"`
	ExcludePunctuation bool   `json:"ExcludePunctuation,omitempty"`
}

// SecretProps configures an AWS::SecretsManager::Secret.
type SecretProps struct {
	Name                 string                `json:"Name,omitempty"`
	Description          string                `json:"Description,omitempty"`
	GenerateSecretString *GenerateSecretString `json:"GenerateSecretString,omitempty"`
	Tags                 []template.Tag        `json:"Tags,omitempty"`
}

// NewSecret declares a secret. Ref on a secret yields its ARN.
func NewSecret(scope construct.Scope, id string, props *SecretProps) (*Resource, error) {
	return declare(scope, id, TypeSecret, props, &props.Tags)
}
