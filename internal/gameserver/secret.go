package gameserver

import (
	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/resources"
)

// SecretRef is a secret holding the server password.
type SecretRef interface {
	SecretARN() any
}

// ExistingSecret is the ARN of a caller-owned secret.
type ExistingSecret string

// SecretARN implements SecretRef.
func (s ExistingSecret) SecretARN() any { return string(s) }

// GeneratedSecret is a secret whose value Secrets Manager generates at
// deploy time.
type GeneratedSecret struct {
	Resource *resources.Resource
	Name     string
}

// SecretARN implements SecretRef. A Ref to a secret resolves to its ARN.
func (s *GeneratedSecret) SecretARN() any { return s.Resource.Ref() }

func newGeneratedSecret(scope construct.Scope, name string) (*GeneratedSecret, error) {
	r, err := resources.NewSecret(scope, "GeneratedServerPasswordSecret", &resources.SecretProps{
		Name:        name,
		Description: "Game server password",
		GenerateSecretString: &resources.GenerateSecretString{
			PasswordLength: PasswordLength,
		},
	})
	if err != nil {
		return nil, err
	}
	r.DeletionPolicy(resources.PolicyDelete)
	return &GeneratedSecret{Resource: r, Name: name}, nil
}
