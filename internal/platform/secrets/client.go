// Package secrets reads the game server password from Secrets Manager.
package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

var (
	// ErrSecretNotFound is returned when the secret does not exist.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrNotAString is returned for binary secrets.
	ErrNotAString = errors.New("secret has no string value")
)

// API is the subset of the Secrets Manager API the client uses.
type API interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Client reads secrets.
type Client struct {
	api API
}

// NewClient creates a client for the region in cfg.
func NewClient(cfg aws.Config) *Client {
	return New(secretsmanager.NewFromConfig(cfg))
}

// New wraps an API implementation.
func New(api API) *Client {
	return &Client{api: api}
}

// Value returns the current string value of the secret with the given ARN
// or name.
func (c *Client) Value(ctx context.Context, secretID string) (string, error) {
	out, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(secretID)})
	if err != nil {
		var nf *types.ResourceNotFoundException
		if errors.As(err, &nf) {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, secretID)
		}
		return "", fmt.Errorf("failed to read secret %s: %w", secretID, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("%w: %s", ErrNotAString, secretID)
	}
	return *out.SecretString, nil
}
