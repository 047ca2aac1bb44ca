package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/logging"
	"github.com/imamik/valheimctl/internal/platform/awsclient"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
	"github.com/imamik/valheimctl/internal/platform/ec2"
	"github.com/imamik/valheimctl/internal/platform/s3"
	"github.com/imamik/valheimctl/internal/platform/secrets"
	"github.com/imamik/valheimctl/internal/provisioning"
)

// Factory functions for dependency injection in tests.
var (
	loadConfigFile    = config.Load
	resolveConfigPath = config.Resolve
	newAWSConfig      = awsclient.Load

	newStackManager = func(cfg aws.Config) provisioning.StackManager {
		return cloudformation.NewClient(cfg)
	}
	newStager = func(cfg aws.Config) provisioning.TemplateStager {
		return s3.NewClient(cfg)
	}
	newNetworkResolver = func(cfg aws.Config) provisioning.NetworkResolver {
		return ec2.NewClient(cfg)
	}
	newSecretReader = func(cfg aws.Config) secretReader {
		return secrets.NewClient(cfg)
	}
)

// secretReader reads a secret string.
type secretReader interface {
	Value(ctx context.Context, secretID string) (string, error)
}

type endpointKey struct{}

// WithEndpoint records an AWS endpoint override for the handlers.
func WithEndpoint(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, endpointKey{}, url)
}

func endpointFrom(ctx context.Context) string {
	url, _ := ctx.Value(endpointKey{}).(string)
	return url
}

// loadConfig loads the config from path or from the nearest valheim.yaml.
func loadConfig(path string) (*config.Config, error) {
	resolved, err := resolveConfigPath(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("no config file found: %w\nRun 'valheimctl init' to create one", err)
		}
		return nil, err
	}

	cfg, err := loadConfigFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// awsConfig resolves credentials and region for cfg. Local endpoints get
// dummy credentials when none are set in the environment.
func awsConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	opts := awsclient.Options{
		Region:   cfg.Region,
		Profile:  cfg.Profile,
		Endpoint: endpointFrom(ctx),
	}
	if opts.Endpoint != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		opts.AccessKeyID = "test"
		opts.SecretAccessKey = "test"
	}
	return newAWSConfig(ctx, opts)
}

// newClients builds the platform clients a provisioning run uses. The
// stager and network resolver are only built when cfg needs them.
func newClients(ctx context.Context, cfg *config.Config) (provisioning.Clients, error) {
	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return provisioning.Clients{}, err
	}

	clients := provisioning.Clients{Stacks: newStackManager(awsCfg)}
	if cfg.Deploy.Bucket != "" {
		clients.Stager = newStager(awsCfg)
	}
	if cfg.UsesExistingVPC() && !cfg.NetworkComplete() {
		clients.Networks = newNetworkResolver(awsCfg)
	}
	return clients, nil
}

// newObserver logs provisioning events through the logger in ctx.
func newObserver(ctx context.Context) provisioning.Observer {
	return provisioning.NewLogObserver(logging.FromContext(ctx))
}
