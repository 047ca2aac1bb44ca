package config

import "time"

// Config is the user-facing configuration of one game server stack.
type Config struct {
	// Name is the CloudFormation stack name.
	Name string `yaml:"name" validate:"required,stack_name"`

	// Region is the AWS region to deploy into.
	Region string `yaml:"region" validate:"required,aws_region"`

	// Profile selects a named AWS profile. Empty means the default chain.
	Profile string `yaml:"profile,omitempty"`

	Server   ServerSpec   `yaml:"server,omitempty"`
	Password PasswordSpec `yaml:"password,omitempty"`
	Network  NetworkSpec  `yaml:"network,omitempty"`

	// Logging ships server output to CloudWatch Logs. Omit to disable.
	Logging *LoggingSpec `yaml:"logging,omitempty"`

	Deploy DeploySpec `yaml:"deploy,omitempty"`

	// Tags are applied to the stack and every taggable resource.
	Tags map[string]string `yaml:"tags,omitempty" validate:"dive,keys,min=1,max=128,endkeys,max=256"`
}

// ServerSpec sizes and configures the game server task.
type ServerSpec struct {
	// ID names the server inside the stack. Defaults to "Valheim".
	ID string `yaml:"id,omitempty" validate:"omitempty,max=64"`

	// CPU units for the Fargate task (default 1024).
	CPU int `yaml:"cpu,omitempty" validate:"omitempty,oneof=256 512 1024 2048 4096 8192 16384"`

	// Memory in MiB (default 8192). Must pair with CPU; AWS enforces the
	// combination at deploy time.
	Memory int `yaml:"memory,omitempty" validate:"omitempty,min=512,max=122880"`

	// Image is the game server image (default raykrueger/valheim).
	Image string `yaml:"image,omitempty"`

	// SidecarImage answers load balancer health checks on TCP 80.
	SidecarImage string `yaml:"sidecarImage,omitempty"`

	// Ports published through the load balancer (default 2456-2457/udp).
	Ports []PortSpec `yaml:"ports,omitempty" validate:"dive"`

	// SaveDir is where the world is persisted inside the container.
	SaveDir string `yaml:"saveDir,omitempty" validate:"omitempty,startswith=/"`

	ContainerInsights bool `yaml:"containerInsights,omitempty"`

	// DesiredCount is the number of running tasks (default 1). Set 0 to
	// deploy the server stopped.
	DesiredCount *int `yaml:"desiredCount,omitempty" validate:"omitempty,min=0,max=1"`

	// Environment is passed to the server container as plain variables.
	Environment map[string]string `yaml:"environment,omitempty" validate:"dive,keys,required,endkeys,max=4096"`

	// CLIOutput emits the scale-up command as a stack output (default true).
	CLIOutput *bool `yaml:"cliOutput,omitempty"`
}

// PortSpec is one published game port.
type PortSpec struct {
	Port     int    `yaml:"port" validate:"required,min=1,max=65535"`
	Protocol string `yaml:"protocol,omitempty" validate:"omitempty,oneof=udp tcp"`
}

// PasswordSpec selects where the server password comes from.
type PasswordSpec struct {
	// SecretARN references an existing Secrets Manager secret.
	SecretARN string `yaml:"secretArn,omitempty" validate:"omitempty,startswith=arn:"`

	// GeneratedSecretName names the generated secret when SecretARN is
	// empty (default ValheimServerPassword).
	GeneratedSecretName string `yaml:"generatedSecretName,omitempty" validate:"omitempty,max=512"`
}

// NetworkSpec deploys into an existing VPC. Leave empty to create one.
type NetworkSpec struct {
	VPCID string `yaml:"vpcId,omitempty" validate:"omitempty,startswith=vpc-"`

	// CIDR of the existing VPC. Looked up when empty.
	CIDR string `yaml:"cidr,omitempty" validate:"omitempty,cidrv4"`

	// PublicSubnets host the load balancer. Looked up when empty.
	PublicSubnets []string `yaml:"publicSubnets,omitempty" validate:"dive,startswith=subnet-"`

	// PrivateSubnets host the task and the EFS mount targets. Looked up
	// when empty.
	PrivateSubnets []string `yaml:"privateSubnets,omitempty" validate:"dive,startswith=subnet-"`

	// NewVPCCIDR is the CIDR of a newly created VPC (default 10.0.0.0/16).
	NewVPCCIDR string `yaml:"newVpcCidr,omitempty" validate:"omitempty,cidrv4"`
}

// LoggingSpec configures the awslogs driver.
type LoggingSpec struct {
	Driver        string `yaml:"driver,omitempty" validate:"omitempty,eq=awslogs"`
	StreamPrefix  string `yaml:"streamPrefix,omitempty"`
	RetentionDays int    `yaml:"retentionDays,omitempty" validate:"omitempty,oneof=1 3 5 7 14 30 60 90 120 150 180 365 400 545 731 1096 1827 2192 2557 2922 3288 3653"`
}

// DeploySpec tunes how the CLI hands the template to CloudFormation.
type DeploySpec struct {
	// Bucket stages templates too large to send inline.
	Bucket string `yaml:"bucket,omitempty" validate:"omitempty,min=3,max=63"`

	// Timeout bounds waiting for a stack operation (default 30m).
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// MetricsFile receives Prometheus text metrics after each run.
	MetricsFile string `yaml:"metricsFile,omitempty"`
}
