package resources

import (
	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/template"
)

// ECS resource types.
const (
	TypeCluster                             = "AWS::ECS::Cluster"
	TypeClusterCapacityProviderAssociations = "AWS::ECS::ClusterCapacityProviderAssociations"
	TypeTaskDefinition                      = "AWS::ECS::TaskDefinition"
	TypeService                             = "AWS::ECS::Service"
)

// Fargate capacity providers.
const (
	CapacityProviderFargate     = "FARGATE"
	CapacityProviderFargateSpot = "FARGATE_SPOT"
)

// ClusterSetting is a named cluster flag.
type ClusterSetting struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// ClusterProps configures an AWS::ECS::Cluster.
type ClusterProps struct {
	ClusterSettings []ClusterSetting `json:"ClusterSettings,omitempty"`
	Tags            []template.Tag   `json:"Tags,omitempty"`
}

// NewCluster declares an ECS cluster.
func NewCluster(scope construct.Scope, id string, props *ClusterProps) (*Resource, error) {
	return declare(scope, id, TypeCluster, props, &props.Tags)
}

// CapacityProviderStrategyItem weights one capacity provider.
type CapacityProviderStrategyItem struct {
	CapacityProvider string `json:"CapacityProvider"`
	Weight           int    `json:"Weight"`
	Base             int    `json:"Base,omitempty"`
}

// ClusterCapacityProviderAssociationsProps configures an
// AWS::ECS::ClusterCapacityProviderAssociations.
type ClusterCapacityProviderAssociationsProps struct {
	Cluster                         any                            `json:"Cluster"`
	CapacityProviders               []string                       `json:"CapacityProviders"`
	DefaultCapacityProviderStrategy []CapacityProviderStrategyItem `json:"DefaultCapacityProviderStrategy"`
}

// NewClusterCapacityProviderAssociations enables capacity providers on a
// cluster.
func NewClusterCapacityProviderAssociations(scope construct.Scope, id string, props *ClusterCapacityProviderAssociationsProps) (*Resource, error) {
	return declare(scope, id, TypeClusterCapacityProviderAssociations, props, nil)
}

// PortMapping publishes a container port. In awsvpc mode HostPort must equal
// ContainerPort.
type PortMapping struct {
	ContainerPort int    `json:"ContainerPort"`
	HostPort      int    `json:"HostPort"`
	Protocol      string `json:"Protocol"`
}

// MountPoint mounts a task volume into a container.
type MountPoint struct {
	SourceVolume  string `json:"SourceVolume"`
	ContainerPath string `json:"ContainerPath"`
	ReadOnly      bool   `json:"ReadOnly"`
}

// KeyValuePair is a plain environment variable.
type KeyValuePair struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// ContainerSecret injects a secret into a container's environment. ValueFrom
// is the ARN of a Secrets Manager secret or SSM parameter.
type ContainerSecret struct {
	Name      string `json:"Name"`
	ValueFrom any    `json:"ValueFrom"`
}

// LogConfiguration selects a container log driver.
type LogConfiguration struct {
	LogDriver string         `json:"LogDriver"`
	Options   map[string]any `json:"Options,omitempty"`
}

// ContainerDefinition describes one container of a task.
type ContainerDefinition struct {
	Name             string            `json:"Name"`
	Image            string            `json:"Image"`
	Essential        bool              `json:"Essential"`
	PortMappings     []PortMapping     `json:"PortMappings,omitempty"`
	MountPoints      []MountPoint      `json:"MountPoints,omitempty"`
	Environment      []KeyValuePair    `json:"Environment,omitempty"`
	Secrets          []ContainerSecret `json:"Secrets,omitempty"`
	LogConfiguration *LogConfiguration `json:"LogConfiguration,omitempty"`
}

// AuthorizationConfig selects the EFS access point a volume mounts through.
type AuthorizationConfig struct {
	AccessPointId any    `json:"AccessPointId,omitempty"`
	IAM           string `json:"IAM,omitempty"`
}

// EFSVolumeConfiguration backs a task volume with EFS.
type EFSVolumeConfiguration struct {
	FilesystemId        any                  `json:"FilesystemId"`
	RootDirectory       string               `json:"RootDirectory,omitempty"`
	TransitEncryption   string               `json:"TransitEncryption,omitempty"`
	AuthorizationConfig *AuthorizationConfig `json:"AuthorizationConfig,omitempty"`
}

// Volume is a task volume.
type Volume struct {
	Name                   string                  `json:"Name"`
	EFSVolumeConfiguration *EFSVolumeConfiguration `json:"EFSVolumeConfiguration,omitempty"`
}

// TaskDefinitionProps configures an AWS::ECS::TaskDefinition.
type TaskDefinitionProps struct {
	Family                  any                   `json:"Family,omitempty"`
	Cpu                     string                `json:"Cpu"`
	Memory                  string                `json:"Memory"`
	NetworkMode             string                `json:"NetworkMode"`
	RequiresCompatibilities []string              `json:"RequiresCompatibilities"`
	ExecutionRoleArn        any                   `json:"ExecutionRoleArn,omitempty"`
	TaskRoleArn             any                   `json:"TaskRoleArn,omitempty"`
	ContainerDefinitions    []ContainerDefinition `json:"ContainerDefinitions"`
	Volumes                 []Volume              `json:"Volumes,omitempty"`
	Tags                    []template.Tag        `json:"Tags,omitempty"`
}

// NewTaskDefinition declares a task definition.
func NewTaskDefinition(scope construct.Scope, id string, props *TaskDefinitionProps) (*Resource, error) {
	return declare(scope, id, TypeTaskDefinition, props, &props.Tags)
}

// Container returns the container definition with the given name.
func (p *TaskDefinitionProps) Container(name string) (*ContainerDefinition, bool) {
	for i := range p.ContainerDefinitions {
		if p.ContainerDefinitions[i].Name == name {
			return &p.ContainerDefinitions[i], true
		}
	}
	return nil, false
}

// AwsVpcConfiguration places service tasks in subnets.
type AwsVpcConfiguration struct {
	AssignPublicIp string `json:"AssignPublicIp"`
	SecurityGroups []any  `json:"SecurityGroups"`
	Subnets        []any  `json:"Subnets"`
}

// NetworkConfiguration wraps the awsvpc settings of a service.
type NetworkConfiguration struct {
	AwsvpcConfiguration AwsVpcConfiguration `json:"AwsvpcConfiguration"`
}

// ServiceLoadBalancer registers a container port with a target group.
type ServiceLoadBalancer struct {
	ContainerName  string `json:"ContainerName"`
	ContainerPort  int    `json:"ContainerPort"`
	TargetGroupArn any    `json:"TargetGroupArn"`
}

// DeploymentConfiguration bounds task counts during deployments.
type DeploymentConfiguration struct {
	MaximumPercent        int `json:"MaximumPercent"`
	MinimumHealthyPercent int `json:"MinimumHealthyPercent"`
}

// ServiceProps configures an AWS::ECS::Service.
type ServiceProps struct {
	Cluster                       any                            `json:"Cluster"`
	TaskDefinition                any                            `json:"TaskDefinition"`
	DesiredCount                  int                            `json:"DesiredCount"`
	PlatformVersion               string                         `json:"PlatformVersion,omitempty"`
	CapacityProviderStrategy      []CapacityProviderStrategyItem `json:"CapacityProviderStrategy,omitempty"`
	NetworkConfiguration          *NetworkConfiguration          `json:"NetworkConfiguration,omitempty"`
	LoadBalancers                 []ServiceLoadBalancer          `json:"LoadBalancers,omitempty"`
	HealthCheckGracePeriodSeconds int                            `json:"HealthCheckGracePeriodSeconds,omitempty"`
	DeploymentConfiguration       *DeploymentConfiguration       `json:"DeploymentConfiguration,omitempty"`
	EnableECSManagedTags          bool                           `json:"EnableECSManagedTags"`
	PropagateTags                 string                         `json:"PropagateTags,omitempty"`
	Tags                          []template.Tag                 `json:"Tags,omitempty"`
}

// NewService declares an ECS service.
func NewService(scope construct.Scope, id string, props *ServiceProps) (*Resource, error) {
	return declare(scope, id, TypeService, props, &props.Tags)
}
