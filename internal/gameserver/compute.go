package gameserver

import (
	"strconv"

	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/resources"
	"github.com/imamik/valheimctl/internal/template"
)

// Fargate service settings.
const (
	PlatformVersion = "1.4.0"

	spotWeight     = 2
	onDemandWeight = 1

	healthCheckGracePeriodSeconds = 60
)

// Compute is the ECS side of the server.
type Compute struct {
	Cluster           *resources.Resource
	CapacityProviders *resources.Resource
	TaskDefinition    *resources.Resource
	ExecutionRole     *resources.Resource
	TaskRole          *resources.Resource
	LogGroup          *resources.Resource
	Service           *resources.Resource
	executionPolicy   *resources.Resource
	taskPolicy        *resources.Resource
}

func newCluster(scope construct.Scope, cfg Config) (*Compute, error) {
	insights := "disabled"
	if cfg.ContainerInsights {
		insights = "enabled"
	}

	cluster, err := resources.NewCluster(scope, "Cluster", &resources.ClusterProps{
		ClusterSettings: []resources.ClusterSetting{{Name: "containerInsights", Value: insights}},
	})
	if err != nil {
		return nil, err
	}

	assoc, err := resources.NewClusterCapacityProviderAssociations(scope, "ClusterCapacityProviders", &resources.ClusterCapacityProviderAssociationsProps{
		Cluster:                         cluster.Ref(),
		CapacityProviders:               []string{resources.CapacityProviderFargate, resources.CapacityProviderFargateSpot},
		DefaultCapacityProviderStrategy: []resources.CapacityProviderStrategyItem{},
	})
	if err != nil {
		return nil, err
	}

	return &Compute{Cluster: cluster, CapacityProviders: assoc}, nil
}

// addTaskDefinition declares the two-container task. Only the server
// container mounts storage and receives the password.
func (c *Compute) addTaskDefinition(scope construct.Scope, cfg Config, secret SecretRef, storage *Storage) error {
	td, err := construct.New(scope, "TaskDef")
	if err != nil {
		return err
	}

	c.TaskRole, err = resources.NewRole(td, "TaskRole", &resources.RoleProps{
		AssumeRolePolicyDocument: resources.ServicePrincipalDocument("ecs-tasks.amazonaws.com"),
	})
	if err != nil {
		return err
	}
	c.taskPolicy, err = resources.NewPolicy(td, "TaskRoleDefaultPolicy", &resources.PolicyProps{
		PolicyName: "TaskRoleDefaultPolicy",
		PolicyDocument: resources.PolicyDocument{
			Version:   resources.PolicyVersion,
			Statement: []resources.Statement{storage.ClientStatement()},
		},
		Roles: []any{c.TaskRole.Ref()},
	})
	if err != nil {
		return err
	}

	c.ExecutionRole, err = resources.NewRole(td, "ExecutionRole", &resources.RoleProps{
		AssumeRolePolicyDocument: resources.ServicePrincipalDocument("ecs-tasks.amazonaws.com"),
	})
	if err != nil {
		return err
	}

	execStatements := []resources.Statement{{
		Effect:   "Allow",
		Action:   []string{"secretsmanager:GetSecretValue", "secretsmanager:DescribeSecret"},
		Resource: secret.SecretARN(),
	}}

	var logConfig *resources.LogConfiguration
	if cfg.Logging != nil {
		c.LogGroup, err = resources.NewLogGroup(td, "ServerLogGroup", &resources.LogGroupProps{
			RetentionInDays: cfg.Logging.RetentionDays,
		})
		if err != nil {
			return err
		}
		c.LogGroup.DeletionPolicy(resources.PolicyDelete)

		prefix := cfg.Logging.StreamPrefix
		if prefix == "" {
			prefix = scope.Node().ID()
		}
		logConfig = &resources.LogConfiguration{
			LogDriver: "awslogs",
			Options: map[string]any{
				"awslogs-group":         c.LogGroup.Ref(),
				"awslogs-stream-prefix": prefix,
				"awslogs-region":        template.Ref(template.PseudoRegion),
			},
		}
		execStatements = append(execStatements, resources.Statement{
			Effect:   "Allow",
			Action:   []string{"logs:CreateLogStream", "logs:PutLogEvents"},
			Resource: c.LogGroup.GetAtt("Arn"),
		})
	}

	c.executionPolicy, err = resources.NewPolicy(td, "ExecutionRoleDefaultPolicy", &resources.PolicyProps{
		PolicyName: "ExecutionRoleDefaultPolicy",
		PolicyDocument: resources.PolicyDocument{
			Version:   resources.PolicyVersion,
			Statement: execStatements,
		},
		Roles: []any{c.ExecutionRole.Ref()},
	})
	if err != nil {
		return err
	}

	server := resources.ContainerDefinition{
		Name:      ServerContainerName,
		Image:     cfg.Image,
		Essential: true,
		MountPoints: []resources.MountPoint{{
			SourceVolume:  VolumeName,
			ContainerPath: cfg.SaveDir,
			ReadOnly:      false,
		}},
		Secrets: []resources.ContainerSecret{{
			Name:      PasswordEnvVar,
			ValueFrom: secret.SecretARN(),
		}},
		LogConfiguration: logConfig,
	}
	for _, p := range cfg.GamePorts {
		server.PortMappings = append(server.PortMappings, resources.PortMapping{
			ContainerPort: p.Number,
			HostPort:      p.Number,
			Protocol:      string(p.Protocol),
		})
	}
	for _, k := range cfg.sortedEnvironment() {
		server.Environment = append(server.Environment, resources.KeyValuePair{Name: k, Value: cfg.Environment[k]})
	}

	sidecar := resources.ContainerDefinition{
		Name:      SidecarContainerName,
		Image:     cfg.SidecarImage,
		Essential: true,
		PortMappings: []resources.PortMapping{{
			ContainerPort: HealthCheckPort,
			HostPort:      HealthCheckPort,
			Protocol:      resources.ProtocolTCP,
		}},
	}

	c.TaskDefinition, err = resources.NewTaskDefinition(td, "Resource", &resources.TaskDefinitionProps{
		Family:                  template.Join("", template.Ref(template.PseudoStackName), "-", scope.Node().ID()),
		Cpu:                     strconv.Itoa(cfg.CPU),
		Memory:                  strconv.Itoa(cfg.MemoryLimitMiB),
		NetworkMode:             "awsvpc",
		RequiresCompatibilities: []string{"FARGATE"},
		ExecutionRoleArn:        c.ExecutionRole.GetAtt("Arn"),
		TaskRoleArn:             c.TaskRole.GetAtt("Arn"),
		ContainerDefinitions:    []resources.ContainerDefinition{server, sidecar},
		Volumes:                 []resources.Volume{storage.Volume()},
	})
	return err
}

// addService declares the Fargate service running the task in the private
// subnets behind the given listeners.
func (c *Compute) addService(scope construct.Scope, cfg Config, network Network, group *resources.Resource, exposure *Exposure, storage *Storage) error {
	var lbs []resources.ServiceLoadBalancer
	for _, ep := range exposure.Points {
		lbs = append(lbs, resources.ServiceLoadBalancer{
			ContainerName:  ServerContainerName,
			ContainerPort:  ep.Port.Number,
			TargetGroupArn: ep.TargetGroup.Ref(),
		})
	}

	var err error
	c.Service, err = resources.NewService(scope, "Service", &resources.ServiceProps{
		Cluster:         c.Cluster.Ref(),
		TaskDefinition:  c.TaskDefinition.Ref(),
		DesiredCount:    *cfg.DesiredCount,
		PlatformVersion: PlatformVersion,
		CapacityProviderStrategy: []resources.CapacityProviderStrategyItem{
			{CapacityProvider: resources.CapacityProviderFargateSpot, Weight: spotWeight},
			{CapacityProvider: resources.CapacityProviderFargate, Weight: onDemandWeight},
		},
		NetworkConfiguration: &resources.NetworkConfiguration{
			AwsvpcConfiguration: resources.AwsVpcConfiguration{
				AssignPublicIp: "DISABLED",
				SecurityGroups: []any{group.GetAtt("GroupId")},
				Subnets:        network.PrivateSubnetIDs(),
			},
		},
		LoadBalancers:                 lbs,
		HealthCheckGracePeriodSeconds: healthCheckGracePeriodSeconds,
		// One task at a time: two servers must never share a world.
		DeploymentConfiguration: &resources.DeploymentConfiguration{
			MaximumPercent:        100,
			MinimumHealthyPercent: 0,
		},
		EnableECSManagedTags: true,
		PropagateTags:        "SERVICE",
	})
	if err != nil {
		return err
	}

	for _, ep := range exposure.Points {
		c.Service.DependsOn(ep.Listener)
	}
	c.Service.DependsOn(c.CapacityProviders, c.taskPolicy, c.executionPolicy)
	c.Service.DependsOn(storage.MountTargets...)
	return nil
}
