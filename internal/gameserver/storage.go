package gameserver

import (
	"fmt"

	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/resources"
)

// Storage is the persistent save volume: an encrypted EFS file system
// reachable from the private subnets.
type Storage struct {
	FileSystem    *resources.Resource
	SecurityGroup *resources.Resource
	MountTargets  []*resources.Resource
	AccessPoint   *resources.Resource
}

// Volume returns the task volume definition mounting the access point.
func (s *Storage) Volume() resources.Volume {
	return resources.Volume{
		Name: VolumeName,
		EFSVolumeConfiguration: &resources.EFSVolumeConfiguration{
			FilesystemId:      s.FileSystem.Ref(),
			TransitEncryption: "ENABLED",
			AuthorizationConfig: &resources.AuthorizationConfig{
				AccessPointId: s.AccessPoint.Ref(),
				IAM:           "ENABLED",
			},
		},
	}
}

// ClientStatement grants a task role read-write root access to the file
// system.
func (s *Storage) ClientStatement() resources.Statement {
	return resources.Statement{
		Effect: "Allow",
		Action: []string{
			"elasticfilesystem:ClientMount",
			"elasticfilesystem:ClientWrite",
			"elasticfilesystem:ClientRootAccess",
		},
		Resource: s.FileSystem.GetAtt("Arn"),
	}
}

// newStorage declares the file system under scope. Only clientGroup may
// reach the mount targets.
func newStorage(scope construct.Scope, network Network, clientGroup *resources.Resource) (*Storage, error) {
	c, err := construct.New(scope, "MyEfsFileSystem")
	if err != nil {
		return nil, err
	}

	s := &Storage{}

	s.FileSystem, err = resources.NewFileSystem(c, "Resource", &resources.FileSystemProps{
		Encrypted:       true,
		PerformanceMode: resources.PerformanceModeGeneralPurpose,
		LifecyclePolicies: []resources.LifecyclePolicy{
			{TransitionToIA: resources.TransitionAfter14Days},
		},
	})
	if err != nil {
		return nil, err
	}
	s.FileSystem.DeletionPolicy(resources.PolicyDelete)

	s.SecurityGroup, err = resources.NewSecurityGroup(c, "EfsSecurityGroup", &resources.SecurityGroupProps{
		GroupDescription:    c.Node().Path() + "/EfsSecurityGroup",
		VpcId:               network.VPCID(),
		SecurityGroupEgress: []resources.EgressRule{resources.AllowAllOutbound},
	})
	if err != nil {
		return nil, err
	}

	if _, err := resources.NewSecurityGroupIngress(c, "EfsSecurityGroupfromSecurityGroup", &resources.SecurityGroupIngressProps{
		GroupId:               s.SecurityGroup.GetAtt("GroupId"),
		IpProtocol:            resources.ProtocolTCP,
		FromPort:              resources.NFSPort,
		ToPort:                resources.NFSPort,
		SourceSecurityGroupId: clientGroup.GetAtt("GroupId"),
		Description:           fmt.Sprintf("from compute security group:%d", resources.NFSPort),
	}); err != nil {
		return nil, err
	}

	for i, subnet := range network.PrivateSubnetIDs() {
		mt, err := resources.NewMountTarget(c, fmt.Sprintf("EfsMountTarget%d", i+1), &resources.MountTargetProps{
			FileSystemId:   s.FileSystem.Ref(),
			SubnetId:       subnet,
			SecurityGroups: []any{s.SecurityGroup.GetAtt("GroupId")},
		})
		if err != nil {
			return nil, err
		}
		s.MountTargets = append(s.MountTargets, mt)
	}

	s.AccessPoint, err = resources.NewAccessPoint(c, "AccessPoint", &resources.AccessPointProps{
		FileSystemId: s.FileSystem.Ref(),
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}
