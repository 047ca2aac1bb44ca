package resources

import (
	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/template"
)

// EFS resource types.
const (
	TypeFileSystem  = "AWS::EFS::FileSystem"
	TypeMountTarget = "AWS::EFS::MountTarget"
	TypeAccessPoint = "AWS::EFS::AccessPoint"
)

// NFSPort is the port EFS mount targets listen on.
const NFSPort = 2049

// EFS performance modes and lifecycle transitions.
const (
	PerformanceModeGeneralPurpose = "generalPurpose"
	TransitionAfter14Days         = "AFTER_14_DAYS"
)

// LifecyclePolicy moves files between storage classes.
type LifecyclePolicy struct {
	TransitionToIA                  string `json:"TransitionToIA,omitempty"`
	TransitionToPrimaryStorageClass string `json:"TransitionToPrimaryStorageClass,omitempty"`
}

// FileSystemProps configures an AWS::EFS::FileSystem.
type FileSystemProps struct {
	Encrypted         bool              `json:"Encrypted"`
	PerformanceMode   string            `json:"PerformanceMode,omitempty"`
	ThroughputMode    string            `json:"ThroughputMode,omitempty"`
	LifecyclePolicies []LifecyclePolicy `json:"LifecyclePolicies,omitempty"`
	FileSystemTags    []template.Tag    `json:"FileSystemTags,omitempty"`
}

// NewFileSystem declares an EFS file system.
func NewFileSystem(scope construct.Scope, id string, props *FileSystemProps) (*Resource, error) {
	props.FileSystemTags = append(props.FileSystemTags, nameTag(scope, id))
	return declare(scope, id, TypeFileSystem, props, &props.FileSystemTags)
}

// MountTargetProps configures an AWS::EFS::MountTarget.
type MountTargetProps struct {
	FileSystemId   any   `json:"FileSystemId"`
	SubnetId       any   `json:"SubnetId"`
	SecurityGroups []any `json:"SecurityGroups"`
}

// NewMountTarget declares a mount target in one subnet.
func NewMountTarget(scope construct.Scope, id string, props *MountTargetProps) (*Resource, error) {
	return declare(scope, id, TypeMountTarget, props, nil)
}

// PosixUser is the identity an access point enforces.
type PosixUser struct {
	Uid string `json:"Uid"`
	Gid string `json:"Gid"`
}

// RootDirectory is the directory an access point exposes.
type RootDirectory struct {
	Path string `json:"Path,omitempty"`
}

// AccessPointProps configures an AWS::EFS::AccessPoint.
type AccessPointProps struct {
	FileSystemId    any            `json:"FileSystemId"`
	PosixUser       *PosixUser     `json:"PosixUser,omitempty"`
	RootDirectory   *RootDirectory `json:"RootDirectory,omitempty"`
	AccessPointTags []template.Tag `json:"AccessPointTags,omitempty"`
}

// NewAccessPoint declares an access point.
func NewAccessPoint(scope construct.Scope, id string, props *AccessPointProps) (*Resource, error) {
	return declare(scope, id, TypeAccessPoint, props, &props.AccessPointTags)
}
