package resources

import (
	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/template"
)

// EC2 resource types.
const (
	TypeVPC                         = "AWS::EC2::VPC"
	TypeSubnet                      = "AWS::EC2::Subnet"
	TypeInternetGateway             = "AWS::EC2::InternetGateway"
	TypeVPCGatewayAttachment        = "AWS::EC2::VPCGatewayAttachment"
	TypeRouteTable                  = "AWS::EC2::RouteTable"
	TypeRoute                       = "AWS::EC2::Route"
	TypeSubnetRouteTableAssociation = "AWS::EC2::SubnetRouteTableAssociation"
	TypeEIP                         = "AWS::EC2::EIP"
	TypeNatGateway                  = "AWS::EC2::NatGateway"
	TypeSecurityGroup               = "AWS::EC2::SecurityGroup"
	TypeSecurityGroupIngress        = "AWS::EC2::SecurityGroupIngress"
)

// IP protocols as security group rules spell them.
const (
	ProtocolTCP = "tcp"
	ProtocolUDP = "udp"
	ProtocolAll = "-1"
)

// AnyIPv4 is the CIDR matching every IPv4 address.
const AnyIPv4 = "0.0.0.0/0"

// VPCProps configures an AWS::EC2::VPC.
type VPCProps struct {
	CidrBlock          string         `json:"CidrBlock"`
	EnableDnsHostnames bool           `json:"EnableDnsHostnames"`
	EnableDnsSupport   bool           `json:"EnableDnsSupport"`
	InstanceTenancy    string         `json:"InstanceTenancy,omitempty"`
	Tags               []template.Tag `json:"Tags,omitempty"`
}

// NewVPC declares a VPC.
func NewVPC(scope construct.Scope, id string, props *VPCProps) (*Resource, error) {
	props.Tags = append(props.Tags, nameTag(scope, id))
	return declare(scope, id, TypeVPC, props, &props.Tags)
}

// SubnetProps configures an AWS::EC2::Subnet.
type SubnetProps struct {
	VpcId               any            `json:"VpcId"`
	CidrBlock           string         `json:"CidrBlock"`
	AvailabilityZone    any            `json:"AvailabilityZone,omitempty"`
	MapPublicIpOnLaunch bool           `json:"MapPublicIpOnLaunch"`
	Tags                []template.Tag `json:"Tags,omitempty"`
}

// NewSubnet declares a subnet.
func NewSubnet(scope construct.Scope, id string, props *SubnetProps) (*Resource, error) {
	props.Tags = append(props.Tags, nameTag(scope, id))
	return declare(scope, id, TypeSubnet, props, &props.Tags)
}

// InternetGatewayProps configures an AWS::EC2::InternetGateway.
type InternetGatewayProps struct {
	Tags []template.Tag `json:"Tags,omitempty"`
}

// NewInternetGateway declares an internet gateway.
func NewInternetGateway(scope construct.Scope, id string, props *InternetGatewayProps) (*Resource, error) {
	props.Tags = append(props.Tags, nameTag(scope, id))
	return declare(scope, id, TypeInternetGateway, props, &props.Tags)
}

// VPCGatewayAttachmentProps configures an AWS::EC2::VPCGatewayAttachment.
type VPCGatewayAttachmentProps struct {
	VpcId             any `json:"VpcId"`
	InternetGatewayId any `json:"InternetGatewayId"`
}

// NewVPCGatewayAttachment attaches an internet gateway to a VPC.
func NewVPCGatewayAttachment(scope construct.Scope, id string, props *VPCGatewayAttachmentProps) (*Resource, error) {
	return declare(scope, id, TypeVPCGatewayAttachment, props, nil)
}

// RouteTableProps configures an AWS::EC2::RouteTable.
type RouteTableProps struct {
	VpcId any            `json:"VpcId"`
	Tags  []template.Tag `json:"Tags,omitempty"`
}

// NewRouteTable declares a route table.
func NewRouteTable(scope construct.Scope, id string, props *RouteTableProps) (*Resource, error) {
	props.Tags = append(props.Tags, nameTag(scope, id))
	return declare(scope, id, TypeRouteTable, props, &props.Tags)
}

// RouteProps configures an AWS::EC2::Route. Exactly one target is set.
type RouteProps struct {
	RouteTableId         any    `json:"RouteTableId"`
	DestinationCidrBlock string `json:"DestinationCidrBlock"`
	GatewayId            any    `json:"GatewayId,omitempty"`
	NatGatewayId         any    `json:"NatGatewayId,omitempty"`
}

// NewRoute declares a route.
func NewRoute(scope construct.Scope, id string, props *RouteProps) (*Resource, error) {
	return declare(scope, id, TypeRoute, props, nil)
}

// SubnetRouteTableAssociationProps configures an
// AWS::EC2::SubnetRouteTableAssociation.
type SubnetRouteTableAssociationProps struct {
	RouteTableId any `json:"RouteTableId"`
	SubnetId     any `json:"SubnetId"`
}

// NewSubnetRouteTableAssociation associates a subnet with a route table.
func NewSubnetRouteTableAssociation(scope construct.Scope, id string, props *SubnetRouteTableAssociationProps) (*Resource, error) {
	return declare(scope, id, TypeSubnetRouteTableAssociation, props, nil)
}

// EIPProps configures an AWS::EC2::EIP.
type EIPProps struct {
	Domain string         `json:"Domain"`
	Tags   []template.Tag `json:"Tags,omitempty"`
}

// NewEIP allocates an elastic IP.
func NewEIP(scope construct.Scope, id string, props *EIPProps) (*Resource, error) {
	props.Tags = append(props.Tags, nameTag(scope, id))
	return declare(scope, id, TypeEIP, props, &props.Tags)
}

// NatGatewayProps configures an AWS::EC2::NatGateway.
type NatGatewayProps struct {
	AllocationId any            `json:"AllocationId"`
	SubnetId     any            `json:"SubnetId"`
	Tags         []template.Tag `json:"Tags,omitempty"`
}

// NewNatGateway declares a NAT gateway.
func NewNatGateway(scope construct.Scope, id string, props *NatGatewayProps) (*Resource, error) {
	props.Tags = append(props.Tags, nameTag(scope, id))
	return declare(scope, id, TypeNatGateway, props, &props.Tags)
}

// IngressRule is an inline security group ingress rule.
type IngressRule struct {
	IpProtocol            string `json:"IpProtocol"`
	FromPort              int    `json:"FromPort"`
	ToPort                int    `json:"ToPort"`
	CidrIp                any    `json:"CidrIp,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
	Description           any    `json:"Description,omitempty"`
}

// EgressRule is an inline security group egress rule.
type EgressRule struct {
	IpProtocol  string `json:"IpProtocol"`
	CidrIp      string `json:"CidrIp"`
	Description string `json:"Description,omitempty"`
}

// AllowAllOutbound is the egress rule security groups get by default.
var AllowAllOutbound = EgressRule{
	IpProtocol:  ProtocolAll,
	CidrIp:      AnyIPv4,
	Description: "Allow all outbound traffic by default",
}

// SecurityGroupProps configures an AWS::EC2::SecurityGroup.
type SecurityGroupProps struct {
	GroupDescription     string         `json:"GroupDescription"`
	VpcId                any            `json:"VpcId"`
	SecurityGroupIngress []IngressRule  `json:"SecurityGroupIngress,omitempty"`
	SecurityGroupEgress  []EgressRule   `json:"SecurityGroupEgress,omitempty"`
	Tags                 []template.Tag `json:"Tags,omitempty"`
}

// NewSecurityGroup declares a security group.
func NewSecurityGroup(scope construct.Scope, id string, props *SecurityGroupProps) (*Resource, error) {
	props.Tags = append(props.Tags, nameTag(scope, id))
	return declare(scope, id, TypeSecurityGroup, props, &props.Tags)
}

// SecurityGroupIngressProps configures a standalone
// AWS::EC2::SecurityGroupIngress, used for group-to-group rules so that two
// groups can reference each other without a dependency cycle.
type SecurityGroupIngressProps struct {
	GroupId               any    `json:"GroupId"`
	IpProtocol            string `json:"IpProtocol"`
	FromPort              int    `json:"FromPort"`
	ToPort                int    `json:"ToPort"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
	CidrIp                any    `json:"CidrIp,omitempty"`
	Description           string `json:"Description,omitempty"`
}

// NewSecurityGroupIngress declares a standalone ingress rule.
func NewSecurityGroupIngress(scope construct.Scope, id string, props *SecurityGroupIngressProps) (*Resource, error) {
	return declare(scope, id, TypeSecurityGroupIngress, props, nil)
}
