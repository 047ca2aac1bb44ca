package gameserver

import (
	"fmt"

	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/resources"
	"github.com/imamik/valheimctl/internal/template"
	"github.com/imamik/valheimctl/internal/util/netutil"
)

// VPC layout defaults.
const (
	DefaultVPCCIDR = "10.0.0.0/16"
	DefaultMaxAZs  = 2
)

// Network is the network boundary a game server is deployed into. Values
// are either literal IDs or template references.
type Network interface {
	VPCID() any
	CIDR() any
	PublicSubnetIDs() []any
	PrivateSubnetIDs() []any
}

// internetDependent is implemented by networks whose internet routes are
// declared in the same template. Internet-facing resources must wait for
// those routes.
type internetDependent interface {
	InternetDependencies() []*resources.Resource
}

// ExistingNetwork is a caller-owned VPC.
type ExistingNetwork struct {
	ID             string
	CIDRBlock      string
	PublicSubnets  []string
	PrivateSubnets []string
}

// VPCID implements Network.
func (n ExistingNetwork) VPCID() any { return n.ID }

// CIDR implements Network.
func (n ExistingNetwork) CIDR() any { return n.CIDRBlock }

// PublicSubnetIDs implements Network.
func (n ExistingNetwork) PublicSubnetIDs() []any { return toAny(n.PublicSubnets) }

// PrivateSubnetIDs implements Network.
func (n ExistingNetwork) PrivateSubnetIDs() []any { return toAny(n.PrivateSubnets) }

func validateNetwork(n Network) error {
	if len(n.PublicSubnetIDs()) == 0 {
		return fmt.Errorf("%w: no public subnets for the load balancer", ErrInvalidNetwork)
	}
	if len(n.PrivateSubnetIDs()) == 0 {
		return fmt.Errorf("%w: no private subnets for tasks and mount targets", ErrInvalidNetwork)
	}
	if n.VPCID() == nil || n.VPCID() == "" {
		return fmt.Errorf("%w: missing VPC id", ErrInvalidNetwork)
	}
	if n.CIDR() == nil || n.CIDR() == "" {
		return fmt.Errorf("%w: missing VPC CIDR", ErrInvalidNetwork)
	}
	return nil
}

// VPCOptions configures a new VPC.
type VPCOptions struct {
	// CIDR of the VPC. Defaults to 10.0.0.0/16.
	CIDR string

	// MaxAZs is the number of availability zones to span. Defaults to 2.
	MaxAZs int
}

// VPC is a declared isolated network: per availability zone one public
// subnet with a NAT gateway and one private subnet routed through it.
type VPC struct {
	node     *construct.Node
	resource *resources.Resource

	InternetGateway *resources.Resource
	PublicSubnets   []*Subnet
	PrivateSubnets  []*Subnet
}

// Subnet is a declared subnet with its route table.
type Subnet struct {
	Subnet       *resources.Resource
	RouteTable   *resources.Resource
	DefaultRoute *resources.Resource
	NatGateway   *resources.Resource
}

// NewVPC declares a VPC under scope.
func NewVPC(scope construct.Scope, id string, opts VPCOptions) (*VPC, error) {
	if opts.CIDR == "" {
		opts.CIDR = DefaultVPCCIDR
	}
	if opts.MaxAZs == 0 {
		opts.MaxAZs = DefaultMaxAZs
	}

	cidrs, err := netutil.SplitCIDR(opts.CIDR, 2*opts.MaxAZs)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out subnets: %w", err)
	}

	c, err := construct.New(scope, id)
	if err != nil {
		return nil, err
	}
	v := &VPC{node: c.Node()}

	v.resource, err = resources.NewVPC(v, "Resource", &resources.VPCProps{
		CidrBlock:          opts.CIDR,
		EnableDnsHostnames: true,
		EnableDnsSupport:   true,
		InstanceTenancy:    "default",
	})
	if err != nil {
		return nil, err
	}

	v.InternetGateway, err = resources.NewInternetGateway(v, "IGW", &resources.InternetGatewayProps{})
	if err != nil {
		return nil, err
	}
	attachment, err := resources.NewVPCGatewayAttachment(v, "VPCGW", &resources.VPCGatewayAttachmentProps{
		VpcId:             v.resource.Ref(),
		InternetGatewayId: v.InternetGateway.Ref(),
	})
	if err != nil {
		return nil, err
	}

	for az := 0; az < opts.MaxAZs; az++ {
		public, err := v.addPublicSubnet(az, cidrs[az], attachment)
		if err != nil {
			return nil, err
		}
		v.PublicSubnets = append(v.PublicSubnets, public)
	}

	for az := 0; az < opts.MaxAZs; az++ {
		private, err := v.addPrivateSubnet(az, cidrs[opts.MaxAZs+az], v.PublicSubnets[az].NatGateway)
		if err != nil {
			return nil, err
		}
		v.PrivateSubnets = append(v.PrivateSubnets, private)
	}

	return v, nil
}

func (v *VPC) addPublicSubnet(az int, cidr string, attachment *resources.Resource) (*Subnet, error) {
	scope, err := construct.New(v, fmt.Sprintf("PublicSubnet%d", az+1))
	if err != nil {
		return nil, err
	}

	s, err := v.addSubnet(scope, az, cidr, true)
	if err != nil {
		return nil, err
	}

	s.DefaultRoute, err = resources.NewRoute(scope, "DefaultRoute", &resources.RouteProps{
		RouteTableId:         s.RouteTable.Ref(),
		DestinationCidrBlock: resources.AnyIPv4,
		GatewayId:            v.InternetGateway.Ref(),
	})
	if err != nil {
		return nil, err
	}
	s.DefaultRoute.DependsOn(attachment)

	eip, err := resources.NewEIP(scope, "EIP", &resources.EIPProps{Domain: "vpc"})
	if err != nil {
		return nil, err
	}

	s.NatGateway, err = resources.NewNatGateway(scope, "NATGateway", &resources.NatGatewayProps{
		AllocationId: eip.GetAtt("AllocationId"),
		SubnetId:     s.Subnet.Ref(),
	})
	if err != nil {
		return nil, err
	}
	s.NatGateway.DependsOn(s.DefaultRoute)

	return s, nil
}

func (v *VPC) addPrivateSubnet(az int, cidr string, nat *resources.Resource) (*Subnet, error) {
	scope, err := construct.New(v, fmt.Sprintf("PrivateSubnet%d", az+1))
	if err != nil {
		return nil, err
	}

	s, err := v.addSubnet(scope, az, cidr, false)
	if err != nil {
		return nil, err
	}

	s.DefaultRoute, err = resources.NewRoute(scope, "DefaultRoute", &resources.RouteProps{
		RouteTableId:         s.RouteTable.Ref(),
		DestinationCidrBlock: resources.AnyIPv4,
		NatGatewayId:         nat.Ref(),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (v *VPC) addSubnet(scope construct.Scope, az int, cidr string, public bool) (*Subnet, error) {
	subnet, err := resources.NewSubnet(scope, "Subnet", &resources.SubnetProps{
		VpcId:               v.resource.Ref(),
		CidrBlock:           cidr,
		AvailabilityZone:    template.Select(az, template.GetAZs("")),
		MapPublicIpOnLaunch: public,
	})
	if err != nil {
		return nil, err
	}

	rt, err := resources.NewRouteTable(scope, "RouteTable", &resources.RouteTableProps{VpcId: v.resource.Ref()})
	if err != nil {
		return nil, err
	}

	if _, err := resources.NewSubnetRouteTableAssociation(scope, "RouteTableAssociation", &resources.SubnetRouteTableAssociationProps{
		RouteTableId: rt.Ref(),
		SubnetId:     subnet.Ref(),
	}); err != nil {
		return nil, err
	}

	return &Subnet{Subnet: subnet, RouteTable: rt}, nil
}

// Node implements construct.Scope.
func (v *VPC) Node() *construct.Node { return v.node }

// Resource returns the AWS::EC2::VPC declaration.
func (v *VPC) Resource() *resources.Resource { return v.resource }

// VPCID implements Network.
func (v *VPC) VPCID() any { return v.resource.Ref() }

// CIDR implements Network.
func (v *VPC) CIDR() any { return v.resource.GetAtt("CidrBlock") }

// PublicSubnetIDs implements Network.
func (v *VPC) PublicSubnetIDs() []any { return subnetRefs(v.PublicSubnets) }

// PrivateSubnetIDs implements Network.
func (v *VPC) PrivateSubnetIDs() []any { return subnetRefs(v.PrivateSubnets) }

// InternetDependencies returns the public default routes.
func (v *VPC) InternetDependencies() []*resources.Resource {
	out := make([]*resources.Resource, 0, len(v.PublicSubnets))
	for _, s := range v.PublicSubnets {
		out = append(out, s.DefaultRoute)
	}
	return out
}

func subnetRefs(subnets []*Subnet) []any {
	out := make([]any, 0, len(subnets))
	for _, s := range subnets {
		out = append(out, s.Subnet.Ref())
	}
	return out
}

func toAny(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}
