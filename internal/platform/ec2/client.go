package ec2

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"github.com/imamik/valheimctl/internal/gameserver"
)

// ErrVPCNotFound is returned when the VPC does not exist in the region.
var ErrVPCNotFound = errors.New("VPC not found")

// API is the subset of the EC2 API the client uses.
type API interface {
	DescribeVpcs(ctx context.Context, in *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, in *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeRouteTables(ctx context.Context, in *ec2.DescribeRouteTablesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error)
}

// Client resolves networks.
type Client struct {
	api API
}

// NewClient creates a client for the region in cfg.
func NewClient(cfg aws.Config) *Client {
	return New(ec2.NewFromConfig(cfg))
}

// New wraps an API implementation.
func New(api API) *Client {
	return &Client{api: api}
}

// LookupNetwork describes vpcID. A subnet is public when its route table
// (explicitly associated or the VPC's main table) routes to an internet
// gateway; every other subnet is private. Subnets are ordered by
// availability zone.
func (c *Client) LookupNetwork(ctx context.Context, vpcID string) (*gameserver.ExistingNetwork, error) {
	vpcs, err := c.api.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{vpcID}})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrVPCNotFound, vpcID)
		}
		return nil, fmt.Errorf("failed to describe VPC %s: %w", vpcID, err)
	}
	if len(vpcs.Vpcs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrVPCNotFound, vpcID)
	}

	subnets, err := c.subnets(ctx, vpcID)
	if err != nil {
		return nil, err
	}
	public, err := c.publicSubnets(ctx, vpcID)
	if err != nil {
		return nil, err
	}

	network := &gameserver.ExistingNetwork{
		ID:        vpcID,
		CIDRBlock: aws.ToString(vpcs.Vpcs[0].CidrBlock),
	}
	for _, s := range subnets {
		id := aws.ToString(s.SubnetId)
		if public.isPublic(id) {
			network.PublicSubnets = append(network.PublicSubnets, id)
		} else {
			network.PrivateSubnets = append(network.PrivateSubnets, id)
		}
	}
	return network, nil
}

func vpcFilter(vpcID string) []types.Filter {
	return []types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}}
}

func (c *Client) subnets(ctx context.Context, vpcID string) ([]types.Subnet, error) {
	var subnets []types.Subnet
	p := ec2.NewDescribeSubnetsPaginator(c.api, &ec2.DescribeSubnetsInput{Filters: vpcFilter(vpcID)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subnets of %s: %w", vpcID, err)
		}
		subnets = append(subnets, page.Subnets...)
	}

	sort.Slice(subnets, func(i, j int) bool {
		a, b := subnets[i], subnets[j]
		if aws.ToString(a.AvailabilityZone) != aws.ToString(b.AvailabilityZone) {
			return aws.ToString(a.AvailabilityZone) < aws.ToString(b.AvailabilityZone)
		}
		return aws.ToString(a.SubnetId) < aws.ToString(b.SubnetId)
	})
	return subnets, nil
}

// routing records which subnets reach an internet gateway.
type routing struct {
	mainPublic bool
	explicit   map[string]bool
}

func (r routing) isPublic(subnetID string) bool {
	if public, ok := r.explicit[subnetID]; ok {
		return public
	}
	return r.mainPublic
}

func (c *Client) publicSubnets(ctx context.Context, vpcID string) (routing, error) {
	r := routing{explicit: map[string]bool{}}
	p := ec2.NewDescribeRouteTablesPaginator(c.api, &ec2.DescribeRouteTablesInput{Filters: vpcFilter(vpcID)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return r, fmt.Errorf("failed to list route tables of %s: %w", vpcID, err)
		}
		for _, table := range page.RouteTables {
			internet := routesToInternet(table)
			for _, assoc := range table.Associations {
				if aws.ToBool(assoc.Main) {
					r.mainPublic = internet
				}
				if id := aws.ToString(assoc.SubnetId); id != "" {
					r.explicit[id] = internet
				}
			}
		}
	}
	return r, nil
}

func routesToInternet(table types.RouteTable) bool {
	for _, route := range table.Routes {
		if strings.HasPrefix(aws.ToString(route.GatewayId), "igw-") {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "InvalidVpcID.NotFound"
}
