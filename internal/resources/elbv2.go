package resources

import (
	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/template"
)

// Elastic Load Balancing v2 resource types.
const (
	TypeLoadBalancer = "AWS::ElasticLoadBalancingV2::LoadBalancer"
	TypeListener     = "AWS::ElasticLoadBalancingV2::Listener"
	TypeTargetGroup  = "AWS::ElasticLoadBalancingV2::TargetGroup"
)

// Load balancer protocols. Network load balancers spell them upper case.
const (
	LBProtocolTCP = "TCP"
	LBProtocolUDP = "UDP"
)

// Attribute is a load balancer or target group attribute.
type Attribute struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// LoadBalancerProps configures an AWS::ElasticLoadBalancingV2::LoadBalancer.
type LoadBalancerProps struct {
	Type                   string         `json:"Type"`
	Scheme                 string         `json:"Scheme"`
	Subnets                []any          `json:"Subnets"`
	LoadBalancerAttributes []Attribute    `json:"LoadBalancerAttributes,omitempty"`
	Tags                   []template.Tag `json:"Tags,omitempty"`
}

// NewLoadBalancer declares a load balancer.
func NewLoadBalancer(scope construct.Scope, id string, props *LoadBalancerProps) (*Resource, error) {
	return declare(scope, id, TypeLoadBalancer, props, &props.Tags)
}

// Action is a listener action.
type Action struct {
	Type           string `json:"Type"`
	TargetGroupArn any    `json:"TargetGroupArn,omitempty"`
}

// ListenerProps configures an AWS::ElasticLoadBalancingV2::Listener.
type ListenerProps struct {
	LoadBalancerArn any      `json:"LoadBalancerArn"`
	Port            int      `json:"Port"`
	Protocol        string   `json:"Protocol"`
	DefaultActions  []Action `json:"DefaultActions"`
}

// NewListener declares a listener.
func NewListener(scope construct.Scope, id string, props *ListenerProps) (*Resource, error) {
	return declare(scope, id, TypeListener, props, nil)
}

// TargetGroupProps configures an AWS::ElasticLoadBalancingV2::TargetGroup.
type TargetGroupProps struct {
	Port                       int            `json:"Port"`
	Protocol                   string         `json:"Protocol"`
	TargetType                 string         `json:"TargetType"`
	VpcId                      any            `json:"VpcId"`
	HealthCheckEnabled         bool           `json:"HealthCheckEnabled"`
	HealthCheckPort            string         `json:"HealthCheckPort,omitempty"`
	HealthCheckProtocol        string         `json:"HealthCheckProtocol,omitempty"`
	HealthCheckIntervalSeconds int            `json:"HealthCheckIntervalSeconds,omitempty"`
	HealthyThresholdCount      int            `json:"HealthyThresholdCount,omitempty"`
	UnhealthyThresholdCount    int            `json:"UnhealthyThresholdCount,omitempty"`
	TargetGroupAttributes      []Attribute    `json:"TargetGroupAttributes,omitempty"`
	Tags                       []template.Tag `json:"Tags,omitempty"`
}

// NewTargetGroup declares a target group.
func NewTargetGroup(scope construct.Scope, id string, props *TargetGroupProps) (*Resource, error) {
	return declare(scope, id, TypeTargetGroup, props, &props.Tags)
}
