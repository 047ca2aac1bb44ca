package gameserver

import (
	"strconv"

	"github.com/imamik/valheimctl/internal/construct"
	"github.com/imamik/valheimctl/internal/resources"
	"github.com/imamik/valheimctl/internal/template"
)

// Target group health check thresholds.
const (
	healthyThreshold   = 2
	unhealthyThreshold = 2
)

// ExposurePoint is one published port with its listener and target group.
type ExposurePoint struct {
	Port        Port
	Listener    *resources.Resource
	TargetGroup *resources.Resource
}

// Exposure is the public face of the server.
type Exposure struct {
	LoadBalancer *resources.Resource
	Points       []ExposurePoint
}

// newSecurityGroup declares the compute security group: every game port is
// open to the internet, the health check port only to the network.
func newSecurityGroup(scope construct.Scope, cfg Config, network Network) (*resources.Resource, error) {
	ingress := make([]resources.IngressRule, 0, len(cfg.GamePorts)+1)
	for _, p := range cfg.GamePorts {
		ingress = append(ingress, resources.IngressRule{
			IpProtocol:  string(p.Protocol),
			FromPort:    p.Number,
			ToPort:      p.Number,
			CidrIp:      resources.AnyIPv4,
			Description: "from " + resources.AnyIPv4 + ":" + p.String(),
		})
	}
	ingress = append(ingress, resources.IngressRule{
		IpProtocol:  resources.ProtocolTCP,
		FromPort:    HealthCheckPort,
		ToPort:      HealthCheckPort,
		CidrIp:      network.CIDR(),
		Description: description(network.CIDR(), HealthCheckPort),
	})

	return resources.NewSecurityGroup(scope, "SecurityGroup", &resources.SecurityGroupProps{
		GroupDescription:     scope.Node().Path() + "/SecurityGroup",
		VpcId:                network.VPCID(),
		SecurityGroupIngress: ingress,
		SecurityGroupEgress:  []resources.EgressRule{resources.AllowAllOutbound},
	})
}

func description(cidr any, port int) any {
	if s, ok := cidr.(string); ok {
		return "from " + s + ":" + strconv.Itoa(port)
	}
	return template.Join("", "from ", cidr, ":"+strconv.Itoa(port))
}

// newExposure declares the network load balancer with one UDP or TCP
// listener per game port, each health checked through the sidecar.
func newExposure(scope construct.Scope, cfg Config, network Network) (*Exposure, error) {
	c, err := construct.New(scope, "LoadBalancer")
	if err != nil {
		return nil, err
	}

	lb, err := resources.NewLoadBalancer(c, "Resource", &resources.LoadBalancerProps{
		Type:    "network",
		Scheme:  "internet-facing",
		Subnets: network.PublicSubnetIDs(),
		LoadBalancerAttributes: []resources.Attribute{
			{Key: "deletion_protection.enabled", Value: "false"},
		},
	})
	if err != nil {
		return nil, err
	}
	if d, ok := network.(internetDependent); ok {
		lb.DependsOn(d.InternetDependencies()...)
	}

	e := &Exposure{LoadBalancer: lb}
	for _, p := range cfg.GamePorts {
		ep, err := newExposurePoint(c, lb, network, p)
		if err != nil {
			return nil, err
		}
		e.Points = append(e.Points, *ep)
	}
	return e, nil
}

func newExposurePoint(scope construct.Scope, lb *resources.Resource, network Network, p Port) (*ExposurePoint, error) {
	c, err := construct.New(scope, upper(p.Protocol)+strconv.Itoa(p.Number))
	if err != nil {
		return nil, err
	}

	tg, err := resources.NewTargetGroup(c, "TargetGroup", &resources.TargetGroupProps{
		Port:                    p.Number,
		Protocol:                upper(p.Protocol),
		TargetType:              "ip",
		VpcId:                   network.VPCID(),
		HealthCheckEnabled:      true,
		HealthCheckPort:         strconv.Itoa(HealthCheckPort),
		HealthCheckProtocol:     resources.LBProtocolTCP,
		HealthyThresholdCount:   healthyThreshold,
		UnhealthyThresholdCount: unhealthyThreshold,
	})
	if err != nil {
		return nil, err
	}

	listener, err := resources.NewListener(c, "Listener", &resources.ListenerProps{
		LoadBalancerArn: lb.Ref(),
		Port:            p.Number,
		Protocol:        upper(p.Protocol),
		DefaultActions:  []resources.Action{{Type: "forward", TargetGroupArn: tg.Ref()}},
	})
	if err != nil {
		return nil, err
	}

	return &ExposurePoint{Port: p, Listener: listener, TargetGroup: tg}, nil
}
