// Package netutil provides IPv4 address arithmetic for network layouts.
package netutil

import (
	"encoding/binary"
	"fmt"
	"net"
)

// CIDRSubnet carves the netnum-th subnet out of prefix, extending the prefix
// length by newbits. It mirrors Terraform's cidrsubnet function.
//
// Only IPv4 prefixes are supported.
func CIDRSubnet(prefix string, newbits int, netnum int) (string, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}

	ip := network.IP.To4()
	if ip == nil {
		return "", fmt.Errorf("only IPv4 addresses are supported, got IPv6: %s", prefix)
	}

	maskSize, totalBits := network.Mask.Size()
	newMaskSize := maskSize + newbits
	if newbits < 0 || newMaskSize > totalBits {
		return "", fmt.Errorf("prefix extension of %d bits is invalid for %s", newbits, prefix)
	}

	maxSubnets := 1 << newbits
	if netnum < 0 || netnum >= maxSubnets {
		return "", fmt.Errorf("subnet number %d exceeds max subnets %d", netnum, maxSubnets)
	}

	subnetSize := uint64(1) << (totalBits - newMaskSize)
	// #nosec G115
	base := uint64(binary.BigEndian.Uint32(ip)) + uint64(netnum)*subnetSize

	out := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(out, uint32(base))

	return fmt.Sprintf("%s/%d", out.String(), newMaskSize), nil
}

// SplitCIDR divides prefix into count equally sized subnets, using the
// smallest prefix extension that fits them all.
func SplitCIDR(prefix string, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("subnet count must be positive, got %d", count)
	}

	newbits := 0
	for (1 << newbits) < count {
		newbits++
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		subnet, err := CIDRSubnet(prefix, newbits, i)
		if err != nil {
			return nil, err
		}
		out = append(out, subnet)
	}
	return out, nil
}
