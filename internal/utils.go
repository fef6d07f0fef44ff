package internal

import (
	"fmt"
	"net"

	"github.com/google/uuid"
)

func NewMatchId() string {
	return uuid.NewString()[:6]
}

// IpNetFromAddr turns the local address of a connection into the
// single host network stored with analytics rows.
func IpNetFromAddr(localAddr string) (net.IPNet, error) {
	host, _, err := net.SplitHostPort(localAddr)
	if err != nil {
		return net.IPNet{}, err
	}

	parsedIP := net.ParseIP(host)
	if parsedIP == nil {
		return net.IPNet{}, fmt.Errorf("not an ip address: %s", host)
	}

	if ip4 := parsedIP.To4(); ip4 != nil {
		return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}, nil
	}
	return net.IPNet{IP: parsedIP, Mask: net.CIDRMask(128, 128)}, nil
}
