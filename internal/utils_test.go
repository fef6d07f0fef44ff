package internal

import (
	"net"
	"testing"
)

func TestNewMatchId(t *testing.T) {
	a, b := NewMatchId(), NewMatchId()
	if len(a) != 6 {
		t.Fatalf("expected match id length: 6\tgot: %d", len(a))
	}
	if a == b {
		t.Fatal("expected different match ids")
	}
}

func TestIpNetFromAddr(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		expected string
		fail     bool
	}{
		{name: "ipv4", addr: "127.0.0.1:9191", expected: "127.0.0.1/32"},
		{name: "ipv6", addr: "[::1]:9191", expected: "::1/128"},
		{name: "no port", addr: "127.0.0.1", fail: true},
		{name: "host name", addr: "localhost:9191", fail: true},
		{name: "pipe", addr: "pipe", fail: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ipNet, err := IpNetFromAddr(test.addr)
			if test.fail {
				if err == nil {
					t.Fatalf("expected error for %s", test.addr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			_, expected, _ := net.ParseCIDR(test.expected)
			if ipNet.String() != expected.String() {
				t.Fatalf("expected: %s\tgot: %s", expected, ipNet.String())
			}
		})
	}
}
