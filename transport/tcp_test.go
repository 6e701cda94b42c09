package transport_test

import (
	"strings"
	"testing"

	"github.com/ghettovoice/dbusaddr/transport"
)

func TestTCP_Dial(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tcp         transport.TCP
		wantNetwork string
		wantAddr    string
	}{
		{transport.TCP{}, "tcp", "localhost:0"},
		{transport.TCP{Host: "example.com", Port: 4000}, "tcp", "example.com:4000"},
		{transport.TCP{Host: "127.0.0.1", Port: 1, Family: transport.FamilyIPv4}, "tcp4", "127.0.0.1:1"},
		{transport.TCP{Host: "::1", Port: 4000, Family: transport.FamilyIPv6}, "tcp6", "[::1]:4000"},
	}

	for _, c := range cases {
		if got := c.tcp.Network(); got != c.wantNetwork {
			t.Errorf("%+v.Network() = %q, want %q", c.tcp, got, c.wantNetwork)
		}
		if got := c.tcp.DialAddr(); got != c.wantAddr {
			t.Errorf("%+v.DialAddr() = %q, want %q", c.tcp, got, c.wantAddr)
		}
	}
}

func TestTCP_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		tcp  *transport.TCP
		want bool
	}{
		{"nil", nil, false},
		{"empty", &transport.TCP{}, true},
		{"name", &transport.TCP{Host: "dbus.example.com"}, true},
		{"ipv4", &transport.TCP{Host: "192.0.2.1", Family: transport.FamilyIPv4}, true},
		{"ipv6", &transport.TCP{Host: "2001:db8::1", Family: transport.FamilyIPv6}, true},
		{"ipv6 host with ipv4 family", &transport.TCP{Host: "2001:db8::1", Family: transport.FamilyIPv4}, false},
		{"ipv4 host with ipv6 family", &transport.TCP{Host: "192.0.2.1", Family: transport.FamilyIPv6}, false},
		{"empty label", &transport.TCP{Host: "dbus..example.com"}, false},
		{"long label", &transport.TCP{Host: strings.Repeat("a", 64) + ".example.com"}, false},
		{"bind all", &transport.TCP{Host: "localhost", Bind: "*"}, true},
		{"bind ip", &transport.TCP{Bind: "0.0.0.0", Family: transport.FamilyIPv4}, true},
		{"bind bad", &transport.TCP{Bind: "a..b"}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.tcp.IsValid(); got != c.want {
				t.Errorf("tcp.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestNonceTCP_IsValid(t *testing.T) {
	t.Parallel()

	if (*transport.NonceTCP)(nil).IsValid() {
		t.Error("nil.IsValid() = true, want false")
	}
	nt := &transport.NonceTCP{TCP: transport.TCP{Host: "a..b"}, NonceFile: "/n"}
	if nt.IsValid() {
		t.Error("nt.IsValid() = true, want false")
	}
	nt.Host = "localhost"
	if !nt.IsValid() {
		t.Error("nt.IsValid() = false, want true")
	}
	if got, want := nt.Network(), "tcp"; got != want {
		t.Errorf("nt.Network() = %q, want %q", got, want)
	}
}
