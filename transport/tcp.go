package transport

import (
	"net"
	"net/netip"
	"strconv"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/dbusaddr"
	"github.com/ghettovoice/dbusaddr/internal/errorutil"
)

// Family restricts the IP version of a TCP address.
type Family string

const (
	FamilyAny  Family = ""
	FamilyIPv4 Family = "ipv4"
	FamilyIPv6 Family = "ipv6"
)

// DefaultHost is dialed when a TCP address has no host.
const DefaultHost = "localhost"

// TCP is the "tcp" transport.
type TCP struct {
	// Host to connect to or to listen on.
	Host string
	// Bind is the listening interface, "*" means all of them.
	Bind string
	// Port, 0 lets servers pick one.
	Port   uint16
	Family Family
}

// ParseTCP interprets a "tcp" address with keys "host", "bind", "port" and "family".
func ParseTCP(a *dbusaddr.Address) (*TCP, error) {
	if err := checkName(a, NameTCP); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(parseTCP(a))
}

func parseTCP(a *dbusaddr.Address) (*TCP, error) {
	var t TCP
	t.Host, _ = a.Get("host")
	t.Bind, _ = a.Get("bind")

	port, _, err := uintParam(a, "port", 16)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	t.Port = uint16(port)

	if fam, ok := a.Get("family"); ok {
		switch Family(fam) {
		case FamilyIPv4, FamilyIPv6:
			t.Family = Family(fam)
		default:
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownFamily, "%q", fam))
		}
	}
	return &t, nil
}

func (*TCP) Name() string { return NameTCP }

func (t *TCP) Address() *dbusaddr.Address {
	return newAddr(NameTCP, t.kvs()...)
}

func (t *TCP) kvs() []string {
	kvs := make([]string, 0, 8)
	if t.Host != "" {
		kvs = append(kvs, "host", t.Host)
	}
	if t.Bind != "" {
		kvs = append(kvs, "bind", t.Bind)
	}
	if t.Port != 0 {
		kvs = append(kvs, "port", strconv.FormatUint(uint64(t.Port), 10))
	}
	if t.Family != FamilyAny {
		kvs = append(kvs, "family", string(t.Family))
	}
	return kvs
}

// Network returns the network name for [net.Dial]: "tcp", "tcp4" or "tcp6".
func (t *TCP) Network() string {
	switch t.Family {
	case FamilyIPv4:
		return "tcp4"
	case FamilyIPv6:
		return "tcp6"
	default:
		return "tcp"
	}
}

// DialAddr returns the "host:port" address for [net.Dial].
// An empty host is replaced with [DefaultHost].
func (t *TCP) DialAddr() string {
	host := t.Host
	if host == "" {
		host = DefaultHost
	}
	return net.JoinHostPort(host, strconv.FormatUint(uint64(t.Port), 10))
}

// IsValid checks that the host and bind values are IP literals or well-formed domain names
// and that IP literals match the family. The check does not resolve names.
func (t *TCP) IsValid() bool {
	if t == nil {
		return false
	}
	if t.Host != "" && !isHost(t.Host, t.Family) {
		return false
	}
	if t.Bind != "" && t.Bind != "*" && !isHost(t.Bind, t.Family) {
		return false
	}
	return true
}

func isHost(s string, fam Family) bool {
	if ip, err := netip.ParseAddr(s); err == nil {
		switch fam {
		case FamilyIPv4:
			return ip.Is4()
		case FamilyIPv6:
			return ip.Is6()
		default:
			return true
		}
	}
	_, ok := dns.IsDomainName(s)
	return ok
}

// NonceTCP is the "nonce-tcp" transport: TCP with a nonce file for authentication.
type NonceTCP struct {
	TCP
	// NonceFile is the path of the file with the nonce. Servers create it when empty.
	NonceFile string
}

// ParseNonceTCP interprets a "nonce-tcp" address with the keys of [ParseTCP] and "noncefile".
func ParseNonceTCP(a *dbusaddr.Address) (*NonceTCP, error) {
	if err := checkName(a, NameNonceTCP); err != nil {
		return nil, errtrace.Wrap(err)
	}
	t, err := parseTCP(a)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	nt := &NonceTCP{TCP: *t}
	nt.NonceFile, _ = a.Get("noncefile")
	return nt, nil
}

func (*NonceTCP) Name() string { return NameNonceTCP }

func (t *NonceTCP) Address() *dbusaddr.Address {
	kvs := t.kvs()
	if t.NonceFile != "" {
		kvs = append(kvs, "noncefile", t.NonceFile)
	}
	return newAddr(NameNonceTCP, kvs...)
}

// IsValid checks the TCP part, see [TCP.IsValid].
func (t *NonceTCP) IsValid() bool {
	return t != nil && t.TCP.IsValid()
}
