package transport

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr"
)

// Systemd is the "systemd" transport: sockets passed by systemd socket activation.
type Systemd struct{}

// ParseSystemd interprets a "systemd" address. It has no keys.
func ParseSystemd(a *dbusaddr.Address) (*Systemd, error) {
	if err := checkName(a, NameSystemd); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Systemd{}, nil
}

func (*Systemd) Name() string { return NameSystemd }

func (*Systemd) Address() *dbusaddr.Address { return newAddr(NameSystemd) }
