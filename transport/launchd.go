package transport

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr"
)

// Launchd is the "launchd" transport of macOS.
type Launchd struct {
	// Env is the environment variable holding the socket path.
	Env string
}

// ParseLaunchd interprets a "launchd" address, the key "env" is required.
func ParseLaunchd(a *dbusaddr.Address) (*Launchd, error) {
	if err := checkName(a, NameLaunchd); err != nil {
		return nil, errtrace.Wrap(err)
	}
	env, ok := a.Get("env")
	if !ok {
		return nil, errtrace.Wrap(missingKey("env"))
	}
	return &Launchd{Env: env}, nil
}

func (*Launchd) Name() string { return NameLaunchd }

func (t *Launchd) Address() *dbusaddr.Address {
	return newAddr(NameLaunchd, "env", t.Env)
}
