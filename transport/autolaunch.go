package transport

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr"
)

// Well-known autolaunch scopes. Any other scope is an installation path.
const (
	ScopeUser        = "*user"
	ScopeInstallPath = "*install-path"
)

// Autolaunch is the "autolaunch" transport: the address of a bus started on demand.
type Autolaunch struct {
	// Scope limits the sharing of the launched bus, empty means the default.
	Scope string
}

// ParseAutolaunch interprets an "autolaunch" address with the optional key "scope".
func ParseAutolaunch(a *dbusaddr.Address) (*Autolaunch, error) {
	if err := checkName(a, NameAutolaunch); err != nil {
		return nil, errtrace.Wrap(err)
	}
	scope, _ := a.Get("scope")
	return &Autolaunch{Scope: scope}, nil
}

func (*Autolaunch) Name() string { return NameAutolaunch }

func (t *Autolaunch) Address() *dbusaddr.Address {
	if t.Scope == "" {
		return newAddr(NameAutolaunch)
	}
	return newAddr(NameAutolaunch, "scope", t.Scope)
}
