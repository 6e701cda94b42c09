package transport

import (
	"net"

	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr"
	"github.com/ghettovoice/dbusaddr/internal/errorutil"
)

// UnixKind tells how a unix address names its socket.
type UnixKind int

const (
	// UnixPath is a socket file path, key "path".
	UnixPath UnixKind = iota + 1
	// UnixDir is a directory for a new socket file, key "dir". Listen only.
	UnixDir
	// UnixTmpDir is like UnixDir, but abstract sockets may be used, key "tmpdir". Listen only.
	UnixTmpDir
	// UnixAbstract is a Linux abstract socket name, key "abstract".
	UnixAbstract
	// UnixRuntime is a socket in $XDG_RUNTIME_DIR, key "runtime" with value "yes". Listen only.
	UnixRuntime
)

var unixKeys = [...]string{
	UnixPath:     "path",
	UnixDir:      "dir",
	UnixTmpDir:   "tmpdir",
	UnixAbstract: "abstract",
	UnixRuntime:  "runtime",
}

// String returns the address key of the kind.
func (k UnixKind) String() string {
	if k <= 0 || int(k) >= len(unixKeys) {
		return "unknown"
	}
	return unixKeys[k]
}

// Unix is the "unix" transport: a Unix domain socket.
type Unix struct {
	Kind UnixKind
	// Value is the value of the key of Kind. It is "yes" for UnixRuntime.
	Value string
}

// ParseUnix interprets a "unix" address.
// Exactly one of the keys "path", "dir", "tmpdir", "abstract", "runtime" must be present.
func ParseUnix(a *dbusaddr.Address) (*Unix, error) {
	if err := checkName(a, NameUnix); err != nil {
		return nil, errtrace.Wrap(err)
	}

	var u Unix
	for k := UnixPath; k <= UnixRuntime; k++ {
		v, ok := a.Get(k.String())
		if !ok {
			continue
		}
		if u.Kind != 0 {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrConflictingKeys, "%q and %q", u.Kind.String(), k.String()))
		}
		u.Kind, u.Value = k, v
	}
	switch {
	case u.Kind == 0:
		return nil, errtrace.Wrap(missingKey("path"))
	case u.Kind == UnixRuntime && u.Value != "yes":
		return nil, errtrace.Wrap(invalidValue("runtime", u.Value, nil))
	}
	return &u, nil
}

func (*Unix) Name() string { return NameUnix }

func (u *Unix) Address() *dbusaddr.Address {
	return newAddr(NameUnix, u.Kind.String(), u.Value)
}

// IsListenOnly reports whether the address can only be used by servers.
func (u *Unix) IsListenOnly() bool {
	return u.Kind == UnixDir || u.Kind == UnixTmpDir || u.Kind == UnixRuntime
}

// NetAddr returns the socket address to dial.
// Abstract names get the "@" prefix understood by the net package.
// It returns false for listen-only addresses.
func (u *Unix) NetAddr() (*net.UnixAddr, bool) {
	switch u.Kind {
	case UnixPath:
		return &net.UnixAddr{Net: "unix", Name: u.Value}, true
	case UnixAbstract:
		return &net.UnixAddr{Net: "unix", Name: "@" + u.Value}, true
	default:
		return nil, false
	}
}
