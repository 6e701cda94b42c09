// Package bus discovers the addresses of the well-known message buses.
//
// The session and system bus addresses come from the standard environment variables
// and fall back to the platform defaults:
//
//	l, err := bus.Session(nil)
//	// unix:path=/run/user/1000/bus
package bus

//go:generate errtrace -w .

import (
	"fmt"
	"log/slog"
	"path"
	"runtime"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr"
	"github.com/ghettovoice/dbusaddr/internal/errorutil"
	"github.com/ghettovoice/dbusaddr/internal/util"
	"github.com/ghettovoice/dbusaddr/log"
	"github.com/ghettovoice/dbusaddr/transport"
)

// Error is the type of the sentinel errors of the package.
type Error = errorutil.Error

// ErrNoStarter is returned by [Starter] when the process was not started by a bus.
const ErrNoStarter Error = "no starter bus address"

// Environment variables.
const (
	EnvSessionBusAddress       = "DBUS_SESSION_BUS_ADDRESS"
	EnvSystemBusAddress        = "DBUS_SYSTEM_BUS_ADDRESS"
	EnvStarterAddress          = "DBUS_STARTER_ADDRESS"
	EnvXDGRuntimeDir           = "XDG_RUNTIME_DIR"
	EnvLaunchdSessionBusSocket = "DBUS_LAUNCHD_SESSION_BUS_SOCKET"
)

// DefaultSystemBusPath is the socket of the system bus on Unix-like systems.
const DefaultSystemBusPath = "/var/run/dbus/system_bus_socket"

// Options are the options of the address lookups.
type Options struct {
	// Env is the environment to read.
	// If nil, the [OSEnv] is used.
	Env Environment
	// GOOS selects the platform defaults.
	// If empty, the [runtime.GOOS] is used.
	GOOS string
	// Log is the logger.
	// If nil, the [log.Default] is used.
	Log *slog.Logger
}

func (o *Options) env() Environment {
	if o == nil || o.Env == nil {
		return OSEnv()
	}
	return o.Env
}

func (o *Options) goos() string {
	if o == nil || o.GOOS == "" {
		return runtime.GOOS
	}
	return o.GOOS
}

func (o *Options) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// Session returns the session bus addresses.
//
// The value of DBUS_SESSION_BUS_ADDRESS is used when it is set and not blank.
// Otherwise the platform default is returned:
//   - windows: "autolaunch:scope=*user;autolaunch:";
//   - darwin, ios: "launchd:env=DBUS_LAUNCHD_SESSION_BUS_SOCKET";
//   - others: "unix:path=$XDG_RUNTIME_DIR/bus", with "/run/user/<euid>" in place of
//     an unset XDG_RUNTIME_DIR.
func Session(opts *Options) (dbusaddr.List, error) {
	if l, ok, err := fromEnv(opts, EnvSessionBusAddress); err != nil || ok {
		return l, errtrace.Wrap(err)
	}

	var l dbusaddr.List
	switch opts.goos() {
	case "windows":
		l = dbusaddr.List{
			newAddr(transport.NameAutolaunch, "scope", transport.ScopeUser),
			newAddr(transport.NameAutolaunch),
		}
	case "darwin", "ios":
		l = dbusaddr.List{newAddr(transport.NameLaunchd, "env", EnvLaunchdSessionBusSocket)}
	default:
		env := opts.env()
		dir, ok := env.LookupEnv(EnvXDGRuntimeDir)
		if !ok || dir == "" {
			dir = "/run/user/" + strconv.Itoa(env.Geteuid())
		}
		l = dbusaddr.List{newAddr(transport.NameUnix, "path", path.Join(dir, "bus"))}
	}
	opts.log().Debug("session bus address defaulted", "goos", opts.goos(), "addrs", l)
	return l, nil
}

// System returns the system bus addresses.
//
// The value of DBUS_SYSTEM_BUS_ADDRESS is used when it is set and not blank.
// Otherwise the platform default is returned:
//   - windows: "autolaunch:";
//   - darwin, ios: "launchd:env=DBUS_LAUNCHD_SESSION_BUS_SOCKET";
//   - others: "unix:path=/var/run/dbus/system_bus_socket".
func System(opts *Options) (dbusaddr.List, error) {
	if l, ok, err := fromEnv(opts, EnvSystemBusAddress); err != nil || ok {
		return l, errtrace.Wrap(err)
	}

	var l dbusaddr.List
	switch opts.goos() {
	case "windows":
		l = dbusaddr.List{newAddr(transport.NameAutolaunch)}
	case "darwin", "ios":
		l = dbusaddr.List{newAddr(transport.NameLaunchd, "env", EnvLaunchdSessionBusSocket)}
	default:
		l = dbusaddr.List{newAddr(transport.NameUnix, "path", DefaultSystemBusPath)}
	}
	opts.log().Debug("system bus address defaulted", "goos", opts.goos(), "addrs", l)
	return l, nil
}

// Starter returns the addresses of the bus that started the process,
// taken from DBUS_STARTER_ADDRESS. It fails with [ErrNoStarter] when the variable is unset or blank.
func Starter(opts *Options) (dbusaddr.List, error) {
	l, ok, err := fromEnv(opts, EnvStarterAddress)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if !ok {
		return nil, errtrace.Wrap(ErrNoStarter)
	}
	return l, nil
}

func fromEnv(opts *Options, key string) (dbusaddr.List, bool, error) {
	val, ok := opts.env().LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return nil, false, nil
	}

	l, err := dbusaddr.Parse(val)
	if err != nil {
		opts.log().Debug("failed to parse bus address", "env", key, "error", err)
		return nil, true, errtrace.Wrap(fmt.Errorf("parse %s: %w", key, err))
	}
	opts.log().Debug("bus address resolved", "env", key, "addrs", l)
	return l, true, nil
}

func newAddr(name string, kvs ...string) *dbusaddr.Address {
	return util.Must2(dbusaddr.NewAddress(name, dbusaddr.NewParams(kvs...)))
}
