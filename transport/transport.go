// Package transport interprets the parameters of the well-known D-Bus transports.
//
// [FromAddress] turns a parsed [dbusaddr.Address] into a typed value:
//
//	a, _ := dbusaddr.ParseAddress("tcp:host=localhost,port=4000,family=ipv4")
//	t, _ := transport.FromAddress(a)
//	tcp := t.(*transport.TCP)
//	conn, err := net.Dial(tcp.Network(), tcp.DialAddr())
//
// Unknown transports are kept as [*Other]. Keys a transport does not know are ignored.
package transport

//go:generate errtrace -w .

import (
	"errors"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr"
	"github.com/ghettovoice/dbusaddr/internal/errorutil"
	"github.com/ghettovoice/dbusaddr/internal/util"
)

// Error is the type of the sentinel errors of the package.
type Error = errorutil.Error

const (
	// ErrMissingKey is returned when a required key is absent.
	ErrMissingKey Error = "missing key"
	// ErrConflictingKeys is returned when mutually exclusive keys are set together.
	ErrConflictingKeys Error = "conflicting keys"
	// ErrInvalidValue is returned when a value can't be interpreted.
	ErrInvalidValue Error = "invalid value"
	// ErrUnknownFamily is returned for a tcp "family" other than "ipv4" or "ipv6".
	ErrUnknownFamily Error = "unknown address family"
	// ErrTransportMismatch is returned when an address is given to the parser of another transport.
	ErrTransportMismatch Error = "transport mismatch"
)

// Transport names.
const (
	NameUnix       = "unix"
	NameTCP        = "tcp"
	NameNonceTCP   = "nonce-tcp"
	NameUnixExec   = "unixexec"
	NameAutolaunch = "autolaunch"
	NameLaunchd    = "launchd"
	NameSystemd    = "systemd"
	NameVSock      = "vsock"
)

// Transport is a typed view of an address.
type Transport interface {
	// Name returns the transport name, e.g. "unix".
	Name() string
	// Address renders the transport back to an address.
	// Keys the transport does not interpret, like "guid", are not carried.
	Address() *dbusaddr.Address
}

var (
	_ Transport = (*Unix)(nil)
	_ Transport = (*TCP)(nil)
	_ Transport = (*NonceTCP)(nil)
	_ Transport = (*UnixExec)(nil)
	_ Transport = (*Autolaunch)(nil)
	_ Transport = (*Launchd)(nil)
	_ Transport = (*Systemd)(nil)
	_ Transport = (*VSock)(nil)
	_ Transport = (*Other)(nil)
)

var fromAddr = map[string]func(*dbusaddr.Address) (Transport, error){
	NameUnix:       as(ParseUnix),
	NameTCP:        as(ParseTCP),
	NameNonceTCP:   as(ParseNonceTCP),
	NameUnixExec:   as(ParseUnixExec),
	NameAutolaunch: as(ParseAutolaunch),
	NameLaunchd:    as(ParseLaunchd),
	NameSystemd:    as(ParseSystemd),
	NameVSock:      as(ParseVSock),
}

func as[T Transport](fn func(*dbusaddr.Address) (T, error)) func(*dbusaddr.Address) (Transport, error) {
	return func(a *dbusaddr.Address) (Transport, error) {
		t, err := fn(a)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return t, nil
	}
}

// FromAddress interprets the address by its transport name.
// Addresses of unknown transports are returned as [*Other].
func FromAddress(a *dbusaddr.Address) (Transport, error) {
	if a == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil address"))
	}
	if fn, ok := fromAddr[a.Transport()]; ok {
		return errtrace.Wrap2(fn(a))
	}
	return &Other{addr: a.Clone()}, nil
}

// FromList interprets every address of the list, see [FromAddress].
// It stops at the first failure.
func FromList(l dbusaddr.List) ([]Transport, error) {
	ts := make([]Transport, 0, len(l))
	for _, a := range l {
		if a == nil {
			continue
		}
		t, err := FromAddress(a)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		ts = append(ts, t)
	}
	return ts, nil
}

func checkName(a *dbusaddr.Address, name string) error {
	if a == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil address"))
	}
	if a.Transport() != name {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrTransportMismatch, "got %q, want %q", a.Transport(), name))
	}
	return nil
}

// newAddr builds an address of a transport with a constant name.
func newAddr(name string, kvs ...string) *dbusaddr.Address {
	return util.Must2(dbusaddr.NewAddress(name, dbusaddr.NewParams(kvs...)))
}

func missingKey(key string) error {
	return errorutil.NewWrapperError(ErrMissingKey, "%q", key) //errtrace:skip
}

func invalidValue(key, val string, err error) error {
	if err != nil {
		return errorutil.NewWrapperError(ErrInvalidValue, "%s=%q: %v", key, val, err) //errtrace:skip
	}
	return errorutil.NewWrapperError(ErrInvalidValue, "%s=%q", key, val) //errtrace:skip
}

// uintParam parses the optional decimal value of key.
func uintParam(a *dbusaddr.Address, key string, bitSize int) (v uint64, ok bool, err error) {
	s, ok := a.Get(key)
	if !ok {
		return 0, false, nil
	}
	v, err = strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, true, errtrace.Wrap(invalidValue(key, s, err))
	}
	return v, true, nil
}
