package transport

import (
	"math"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr"
)

// VSockAny matches any context ID or port.
const VSockAny uint32 = math.MaxUint32

// VSock is the "vsock" transport: a virtual socket between a virtual machine and its host.
type VSock struct {
	// CID is the context ID, [VSockAny] when omitted.
	CID uint32
	// Port is [VSockAny] when omitted.
	Port uint32
}

// ParseVSock interprets a "vsock" address with the optional keys "cid" and "port".
func ParseVSock(a *dbusaddr.Address) (*VSock, error) {
	if err := checkName(a, NameVSock); err != nil {
		return nil, errtrace.Wrap(err)
	}

	v := VSock{CID: VSockAny, Port: VSockAny}
	if cid, ok, err := uintParam(a, "cid", 32); err != nil {
		return nil, errtrace.Wrap(err)
	} else if ok {
		v.CID = uint32(cid)
	}
	if port, ok, err := uintParam(a, "port", 32); err != nil {
		return nil, errtrace.Wrap(err)
	} else if ok {
		v.Port = uint32(port)
	}
	return &v, nil
}

func (*VSock) Name() string { return NameVSock }

func (v *VSock) Address() *dbusaddr.Address {
	kvs := make([]string, 0, 4)
	if v.CID != VSockAny {
		kvs = append(kvs, "cid", strconv.FormatUint(uint64(v.CID), 10))
	}
	if v.Port != VSockAny {
		kvs = append(kvs, "port", strconv.FormatUint(uint64(v.Port), 10))
	}
	return newAddr(NameVSock, kvs...)
}
