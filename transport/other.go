package transport

import "github.com/ghettovoice/dbusaddr"

// Other is an address of a transport the package does not know.
type Other struct {
	addr *dbusaddr.Address
}

func (o *Other) Name() string { return o.addr.Transport() }

// Params returns the address parameters as parsed.
func (o *Other) Params() dbusaddr.Params { return o.addr.Params() }

// Address returns a copy of the original address, all keys included.
func (o *Other) Address() *dbusaddr.Address { return o.addr.Clone() }
