package dbusaddr

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr/internal/errorutil"
	"github.com/ghettovoice/dbusaddr/internal/grammar"
	"github.com/ghettovoice/dbusaddr/internal/ioutil"
	"github.com/ghettovoice/dbusaddr/internal/util"
)

// GUIDKey is the parameter key holding the server GUID.
const GUIDKey = "guid"

// Address is a single D-Bus server address: a transport name and its parameters.
//
// Address values are immutable, modifying methods return new addresses.
// Use [ParseAddress], [Parse] or [NewAddress] to build one.
type Address struct {
	transport string
	params    Params
}

// NewAddress builds an address from the transport name and parameters.
// The transport must be a non-empty name without white space or any of ":;,=%",
// otherwise [ErrInvalidTransport] is returned.
func NewAddress(transport string, params Params) (*Address, error) {
	if !grammar.IsTransport(transport) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidTransport, "%q", transport))
	}
	return &Address{transport: transport, params: params}, nil
}

// Transport returns the transport name, e.g. "unix" or "tcp".
func (a *Address) Transport() string {
	if a == nil {
		return ""
	}
	return a.transport
}

// Params returns the address parameters.
func (a *Address) Params() Params {
	if a == nil {
		return Params{}
	}
	return a.params
}

// Get returns the decoded value of the parameter key and whether it is present.
func (a *Address) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	return a.params.Get(key)
}

// Has checks whether the parameter key is present.
func (a *Address) Has(key string) bool {
	return a != nil && a.params.Has(key)
}

// GUID returns the value of the "guid" parameter.
// The value is not validated, use [ParseGUID] for that.
func (a *Address) GUID() (string, bool) { return a.Get(GUIDKey) }

// With returns a copy of the address with the parameter key set to val.
func (a *Address) With(key, val string) *Address {
	if a == nil {
		return nil
	}
	return &Address{transport: a.transport, params: a.params.With(key, val)}
}

// Without returns a copy of the address without the parameter key.
func (a *Address) Without(key string) *Address {
	if a == nil {
		return nil
	}
	return &Address{transport: a.transport, params: a.params.Without(key)}
}

// Clone returns a deep copy of the address.
func (a *Address) Clone() *Address {
	if a == nil {
		return nil
	}
	return &Address{transport: a.transport, params: a.params.Clone()}
}

// RenderTo writes the canonical "transport:key=value,..." form of the address to w.
func (a *Address) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if a == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(a.transport, ":")
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(a.params.RenderTo(w, opts))
	})
	return errtrace.Wrap2(cw.Result())
}

// Render returns the canonical form of the address.
func (a *Address) Render(opts *RenderOptions) string {
	if a == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	a.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the canonical form of the address.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	return a.Render(nil)
}

// Format implements [fmt.Formatter].
//
// Verb "%s" prints the canonical form, "%+s" prints it with sorted parameters,
// "%q" prints the quoted canonical form. Other verbs print the struct.
func (a *Address) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			a.RenderTo(f, &RenderOptions{SortParams: true}) //nolint:errcheck
			return
		}
		fmt.Fprint(f, a.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.String()))
		return
	default:
		type hideMethods Address
		type Address hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Address)(a))
		return
	}
}

// Equal compares the address with another [Address] or *[Address].
// Addresses are equal when transports are equal and parameters are equal regardless of their order.
func (a *Address) Equal(val any) bool {
	var other *Address
	switch v := val.(type) {
	case Address:
		other = &v
	case *Address:
		other = v
	default:
		return false
	}

	if a == other {
		return true
	} else if a == nil || other == nil {
		return false
	}

	return a.transport == other.transport && a.params.Equal(other.params)
}

// IsValid checks whether the address renders to text that parses back to an equal address.
// Parsed addresses take the transport verbatim, so a transport with white space
// or other special characters makes the address invalid.
func (a *Address) IsValid() bool {
	return a != nil && grammar.IsTransport(a.transport)
}

// MarshalText implements [encoding.TextMarshaler].
func (a *Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Address) UnmarshalText(text []byte) error {
	a1, err := ParseAddress(text)
	if err != nil {
		*a = Address{}
		return errtrace.Wrap(err)
	}
	*a = *a1
	return nil
}
