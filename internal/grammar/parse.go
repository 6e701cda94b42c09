package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"
)

// ParseAddrList matches s against the address list rule.
// The result always spans the whole input, segments are found by the [RuleSegment] key.
func ParseAddrList[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := AddrList([]byte(s), ns); err != nil {
		return nil, errtrace.Wrap(&SyntaxError{Near: string(s), Err: ErrMalformedInput})
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newSyntaxErr(ErrMalformedInput, string(s), nl, 1))
	}
	return n, nil
}

// ParseAddress matches a single address segment s, s must not contain list separators.
// Node positions and error offsets are relative to s.
func ParseAddress[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	// the rest of the rule accepts any text, only the transport part can fail
	if err := Address([]byte(s), ns); err != nil {
		if s[0] == TransportSep {
			return nil, errtrace.Wrap(newSyntaxErr(ErrMissingTransport, string(s), 0, 1))
		}
		return nil, errtrace.Wrap(&SyntaxError{Near: string(s), Err: ErrMissingTransport})
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newSyntaxErr(ErrMalformedInput, string(s), nl, 1))
	}
	return n, nil
}
