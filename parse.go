package dbusaddr

import (
	"errors"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/dbusaddr/internal/grammar"
)

// Parse parses the address list s (string or []byte).
//
// The text is split on ";" and every non-blank segment is parsed as an address,
// in order. Blank segments (leading, trailing or doubled separators, or white space only)
// are skipped, so an empty or blank text gives an empty list and no error.
// Other segments are parsed as is, white space included.
// The first malformed segment fails the whole parse with a [*ParseError]
// and no partial list is returned.
func Parse[T ~string | ~[]byte](s T) (List, error) {
	return errtrace.Wrap2(parseList(string(s)))
}

// ParseAddress parses a single address from s (string or []byte).
//
// It fails with [ErrEmptyInput] on blank input and with [ErrMalformedInput]
// when s is a list of several addresses.
func ParseAddress[T ~string | ~[]byte](s T) (*Address, error) {
	in := string(s)
	if grammar.IsBlank(in) {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	node, err := grammar.ParseAddrList(in)
	if err != nil {
		return nil, errtrace.Wrap(newParseErr(in, 0, 0, err))
	}
	if segs := node.GetNodes(grammar.RuleSegment); len(segs) > 1 {
		off := int(segs[1].Pos) - 1
		return nil, errtrace.Wrap(&ParseError{
			Input:  in,
			Offset: off,
			Near:   in[off : off+1],
			Err:    ErrMalformedInput,
		})
	}

	a, err := parseAddress(in)
	if err != nil {
		return nil, errtrace.Wrap(newParseErr(in, 0, 0, err))
	}
	return a, nil
}

func parseList(s string) (List, error) {
	l := List{}
	if len(s) == 0 {
		return l, nil
	}

	node, err := grammar.ParseAddrList(s)
	if err != nil {
		return nil, errtrace.Wrap(newParseErr(s, 0, 0, err))
	}
	for i, seg := range node.GetNodes(grammar.RuleSegment) {
		// blank segments carry no address, the others are parsed verbatim
		if grammar.IsBlank(seg.Value) {
			continue
		}
		a, err := parseAddress(seg.String())
		if err != nil {
			return nil, errtrace.Wrap(newParseErr(s, i, int(seg.Pos), err))
		}
		l = append(l, a)
	}
	return l, nil
}

// parseAddress parses one address segment without list separators.
// Errors are [*grammar.SyntaxError] with offsets relative to s.
func parseAddress(s string) (*Address, error) {
	node, err := grammar.ParseAddress(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	tr, _ := node.GetNode(grammar.RuleTransport)
	if err := grammar.CheckText(tr.String()); err != nil {
		return nil, errtrace.Wrap(shiftSyntaxErr(err, int(tr.Pos)))
	}

	a := &Address{transport: tr.String()}
	for _, kv := range node.GetNodes(grammar.RuleKV) {
		// "t:,,k=v" is accepted, empty entries carry nothing
		if kv.IsEmpty() {
			continue
		}

		// only the first raw "=" separates, escaped "%3D" is decoded afterwards,
		// a bare key gets the empty value
		key, err := unescapeNode(kv, grammar.RuleKey)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		val, err := unescapeNode(kv, grammar.RuleValue)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}

		// repeated keys: the last one wins
		a.params.set(key, val)
	}
	return a, nil
}

func unescapeNode(n *abnf.Node, key string) (string, error) {
	sub, ok := n.GetNode(key)
	if !ok {
		return "", nil
	}
	v, err := grammar.Unescape(sub.String())
	if err != nil {
		return "", errtrace.Wrap(shiftSyntaxErr(err, int(sub.Pos)))
	}
	return v, nil
}

func shiftSyntaxErr(err error, delta int) error {
	var synErr *grammar.SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Shift(delta) //errtrace:skip
	}
	return err //errtrace:skip
}

func newParseErr(input string, seg, base int, err error) error {
	var synErr *grammar.SyntaxError
	if !errors.As(err, &synErr) {
		return err //errtrace:skip
	}
	return &ParseError{ //errtrace:skip
		Input:   input,
		Segment: seg,
		Offset:  base + synErr.Offset,
		Near:    synErr.Near,
		Err:     synErr.Err,
	}
}
