package grammar

import (
	"github.com/ghettovoice/abnf"
)

// Rule names, the keys of the nodes produced by the address rules.
const (
	RuleAddrList  = "addr-list"
	RuleSegment   = "segment"
	RuleAddress   = "address"
	RuleTransport = "transport"
	RuleKV        = "kv"
	RuleKey       = "key"
	RuleValue     = "value"
)

// IsAlphanum checks the ALPHA / DIGIT rule.
func IsAlphanum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// IsUnescaped checks the "unescaped" rule: bytes that may appear in keys and values as is.
func IsUnescaped(c byte) bool {
	if IsAlphanum(c) {
		return true
	}
	switch c {
	case '-', '_', '/', '.', '\\':
		return true
	}
	return false
}

// IsTransportChar checks the character set accepted for transport names built by hand.
// Parsed transports are taken verbatim and are not checked against it.
func IsTransportChar(c byte) bool {
	if c <= ' ' || c >= 0x7f {
		return false
	}
	switch c {
	case ListSep, TransportSep, ParamSep, KeyValSep, EscapeMark:
		return false
	}
	return true
}

// IsTransport reports whether s is a non-empty transport name that renders and parses back unchanged.
func IsTransport[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsTransportChar(s[i]) {
			return false
		}
	}
	return true
}

// IsBlank reports whether s holds nothing but ASCII white space.
func IsBlank[T ~string | ~[]byte](s T) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// anyBut matches a single byte that is not one of excl, excl must be sorted.
func anyBut(key string, excl ...byte) abnf.Operator {
	var ops []abnf.Operator
	lo := 0
	for _, c := range excl {
		if int(c) > lo {
			ops = append(ops, abnf.Range(key, []byte{byte(lo)}, []byte{c - 1}))
		}
		lo = int(c) + 1
	}
	if lo <= 0xff {
		ops = append(ops, abnf.Range(key, []byte{byte(lo)}, []byte{0xff}))
	}
	return abnf.AltFirst(key, ops[0], ops[1:]...)
}

// The relaxed address grammar:
//
//	addr-list = segment *( ";" segment )
//	segment   = *( %x00-3A / %x3C-FF )
//	address   = transport ":" kv *( "," kv )
//	transport = 1*( %x00-39 / %x3C-FF )
//	kv        = key "=" value / 1*key-char / ""
//	key       = *key-char
//	key-char  = %x00-2B / %x2D-3A / %x3C / %x3E-FF
//	value     = *( %x00-2B / %x2D-3A / %x3C-FF )
//
// Segments and key-value entries are recognized structurally, escapes are
// decoded and checked while walking the tree.
var (
	listSep  = abnf.LiteralCS("list-sep", []byte{ListSep})
	trSep    = abnf.LiteralCS("transport-sep", []byte{TransportSep})
	paramSep = abnf.LiteralCS("param-sep", []byte{ParamSep})
	kvSep    = abnf.LiteralCS("kv-sep", []byte{KeyValSep})

	segment = abnf.Repeat0Inf(RuleSegment, anyBut("seg-char", ListSep))

	addrList = abnf.Concat(
		RuleAddrList,
		segment,
		abnf.Repeat0Inf("addr-list-tail", abnf.Concat("addr-list-next", listSep, segment)),
	)

	keyChar = anyBut("key-char", ParamSep, ListSep, KeyValSep)

	kv = abnf.AltFirst(
		RuleKV,
		abnf.Concat(
			"kv-pair",
			abnf.Repeat0Inf(RuleKey, keyChar),
			kvSep,
			abnf.Repeat0Inf(RuleValue, anyBut("value-char", ParamSep, ListSep)),
		),
		abnf.Repeat1Inf(RuleKey, keyChar),
		abnf.LiteralCS("kv-empty", nil),
	)

	address = abnf.Concat(
		RuleAddress,
		abnf.Repeat1Inf(RuleTransport, anyBut("transport-char", TransportSep, ListSep)),
		trSep,
		kv,
		abnf.Repeat0Inf("kv-tail", abnf.Concat("kv-next", paramSep, kv)),
	)
)

// AddrList matches the whole address list text, blank segments included.
func AddrList(s []byte, ns *abnf.Nodes) error {
	return addrList(s, 0, ns) //errtrace:skip
}

// Address matches a single address segment.
func Address(s []byte, ns *abnf.Nodes) error {
	return address(s, 0, ns) //errtrace:skip
}
