// Package grammar implements the lexical layer of D-Bus server addresses:
// the character classes, separators, percent codec and syntax errors.
package grammar

//go:generate errtrace -w .

import "fmt"

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput       Error = "empty input"
	ErrMalformedInput   Error = "malformed input"
	ErrMissingTransport Error = "missing transport"
	ErrInvalidEscape    Error = "invalid escape sequence"
	ErrInvalidEncoding  Error = "invalid UTF-8 encoding"
	ErrInvalidTransport Error = "invalid transport"
	ErrInvalidGUID      Error = "invalid GUID"
)

// Address separators.
const (
	ListSep      = ';'
	TransportSep = ':'
	ParamSep     = ','
	KeyValSep    = '='
	EscapeMark   = '%'
)

// SyntaxError reports a lexical failure at a byte offset of the scanned text.
type SyntaxError struct {
	Offset int    // byte offset of the offending text
	Near   string // offending text
	Err    error  // one of the Err* sentinels
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v at offset %d near %q", e.Err, e.Offset, e.Near)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (*SyntaxError) Grammar() bool { return true }

// Shift returns a copy of the error with the offset moved by delta bytes.
func (e *SyntaxError) Shift(delta int) *SyntaxError {
	e2 := *e
	e2.Offset += delta
	return &e2
}

func newSyntaxErr(err error, s string, off, size int) *SyntaxError {
	end := min(off+size, len(s))
	return &SyntaxError{Offset: off, Near: s[off:end], Err: err}
}
