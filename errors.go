package dbusaddr

import (
	"fmt"

	"github.com/ghettovoice/dbusaddr/internal/errorutil"
	"github.com/ghettovoice/dbusaddr/internal/grammar"
	"github.com/ghettovoice/dbusaddr/internal/util"
)

// Error is the type of the sentinel errors of the package.
// All of them are grammar errors, see [IsGrammarErr].
type Error = grammar.Error

const (
	// ErrEmptyInput is returned by [ParseAddress] when the input is empty or blank.
	ErrEmptyInput = grammar.ErrEmptyInput
	// ErrMalformedInput is returned when the input does not fit the address grammar.
	ErrMalformedInput = grammar.ErrMalformedInput
	// ErrMissingTransport is returned when an address has no "transport:" prefix.
	ErrMissingTransport = grammar.ErrMissingTransport
	// ErrInvalidEscape is returned when "%" is not followed by two hex digits.
	ErrInvalidEscape = grammar.ErrInvalidEscape
	// ErrInvalidEncoding is returned when a decoded key or value is not valid UTF-8.
	ErrInvalidEncoding = grammar.ErrInvalidEncoding
	// ErrInvalidTransport is returned by [NewAddress] for transport names that can't be rendered.
	ErrInvalidTransport = grammar.ErrInvalidTransport
	// ErrInvalidGUID is returned by [ParseGUID].
	ErrInvalidGUID = grammar.ErrInvalidGUID
)

// ParseError describes a failure to parse an address text.
// It wraps one of the sentinel errors, so it can be matched with [errors.Is].
type ParseError struct {
	// Input is the whole parsed text.
	Input string
	// Segment is the index of the ";"-separated segment where parsing failed.
	Segment int
	// Offset is the byte offset of the offending text in Input.
	Offset int
	// Near is the offending text.
	Near string
	// Err is the failure kind.
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("parse address %q: segment %d, offset %d near %q: %v",
		util.Ellipsis(e.Input, 64), e.Segment, e.Offset, e.Near, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (*ParseError) Grammar() bool { return true }

// IsGrammarErr reports whether err is a failure to parse or build an address.
func IsGrammarErr(err error) bool { return errorutil.IsGrammarErr(err) }
