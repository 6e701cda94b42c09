package dbusaddr

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr/internal/grammar"
)

// Escape percent-encodes s for use as an address key or value.
// Letters, digits and "-_/.\" are kept, every other byte is written as "%XX".
func Escape(s string) string { return grammar.Escape(s) }

// Unescape decodes the percent-encoded key or value s.
// It fails with [ErrInvalidEscape] on a malformed escape sequence
// and with [ErrInvalidEncoding] when the decoded bytes are not valid UTF-8.
func Unescape(s string) (string, error) { return errtrace.Wrap2(grammar.Unescape(s)) }

// UnescapeLossy decodes s like [Unescape] but never fails.
// Malformed escapes are kept as is and invalid UTF-8 is replaced with U+FFFD.
// Use it for diagnostic output only.
func UnescapeLossy(s string) string { return grammar.UnescapeLossy(s) }
