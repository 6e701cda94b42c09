package grammar

import (
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"
)

// Unescape decodes each "% HEXDIG HEXDIG" sequence of s into the byte it encodes.
// Other bytes are copied as is. The decoded bytes must form valid UTF-8 text.
//
// A "%" not followed by two hex digits fails with [ErrInvalidEscape],
// undecodable text fails with [ErrInvalidEncoding]. Both are returned as [*SyntaxError]
// with the offset in s.
func Unescape(s string) (string, error) {
	if strings.IndexByte(s, EscapeMark) < 0 {
		if i := invalidUTF8At(s); i >= 0 {
			return "", errtrace.Wrap(newSyntaxErr(ErrInvalidEncoding, s, i, 1))
		}
		return s, nil
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != EscapeMark {
			buf = append(buf, s[i])
			continue
		}
		if i+2 >= len(s) || !ishex(s[i+1]) || !ishex(s[i+2]) {
			return "", errtrace.Wrap(newSyntaxErr(ErrInvalidEscape, s, i, 3))
		}
		buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
		i += 2
	}

	out := string(buf)
	if j := invalidUTF8At(out); j >= 0 {
		i := srcOffset(s, j)
		size := 1
		if s[i] == EscapeMark {
			size = 3
		}
		return "", errtrace.Wrap(newSyntaxErr(ErrInvalidEncoding, s, i, size))
	}
	return out, nil
}

// UnescapeLossy decodes s like [Unescape] but never fails:
// malformed escapes are kept verbatim and invalid UTF-8 is replaced with U+FFFD.
// It is meant for diagnostics only.
func UnescapeLossy(s string) string {
	if len(s) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == EscapeMark && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return strings.ToValidUTF8(b.String(), "\uFFFD")
}

// Escape encodes every byte of s outside of the unescaped set
// to the hex form "% HEXDIG HEXDIG" with upper-case digits.
func Escape[T ~string | ~[]byte](s T) T {
	var n int
	for i := 0; i < len(s); i++ {
		if !IsUnescaped(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		if IsUnescaped(s[i]) {
			buf = append(buf, s[i])
			continue
		}
		buf = append(buf, EscapeMark, upperhex[s[i]>>4], upperhex[s[i]&15])
	}
	return T(buf)
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func invalidUTF8At(s string) int {
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n <= 1 {
			return i
		}
		i += n
	}
	return -1
}

// srcOffset maps the offset j of the decoded text back to the escaped source s.
// s must contain only well-formed escapes.
func srcOffset(s string, j int) int {
	for i := 0; i < len(s); i++ {
		if j == 0 {
			return i
		}
		if s[i] == EscapeMark {
			i += 2
		}
		j--
	}
	return len(s)
}

// CheckText checks that s is valid UTF-8 text.
// It fails with [ErrInvalidEncoding] as [*SyntaxError] with the offset of the first bad byte.
func CheckText(s string) error {
	if i := invalidUTF8At(s); i >= 0 {
		return errtrace.Wrap(newSyntaxErr(ErrInvalidEncoding, s, i, 1))
	}
	return nil
}
