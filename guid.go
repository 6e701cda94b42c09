package dbusaddr

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr/internal/errorutil"
	"github.com/ghettovoice/dbusaddr/internal/util"
)

// GUID is a D-Bus server identity carried by the "guid" address parameter.
// Its textual form is 32 lower-case hex digits.
type GUID [16]byte

// NewGUID generates a GUID from 12 random bytes followed by the big-endian Unix time in seconds.
func NewGUID() GUID {
	var g GUID
	copy(g[:12], util.RandBytes(12))
	binary.BigEndian.PutUint32(g[12:], uint32(time.Now().Unix())) //nolint:gosec
	return g
}

// ParseGUID parses the textual form of a GUID, 32 hex digits of either case.
// Any other input fails with [ErrInvalidGUID].
func ParseGUID[T ~string | ~[]byte](s T) (GUID, error) {
	var g GUID
	if len(s) != 2*len(g) {
		return GUID{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidGUID, "want %d hex digits, got %d bytes", 2*len(g), len(s)))
	}
	if _, err := hex.Decode(g[:], []byte(s)); err != nil {
		return GUID{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidGUID, err))
	}
	return g, nil
}

// String returns 32 lower-case hex digits.
func (g GUID) String() string { return hex.EncodeToString(g[:]) }

// IsZero checks whether all bytes are zero.
func (g GUID) IsZero() bool { return g == GUID{} }

// MarshalText implements [encoding.TextMarshaler].
func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (g *GUID) UnmarshalText(text []byte) error {
	g1, err := ParseGUID(text)
	if err != nil {
		*g = GUID{}
		return errtrace.Wrap(err)
	}
	*g = g1
	return nil
}
