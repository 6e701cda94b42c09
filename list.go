package dbusaddr

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr/internal/grammar"
	"github.com/ghettovoice/dbusaddr/internal/ioutil"
	"github.com/ghettovoice/dbusaddr/internal/util"
)

// List is an ordered list of alternative server addresses.
// Clients try the addresses in list order.
type List []*Address

// RenderTo writes the addresses separated by ";" to w.
// Nil addresses are skipped.
func (l List) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if len(l) == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	var i int
	for _, a := range l {
		if a == nil {
			continue
		}
		if i > 0 {
			cw.WriteByte(grammar.ListSep) //nolint:errcheck
		}
		cw.Call(func(w io.Writer) (int, error) {
			return errtrace.Wrap2(a.RenderTo(w, opts))
		})
		i++
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the addresses separated by ";".
func (l List) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	l.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the addresses separated by ";".
func (l List) String() string { return l.Render(nil) }

// Format implements [fmt.Formatter] with the same verbs as [Address.Format].
func (l List) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			l.RenderTo(f, &RenderOptions{SortParams: true}) //nolint:errcheck
			return
		}
		fmt.Fprint(f, l.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(l.String()))
		return
	default:
		type hideMethods List
		type List hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), List(l))
		return
	}
}

// Equal compares the list with another [List] or *[List].
// Lists are equal when they have the same length and equal addresses in the same order.
func (l List) Equal(val any) bool {
	var other List
	switch v := val.(type) {
	case List:
		other = v
	case *List:
		if v == nil {
			return false
		}
		other = *v
	case []*Address:
		other = v
	default:
		return false
	}

	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	l2 := make(List, len(l))
	for i, a := range l {
		l2[i] = a.Clone()
	}
	return l2
}

// IsValid checks whether all addresses are non-nil and valid, see [Address.IsValid].
func (l List) IsValid() bool {
	for _, a := range l {
		if !a.IsValid() {
			return false
		}
	}
	return true
}

// MarshalText implements [encoding.TextMarshaler].
func (l List) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *List) UnmarshalText(text []byte) error {
	l1, err := Parse(text)
	if err != nil {
		*l = nil
		return errtrace.Wrap(err)
	}
	*l = l1
	return nil
}
