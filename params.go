package dbusaddr

import (
	"io"
	"iter"
	"maps"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr/internal/grammar"
	"github.com/ghettovoice/dbusaddr/internal/ioutil"
	"github.com/ghettovoice/dbusaddr/internal/util"
)

// Params maps decoded address keys to decoded values.
//
// Keys are unique and case-sensitive. Setting an existing key replaces its value
// and moves the key to the end, so iteration follows the order of the last assignment.
// Callers should not depend on that order, [Params.Equal] ignores it.
//
// Params is immutable: [Params.With] and [Params.Without] return modified copies.
// The zero value is an empty set of parameters.
type Params struct {
	keys []string
	vals map[string]string
}

// NewParams builds Params from the key/value pairs kvs.
// A trailing key without a value gets the empty value.
// Repeated keys keep the last value.
func NewParams(kvs ...string) Params {
	var p Params
	for i := 0; i < len(kvs); i += 2 {
		var v string
		if i+1 < len(kvs) {
			v = kvs[i+1]
		}
		p.set(kvs[i], v)
	}
	return p
}

func (p *Params) set(key, val string) {
	if p.vals == nil {
		p.vals = make(map[string]string)
	}
	if _, ok := p.vals[key]; ok {
		if i := slices.Index(p.keys, key); i >= 0 {
			p.keys = slices.Delete(p.keys, i, i+1)
		}
	}
	p.keys = append(p.keys, key)
	p.vals[key] = val
}

func (p *Params) del(key string) {
	if _, ok := p.vals[key]; !ok {
		return
	}
	delete(p.vals, key)
	if i := slices.Index(p.keys, key); i >= 0 {
		p.keys = slices.Delete(p.keys, i, i+1)
	}
}

// Get returns the value of key and whether the key is present.
func (p Params) Get(key string) (string, bool) {
	v, ok := p.vals[key]
	return v, ok
}

// Has checks whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p.vals[key]
	return ok
}

// Len returns the number of keys.
func (p Params) Len() int { return len(p.keys) }

// IsZero checks whether there are no parameters.
func (p Params) IsZero() bool { return len(p.keys) == 0 }

// Keys iterates over the keys.
func (p Params) Keys() iter.Seq[string] { return slices.Values(p.keys) }

// All iterates over the key/value pairs.
func (p Params) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range p.keys {
			if !yield(k, p.vals[k]) {
				return
			}
		}
	}
}

// Map returns the parameters as a newly allocated map.
func (p Params) Map() map[string]string {
	if len(p.vals) == 0 {
		return map[string]string{}
	}
	return maps.Clone(p.vals)
}

// With returns a copy of the parameters with key set to val.
func (p Params) With(key, val string) Params {
	p2 := p.Clone()
	p2.set(key, val)
	return p2
}

// Without returns a copy of the parameters without key.
func (p Params) Without(key string) Params {
	if !p.Has(key) {
		return p
	}
	p2 := p.Clone()
	p2.del(key)
	return p2
}

// Clone returns a deep copy of the parameters.
func (p Params) Clone() Params {
	if len(p.keys) == 0 {
		return Params{}
	}
	return Params{
		keys: slices.Clone(p.keys),
		vals: maps.Clone(p.vals),
	}
}

// Equal compares the parameters with another [Params] or *[Params].
// The order of keys is ignored.
func (p Params) Equal(val any) bool {
	var other Params
	switch v := val.(type) {
	case Params:
		other = v
	case *Params:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return len(p.keys) == len(other.keys) && maps.Equal(p.vals, other.vals)
}

// RenderTo writes the escaped "key=value,..." form of the parameters to w.
func (p Params) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if len(p.keys) == 0 {
		return 0, nil
	}

	keys := p.keys
	if opts.sortParams() {
		keys = slices.Sorted(slices.Values(p.keys))
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i, k := range keys {
		if i > 0 {
			cw.WriteByte(grammar.ParamSep) //nolint:errcheck
		}
		cw.Fprint(grammar.Escape(k), "=", grammar.Escape(p.vals[k]))
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the escaped "key=value,..." form of the parameters.
func (p Params) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	p.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the escaped "key=value,..." form of the parameters.
func (p Params) String() string { return p.Render(nil) }
