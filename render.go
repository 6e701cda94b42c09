package dbusaddr

import "io"

// Renderer is implemented by the types that have a textual address form.
type Renderer interface {
	// Render renders the value to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the value to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions controls rendering of addresses.
// A nil *RenderOptions renders the canonical form.
type RenderOptions struct {
	// SortParams renders parameters ordered by key instead of the order of assignment.
	SortParams bool `json:"sort_params,omitempty"`
}

func (o *RenderOptions) sortParams() bool { return o != nil && o.SortParams }

var (
	_ Renderer = Params{}
	_ Renderer = (*Address)(nil)
	_ Renderer = List(nil)
)
