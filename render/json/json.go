// Package json renders provenance graphs as JSON (serializes core.Graph as-is).
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sonnes/pramaan/core"
)

// Renderer renders a provenance graph to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
	// Raw includes the active manifest under "manifest".
	Raw bool
}

// New creates an indenting JSON Renderer.
func New() *Renderer {
	return &Renderer{Indent: true}
}

type document struct {
	*core.Graph
	Manifest any `json:"manifest,omitempty"`
}

// Render writes g as a single JSON document followed by a newline.
func (r *Renderer) Render(w io.Writer, g *core.Graph) error {
	doc := document{Graph: g}
	if r.Raw {
		doc.Manifest = g.Raw
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}
