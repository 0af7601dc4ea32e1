// Package render defines the interface for rendering provenance graphs into
// various output formats.
package render

import (
	"io"

	"github.com/sonnes/pramaan/core"
)

// Renderer writes a provenance graph to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, g *core.Graph) error
}
