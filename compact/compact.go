// Package compact provides a Transformer that trims provenance graphs for
// terse output.
package compact

import (
	"fmt"
	"strings"

	"github.com/sonnes/pramaan/core"
)

// DefaultMaxActions is the number of actions kept per card when Config
// leaves MaxActions at zero.
const DefaultMaxActions = 3

// Config controls the compact transformer behavior.
type Config struct {
	MaxActions        int
	StripPlaceholders bool
}

// Compactor shortens action lists, drops embedded thumbnails and the raw
// manifest, and optionally removes ingredients without credentials.
type Compactor struct {
	maxActions        int
	stripPlaceholders bool
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	n := cfg.MaxActions
	if n <= 0 {
		n = DefaultMaxActions
	}
	return &Compactor{maxActions: n, stripPlaceholders: cfg.StripPlaceholders}
}

// Transform implements core.Transformer.
func (c *Compactor) Transform(g *core.Graph) error {
	if c.stripPlaceholders {
		g.Rows = filterPlaceholders(g.Rows)
	}
	for i := range g.Rows {
		c.compactRecord(&g.Rows[i].Record)
	}
	g.Raw = nil
	return nil
}

// filterPlaceholders removes ingredient cards that carry no credential. The
// first row always stays, as does the collapsed-sibling summary.
func filterPlaceholders(rows []core.Row) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		if i > 0 && r.Record.Note == core.NoteNoCredential {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (c *Compactor) compactRecord(r *core.Record) {
	if strings.HasPrefix(r.ThumbnailURL, "data:") {
		r.ThumbnailURL = ""
	}
	if len(r.Actions) > c.maxActions {
		kept := append([]string{}, r.Actions[:c.maxActions]...)
		r.Actions = append(kept, moreSummary(len(r.Actions)-c.maxActions))
	}
}

// moreSummary returns a summary like "+ 1 more action" or "+ 4 more actions".
func moreSummary(n int) string {
	if n == 1 {
		return "+ 1 more action"
	}
	return fmt.Sprintf("+ %d more actions", n)
}
