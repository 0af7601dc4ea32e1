// Package terminal renders provenance graphs as ANSI-colored cards joined by
// arrows.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/pramaan/core"
)

const (
	defaultWidth = 100
	maxCardWidth = 72
	indentStep   = 4
)

// Renderer pretty-prints a provenance graph as cards to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the graph as cards to w, one per row, with an arrow before
// every row that has a connector.
func (r *Renderer) Render(w io.Writer, g *core.Graph) error {
	width := r.termWidth()

	writeHeader(w, g, width)
	fmt.Fprintln(w)

	if !g.OK() {
		fmt.Fprintln(w, styleError.Render("Could not read Content Credentials."))
		if g.Error != "" {
			fmt.Fprintln(w, styleMeta.Render(g.Error))
		}
		return nil
	}

	for _, row := range g.Rows {
		indent := strings.Repeat(" ", row.Depth*indentStep)
		if row.Connector {
			fmt.Fprintln(w, indent+styleConnector.Render("  ↓"))
		}
		card := renderCard(row.Record, min(width-len(indent), maxCardWidth))
		for _, line := range strings.Split(card, "\n") {
			fmt.Fprintln(w, indent+line)
		}
	}
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeHeader renders the asset being inspected.
func writeHeader(w io.Writer, g *core.Graph, width int) {
	fmt.Fprintln(w, styleTitle.Render("Content Credentials"))

	var parts []string
	if g.AssetURL != "" {
		parts = append(parts, truncate(g.AssetURL, width-20))
	}
	if n := len(g.Rows); n > 0 {
		parts = append(parts, pluralize(n, "card"))
	}
	if len(parts) > 0 {
		fmt.Fprintln(w, styleMeta.Render(strings.Join(parts, "  ")))
	}
}

// renderCard draws one record as a bordered box of the given outer width.
func renderCard(rec core.Record, width int) string {
	inner := max(width-4, 16) // border and padding

	lines := []string{styleCardTitle.Render(truncate(rec.Title, inner))}
	if thumb := thumbnailLabel(rec.ThumbnailURL, inner); thumb != "" {
		lines = append(lines, styleMeta.Render(thumb))
	}

	if rec.IsPlaceholder() {
		lines = append(lines, styleNote.Render(rec.Note))
		return styleMutedCard.Width(inner + 2).Render(strings.Join(lines, "\n"))
	}

	for _, f := range recordFields(rec) {
		lines = append(lines, styleLabel.Render(f.label+":")+" "+styleValue(f))
	}
	return styleCard.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// truncate shortens text to maxWidth, appending "..." if needed.
// Multi-line text is reduced to the first line.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
