package terminal

import (
	"strings"

	"github.com/sonnes/pramaan/core"
)

// field is one labelled line of a card.
type field struct {
	label string
	value string
}

// recordFields lists the card lines for a credentialed record. Actions are
// omitted entirely when there are none.
func recordFields(rec core.Record) []field {
	fields := []field{
		{"Author", rec.Author},
		{"App/device used", rec.Generator},
	}
	if len(rec.Actions) > 0 {
		fields = append(fields, field{"Actions", strings.Join(rec.Actions, " -> ")})
	}
	fields = append(fields, field{"Issued on", rec.Issued})
	return fields
}

// styleValue highlights the AI provenance suffixes inside action text.
func styleValue(f field) string {
	if f.label != "Actions" {
		return f.value
	}
	out := f.value
	for _, suffix := range []string{"[AI-edited]", "[AI-generated]"} {
		out = strings.ReplaceAll(out, suffix, styleAI.Render(suffix))
	}
	return out
}

// thumbnailLabel shortens a thumbnail reference for display. Inline data
// URLs are not worth printing.
func thumbnailLabel(u string, maxWidth int) string {
	switch {
	case u == "":
		return ""
	case strings.HasPrefix(u, "data:"):
		return "embedded thumbnail"
	}
	return truncate(u, maxWidth)
}
