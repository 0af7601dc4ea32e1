// Package core defines the display model of a provenance chain: the flat
// records the walker produces and every renderer consumes.
package core

// Dash is the placeholder shown for any field that has no value.
const Dash = "—"

// Notes attached to placeholder records.
const (
	NoteNoCredentials = "No Content Credentials"
	NoteNoCredential  = "No Content Credential"
)

// Record is one card in the provenance chain. It owns no reference back to
// the manifest it was built from.
type Record struct {
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Generator    string   `json:"generator"`      // app or device that signed the claim
	Issued       string   `json:"issued"`         // formatted timestamp
	Actions      []string `json:"actions"`        // human-readable action descriptions, first-seen order
	Note         string   `json:"note,omitempty"` // set on placeholder cards
}

// Placeholder returns a record with every field set to Dash, used for assets
// without credentials and for collapsed siblings.
func Placeholder(title, thumbnailURL, note string) Record {
	return Record{
		ThumbnailURL: thumbnailURL,
		Title:        title,
		Author:       Dash,
		Generator:    Dash,
		Issued:       Dash,
		Actions:      []string{},
		Note:         note,
	}
}

// IsPlaceholder reports whether the record carries a note instead of metadata.
func (r Record) IsPlaceholder() bool {
	return r.Note != ""
}

// Row is a record positioned in the chain. Connector is true when an arrow
// precedes the card. Depth is 0 for the current asset, 1 for parents and 2
// for grandparents.
type Row struct {
	Record    Record `json:"record"`
	Connector bool   `json:"connector"`
	Depth     int    `json:"depth"`
}

// Status is the overall outcome of a walk.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// State enumerates the render states of a single viewer run.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateRendering State = "rendering"
	StateDone      State = "done"
	StateErrored   State = "errored"
)

// Graph is the result of one viewer run. On error Rows is empty and Error
// holds the user-facing message (unescaped; renderers escape it).
type Graph struct {
	RunID    string `json:"run_id,omitempty"`
	AssetURL string `json:"asset_url,omitempty"`
	State    State  `json:"state"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
	Rows     []Row  `json:"rows"`

	// Raw is the active manifest as decoded from the SDK, kept for renderers
	// that show it verbatim. Nil when there is none.
	Raw any `json:"-"`
}

// OK reports whether the walk completed without error.
func (g *Graph) OK() bool {
	return g.Status == StatusOK
}

// Connectors returns the number of arrows between rows.
func (g *Graph) Connectors() int {
	n := 0
	for _, r := range g.Rows {
		if r.Connector {
			n++
		}
	}
	return n
}
