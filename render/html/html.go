// Package html renders provenance graphs as the Content Credentials viewer
// markup, and the article pages that host the viewer. Article bodies are
// markdown rendered with goldmark; the raw manifest panel is highlighted
// with goldmark + chroma.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/sonnes/pramaan/core"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

//go:embed templates/*.html
var content embed.FS

// DefaultSiteName is used in document titles when none is configured.
const DefaultSiteName = "News"

// DefaultCredentialsPath is where article pages fetch the viewer fragment.
const DefaultCredentialsPath = "/credentials"

// Renderer renders provenance graphs and article pages.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template

	// SiteName is appended to article document titles.
	SiteName string
	// CredentialsPath is the endpoint the article page's badge loads the
	// viewer fragment from.
	CredentialsPath string
	// ShowManifest adds a collapsible, highlighted dump of the active
	// manifest below the chain.
	ShowManifest bool
}

// New creates an HTML Renderer with goldmark configured for GFM and syntax
// highlighting. Raw HTML inside markdown is not rendered.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
	)

	tmpl := template.Must(
		template.New("page.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)

	return &Renderer{
		md:              md,
		tmpl:            tmpl,
		SiteName:        DefaultSiteName,
		CredentialsPath: DefaultCredentialsPath,
	}
}

// graphData is the template data for the viewer markup.
type graphData struct {
	Graph    *core.Graph
	Manifest template.HTML // highlighted raw manifest, empty when hidden

	// Standalone page only.
	Title   string
	Heading string
}

// Render writes the graph as a complete HTML page to w.
func (r *Renderer) Render(w io.Writer, g *core.Graph) error {
	data, err := r.graphData(g)
	if err != nil {
		return err
	}
	data.Heading = core.FirstNonEmpty(core.FileNameFromURL(g.AssetURL), "Image")
	data.Title = "Content Credentials · " + data.Heading
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}

// RenderFragment writes only the viewer body: the chain of cards, or the
// error message when the walk failed.
func (r *Renderer) RenderFragment(w io.Writer, g *core.Graph) error {
	data, err := r.graphData(g)
	if err != nil {
		return err
	}
	return r.tmpl.ExecuteTemplate(w, "fragment.html", data)
}

// RenderLoading writes the placeholder shown while a walk is in flight.
func (r *Renderer) RenderLoading(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "loading", nil)
}

func (r *Renderer) graphData(g *core.Graph) (graphData, error) {
	data := graphData{Graph: g}
	if r.ShowManifest && g.OK() && g.Raw != nil {
		panel, err := renderManifest(r.md, g.Raw)
		if err != nil {
			return data, fmt.Errorf("render manifest: %w", err)
		}
		data.Manifest = panel
	}
	return data, nil
}
