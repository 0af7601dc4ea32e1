// Package provenance turns an asset into the ordered chain of cards shown by
// the Content Credentials viewer: the asset itself, its ingredients and one
// further level of their ingredients.
package provenance

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sonnes/pramaan/core"
	"github.com/sonnes/pramaan/manifest"
	"github.com/sonnes/pramaan/sdk"
)

// MaxDepth is the deepest ingredient level walked: 1 for parents, 2 for
// grandparents. Deeper chains are never visited.
const MaxDepth = 2

// Observer is told about every state a run enters.
type Observer func(runID string, state core.State)

// Walker builds provenance graphs. A Walker holds no per-run state and may
// be used from several goroutines.
type Walker struct {
	Fetcher    Fetcher
	Runtime    *sdk.Runtime
	Summarizer *manifest.Summarizer
	Observer   Observer
	Logger     *log.Logger
}

// New returns a Walker with the default summarizer.
func New(f Fetcher, rt *sdk.Runtime) *Walker {
	return &Walker{Fetcher: f, Runtime: rt, Summarizer: manifest.NewSummarizer()}
}

// Walk runs the viewer once for assetURL. It never fails: errors are
// reported through the graph's Status and Error, with no rows.
func (w *Walker) Walk(ctx context.Context, assetURL string) (g *core.Graph) {
	g = &core.Graph{
		RunID:    uuid.NewString(),
		AssetURL: assetURL,
		State:    core.StateIdle,
		Rows:     []core.Row{},
	}
	logger := w.logger().With("run", g.RunID, "asset", assetURL)

	defer func() {
		if r := recover(); r != nil {
			w.fail(g, logger, &Error{Kind: ErrUnexpected, Err: fmt.Errorf("%v", r)})
		}
	}()

	w.enter(g, logger, core.StateLoading)

	store, err := w.load(ctx, assetURL)
	if err != nil {
		w.fail(g, logger, err)
		return g
	}

	w.enter(g, logger, core.StateRendering)
	g.Rows = w.rows(store, assetURL)
	if store.HasActive() {
		g.Raw = store.ActiveManifest.Raw()
	}
	g.Status = core.StatusOK
	w.enter(g, logger, core.StateDone)
	logger.Info("walked provenance", "rows", len(g.Rows))
	return g
}

// load fetches the asset and reads its manifest store.
func (w *Walker) load(ctx context.Context, assetURL string) (*sdk.Store, error) {
	if assetURL == "" {
		return nil, &Error{Kind: ErrAssetMissing, Err: errNoImageToShow}
	}
	if w.Fetcher == nil {
		return nil, &Error{Kind: ErrAssetFetch, Err: fmt.Errorf("no fetcher configured")}
	}
	data, err := w.Fetcher.Fetch(ctx, assetURL)
	if err != nil {
		return nil, classify(ErrAssetFetch, err)
	}

	if w.Runtime == nil {
		return nil, &Error{Kind: ErrSDKInit, Err: fmt.Errorf("no provenance toolkit configured")}
	}
	reader, err := w.Runtime.Init(ctx)
	if err != nil {
		return nil, classify(ErrSDKInit, err)
	}

	store, err := reader.Read(ctx, data)
	if err != nil {
		return nil, classify(ErrManifestRead, err)
	}
	if store == nil {
		store = &sdk.Store{}
	}
	return store, nil
}

// rows lays out the chain: the asset, then each ingredient preceded by a
// connector.
func (w *Walker) rows(store *sdk.Store, assetURL string) []core.Row {
	thumb := manifest.ThumbnailURL(store.Source, assetURL)

	var root core.Record
	if store.HasActive() {
		root = w.summarizer().Summarize(store.ActiveManifest, assetURL)
		root.ThumbnailURL = thumb
	} else {
		title := core.FirstNonEmpty(core.FileNameFromURL(assetURL), "Image")
		root = core.Placeholder(title, thumb, core.NoteNoCredentials)
	}

	rows := []core.Row{{Record: root}}
	return w.ingredients(rows, store.ActiveManifest, 1, thumb)
}

// ingredients appends the rows for m's ingredients at depth. Below
// MaxDepth every ingredient is shown; at MaxDepth siblings after the first
// collapse into a single placeholder.
func (w *Walker) ingredients(rows []core.Row, m manifest.Value, depth int, fallbackThumb string) []core.Row {
	if depth > MaxDepth {
		return rows
	}
	ings := m.Get("ingredients").List()
	if depth == MaxDepth && len(ings) > 1 {
		rows = w.ingredient(rows, ings[0], depth, fallbackThumb)
		rest := ings[1]
		rows = append(rows, core.Row{
			Record: core.Placeholder(
				ingredientTitle(rest),
				manifest.ThumbnailURL(rest, fallbackThumb),
				fmt.Sprintf("+ %d more source(s)", len(ings)-1),
			),
			Connector: true,
			Depth:     depth,
		})
		return rows
	}
	for _, ing := range ings {
		rows = w.ingredient(rows, ing, depth, fallbackThumb)
	}
	return rows
}

func (w *Walker) ingredient(rows []core.Row, ing manifest.Value, depth int, fallbackThumb string) []core.Row {
	thumb := manifest.ThumbnailURL(ing, fallbackThumb)
	title := ingredientTitle(ing)

	nested := ing.Get("manifest")
	if !isManifest(nested) {
		return append(rows, core.Row{
			Record:    core.Placeholder(title, thumb, core.NoteNoCredential),
			Connector: true,
			Depth:     depth,
		})
	}

	rec := w.summarizer().Summarize(nested, title)
	rec.Title = title
	rec.ThumbnailURL = thumb
	rows = append(rows, core.Row{Record: rec, Connector: true, Depth: depth})
	return w.ingredients(rows, nested, depth+1, thumb)
}

func ingredientTitle(ing manifest.Value) string {
	return core.FirstNonEmpty(
		ing.Path("manifest", "title").String(),
		ing.Get("title").String(),
		"Source",
	)
}

// isManifest reports whether v holds a manifest object rather than nothing
// or an unresolved reference.
func isManifest(v manifest.Value) bool {
	switch v.Raw().(type) {
	case nil, string, bool, float64, int, int64:
		return false
	}
	return true
}

func (w *Walker) enter(g *core.Graph, logger *log.Logger, s core.State) {
	g.State = s
	logger.Debug("state", "state", s)
	if w.Observer != nil {
		w.Observer(g.RunID, s)
	}
}

func (w *Walker) fail(g *core.Graph, logger *log.Logger, err error) {
	g.Rows = []core.Row{}
	g.Raw = nil
	g.Status = core.StatusError
	g.Error = err.Error()
	logger.Warn("walk failed", "kind", KindOf(err), "err", err)
	w.enter(g, logger, core.StateErrored)
}

func (w *Walker) summarizer() *manifest.Summarizer {
	if w.Summarizer == nil {
		return manifest.NewSummarizer()
	}
	return w.Summarizer
}

func (w *Walker) logger() *log.Logger {
	if w.Logger == nil {
		return log.Default()
	}
	return w.Logger
}
