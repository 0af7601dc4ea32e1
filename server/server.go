// Package server serves the article site and the Content Credentials viewer
// over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/pramaan/articles"
	"github.com/sonnes/pramaan/core"
	"github.com/sonnes/pramaan/provenance"
	htmlrender "github.com/sonnes/pramaan/render/html"
	jsonrender "github.com/sonnes/pramaan/render/json"
)

// MsgNoArticles is shown when the catalog is missing, empty or unreadable.
const MsgNoArticles = "No articles found in articles.json."

// AssetsPrefix is the URL path the asset directory is served under.
const AssetsPrefix = "/assets/"

// Server serves article pages, their assets and the viewer fragment.
type Server struct {
	// ArticlesPath is the catalog file. It is re-read on every page so edits
	// show up without a restart.
	ArticlesPath string
	// AssetsDir is served under AssetsPrefix.
	AssetsDir string
	// Walker builds the provenance chain for /credentials.
	Walker *provenance.Walker
	// Renderer renders pages and the viewer fragment.
	Renderer *htmlrender.Renderer
	// Transformers run over every graph before it is rendered.
	Transformers []core.Transformer
	// Port is the TCP port to listen on.
	Port int
	// Logger defaults to the package-level charmbracelet logger.
	Logger *log.Logger

	mu      sync.Mutex
	results map[string]*core.Graph
}

// Handler returns the site's routes. A nil Renderer is replaced with the
// default one.
func (s *Server) Handler() http.Handler {
	if s.Renderer == nil {
		s.Renderer = htmlrender.New()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /credentials", s.handleCredentials)
	mux.HandleFunc("GET /credentials.json", s.handleCredentialsJSON)
	mux.HandleFunc("GET /articles.json", s.handleCatalog)
	if s.AssetsDir != "" {
		mux.Handle("GET "+AssetsPrefix, http.StripPrefix(AssetsPrefix, http.FileServer(http.Dir(s.AssetsDir))))
	}
	mux.HandleFunc("GET /", s.handlePage)
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger().Info("serving", "addr", "http://localhost"+srv.Addr, "articles", s.ArticlesPath, "assets", s.AssetsDir)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Last returns the most recently finished graph for src. Concurrent walks
// of the same asset are not fenced; the last to finish wins.
func (s *Server) Last(src string) (*core.Graph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.results[src]
	return g, ok
}

func (s *Server) remember(src string, g *core.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		s.results = make(map[string]*core.Graph)
	}
	s.results[src] = g
}

func (s *Server) handlePage(w http.ResponseWriter, req *http.Request) {
	renderer := s.Renderer
	catalog, err := articles.ReadFile(s.ArticlesPath)
	if err != nil {
		s.logger().Warn("read articles", "path", s.ArticlesPath, "err", err)
	}
	if err != nil || catalog.Len() == 0 {
		s.writePage(w, http.StatusServiceUnavailable, func(buf *bytes.Buffer) error {
			return renderer.RenderSiteError(buf, MsgNoArticles)
		})
		return
	}

	id := articleID(req)
	a, ok := catalog.Select(id)
	if !ok {
		s.writePage(w, http.StatusNotFound, func(buf *bytes.Buffer) error {
			return renderer.RenderNotFound(buf, id, catalog.Articles)
		})
		return
	}

	related := catalog.Related(a.ID, articles.MaxRelated)
	s.writePage(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return renderer.RenderArticle(buf, a, related, catalog.Articles)
	})
}

func (s *Server) handleCredentials(w http.ResponseWriter, req *http.Request) {
	g := s.walk(req)
	s.writePage(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.Renderer.RenderFragment(buf, g)
	})
}

func (s *Server) handleCredentialsJSON(w http.ResponseWriter, req *http.Request) {
	g := s.walk(req)
	var buf bytes.Buffer
	if err := (&jsonrender.Renderer{}).Render(&buf, g); err != nil {
		s.logger().Error("render credentials json", "src", g.AssetURL, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) handleCatalog(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, req, s.ArticlesPath)
}

// walk runs the viewer for the src query parameter.
func (s *Server) walk(req *http.Request) *core.Graph {
	src := req.URL.Query().Get("src")
	g := s.Walker.Walk(req.Context(), src)
	if err := core.Chain(g, s.Transformers...); err != nil {
		s.logger().Error("transform graph", "src", src, "err", err)
		g = &core.Graph{
			RunID:    g.RunID,
			AssetURL: src,
			State:    core.StateErrored,
			Status:   core.StatusError,
			Error:    err.Error(),
			Rows:     []core.Row{},
		}
	}
	s.remember(src, g)
	return g
}

// writePage renders into a buffer first so a template failure turns into a
// clean 500 instead of a truncated page.
func (s *Server) writePage(w http.ResponseWriter, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.logger().Error("render page", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// articleID reads the requested article from ?id=, falling back to the
// last path segment unless it names an HTML file.
func articleID(req *http.Request) string {
	if id := req.URL.Query().Get("id"); id != "" {
		return id
	}
	last := path.Base(req.URL.Path)
	if last == "/" || last == "." {
		return ""
	}
	lower := strings.ToLower(last)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return ""
	}
	return last
}

func (s *Server) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
