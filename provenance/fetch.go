package provenance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes caps how much of an asset is read into memory.
const DefaultMaxBytes = 64 << 20

// Fetcher loads the bytes of an asset.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, src string) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, src string) ([]byte, error) {
	return f(ctx, src)
}

// HTTPFetcher downloads assets, bypassing intermediate caches.
type HTTPFetcher struct {
	Client   *http.Client // nil means http.DefaultClient
	MaxBytes int64        // zero means DefaultMaxBytes
	// Allow, when set, must accept the URL of the request and of every
	// redirect it follows. A refused URL is a *FetchError with status 403.
	Allow func(*url.URL) bool
}

// Fetch implements Fetcher. A non-2xx status is a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if err := f.check(req.URL); err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client().Do(req)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode}
	}
	return readLimited(resp.Body, f.MaxBytes)
}

func (f *HTTPFetcher) check(u *url.URL) error {
	if f.Allow == nil || f.Allow(u) {
		return nil
	}
	return &FetchError{Status: http.StatusForbidden, Err: fmt.Errorf("origin %s://%s is not allowed", u.Scheme, u.Host)}
}

func (f *HTTPFetcher) client() *http.Client {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	if f.Allow == nil {
		return client
	}

	c := *client
	next := client.CheckRedirect
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if err := f.check(req.URL); err != nil {
			return err
		}
		if next != nil {
			return next(req, via)
		}
		if len(via) >= 10 {
			return errors.New("stopped after 10 redirects")
		}
		return nil
	}
	return &c
}

// AllowOrigins returns an HTTPFetcher.Allow func accepting only URLs whose
// scheme and host match one of origins, e.g. "https://cdn.example.com".
// With no origins every URL is refused.
func AllowOrigins(origins ...string) func(*url.URL) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		u, err := url.Parse(strings.TrimSpace(o))
		if err != nil || u.Host == "" {
			continue
		}
		allowed[strings.ToLower(u.Scheme+"://"+u.Host)] = true
	}
	return func(u *url.URL) bool {
		return allowed[strings.ToLower(u.Scheme+"://"+u.Host)]
	}
}

// FileFetcher reads assets from the local filesystem. src may be a plain
// path or a file:// URL.
type FileFetcher struct {
	// Root, when set, confines reads to this directory: src is treated as a
	// URL path, cleaned and joined to Root.
	Root string
	// Prefix is trimmed from the URL path before it is joined to Root.
	Prefix   string
	MaxBytes int64
}

// Fetch implements Fetcher. A missing file is a *FetchError with status 404.
func (f *FileFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	p, err := f.resolve(src)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(p)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, &FetchError{Status: http.StatusNotFound, Err: err}
		case errors.Is(err, fs.ErrPermission):
			return nil, &FetchError{Status: http.StatusForbidden, Err: err}
		}
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &FetchError{Status: http.StatusNotFound, Err: fmt.Errorf("%s is a directory", p)}
	}
	return readLimited(file, f.MaxBytes)
}

func (f *FileFetcher) resolve(src string) (string, error) {
	if strings.HasPrefix(src, "file://") {
		u, err := url.Parse(src)
		if err != nil {
			return "", fmt.Errorf("parse %q: %w", src, err)
		}
		src = u.Path
	} else if f.Root != "" {
		u, err := url.Parse(src)
		if err != nil {
			return "", fmt.Errorf("parse %q: %w", src, err)
		}
		src = u.Path
	}
	if f.Root == "" {
		return src, nil
	}

	clean := path.Clean("/" + src)
	if f.Prefix != "" {
		prefix := "/" + strings.Trim(f.Prefix, "/") + "/"
		if !strings.HasPrefix(clean, prefix) {
			return "", &FetchError{Status: http.StatusNotFound, Err: fmt.Errorf("%s is outside %s", clean, prefix)}
		}
		clean = "/" + strings.TrimPrefix(clean, prefix)
	}
	return filepath.Join(f.Root, filepath.FromSlash(clean)), nil
}

// MultiFetcher sends http and https sources to HTTP and everything else to
// File.
type MultiFetcher struct {
	HTTP Fetcher
	File Fetcher
}

// NewMultiFetcher returns a MultiFetcher over a default HTTPFetcher and an
// unconfined FileFetcher.
func NewMultiFetcher() *MultiFetcher {
	return &MultiFetcher{HTTP: &HTTPFetcher{}, File: &FileFetcher{}}
}

// Fetch implements Fetcher.
func (m *MultiFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if m.HTTP == nil {
			return nil, fmt.Errorf("no fetcher for %s", src)
		}
		return m.HTTP.Fetch(ctx, src)
	}
	if m.File == nil {
		return nil, fmt.Errorf("no fetcher for %s", src)
	}
	return m.File.Fetch(ctx, src)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read asset: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("asset exceeds %d bytes", limit)
	}
	return data, nil
}
