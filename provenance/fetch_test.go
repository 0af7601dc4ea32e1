package provenance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hero.jpg":
			assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
			w.Write([]byte("jpeg bytes"))
		case "/large.jpg":
			w.Write(make([]byte, 64))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := &HTTPFetcher{Client: srv.Client()}

	data, err := f.Fetch(context.Background(), srv.URL+"/hero.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.jpg")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.Status)
	assert.Equal(t, "Image fetch failed (404)", err.Error())

	small := &HTTPFetcher{Client: srv.Client(), MaxBytes: 16}
	_, err = small.Fetch(context.Background(), srv.URL+"/large.jpg")
	assert.Error(t, err)
}

func TestHTTPFetcherAllow(t *testing.T) {
	var hits atomic.Int32
	offsite := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("internal"))
	}))
	defer offsite.Close()

	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hero.jpg":
			w.Write([]byte("jpeg bytes"))
		case "/bounce.jpg":
			http.Redirect(w, r, offsite.URL+"/metadata", http.StatusFound)
		}
	}))
	defer cdn.Close()

	f := &HTTPFetcher{Allow: AllowOrigins(cdn.URL)}

	data, err := f.Fetch(context.Background(), cdn.URL+"/hero.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	tests := []struct {
		name string
		f    *HTTPFetcher
		src  string
	}{
		{"other origin", f, offsite.URL + "/metadata"},
		{"redirect to other origin", f, cdn.URL + "/bounce.jpg"},
		{"no origins", &HTTPFetcher{Allow: AllowOrigins()}, cdn.URL + "/hero.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.f.Fetch(context.Background(), tt.src)
			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, http.StatusForbidden, fe.Status)
			assert.Equal(t, "Image fetch failed (403)", err.Error())
		})
	}
	assert.Zero(t, hits.Load())
}

func TestAllowOrigins(t *testing.T) {
	allow := AllowOrigins("https://CDN.example.com", "http://localhost:8080", "not a url")

	tests := []struct {
		src  string
		want bool
	}{
		{"https://cdn.example.com/hero.jpg", true},
		{"HTTPS://cdn.example.com/a/b.jpg?x=1", true},
		{"http://cdn.example.com/hero.jpg", false},
		{"https://cdn.example.com:8443/hero.jpg", false},
		{"http://localhost:8080/hero.jpg", true},
		{"http://localhost/hero.jpg", false},
		{"http://169.254.169.254/latest/meta-data", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			u, err := url.Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allow(u))
		})
	}
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "hero.jpg"), []byte("hero"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("secret"), 0o644))

	t.Run("plain path", func(t *testing.T) {
		data, err := (&FileFetcher{}).Fetch(context.Background(), filepath.Join(dir, "images", "hero.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "hero", string(data))
	})

	t.Run("file url", func(t *testing.T) {
		data, err := (&FileFetcher{}).Fetch(context.Background(), "file://"+filepath.ToSlash(filepath.Join(dir, "images", "hero.jpg")))
		require.NoError(t, err)
		assert.Equal(t, "hero", string(data))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := (&FileFetcher{}).Fetch(context.Background(), filepath.Join(dir, "nope.jpg"))
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusNotFound, fe.Status)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := (&FileFetcher{}).Fetch(context.Background(), dir)
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusNotFound, fe.Status)
	})

	rooted := &FileFetcher{Root: dir, Prefix: "/assets/"}
	tests := []struct {
		name   string
		src    string
		want   string
		status int
	}{
		{"prefixed", "/assets/images/hero.jpg", "hero", 0},
		{"query stripped", "/assets/images/hero.jpg?v=2", "hero", 0},
		{"escaped", "/assets/images/%68ero.jpg", "hero", 0},
		{"traversal", "/assets/../../secret.txt", "", http.StatusNotFound},
		{"outside prefix", "/secret.txt", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := rooted.Fetch(context.Background(), tt.src)
			if tt.status != 0 {
				var fe *FetchError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.status, fe.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestMultiFetcher(t *testing.T) {
	var got []string
	record := func(kind string) Fetcher {
		return FetcherFunc(func(ctx context.Context, src string) ([]byte, error) {
			got = append(got, kind+" "+src)
			return nil, nil
		})
	}
	m := &MultiFetcher{HTTP: record("http"), File: record("file")}

	for _, src := range []string{"https://a/x.jpg", "HTTP://a/y.jpg", "/tmp/z.jpg", "file:///tmp/w.jpg"} {
		_, err := m.Fetch(context.Background(), src)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{
		"http https://a/x.jpg",
		"http HTTP://a/y.jpg",
		"file /tmp/z.jpg",
		"file file:///tmp/w.jpg",
	}, got)

	_, err := (&MultiFetcher{}).Fetch(context.Background(), "https://a/x.jpg")
	assert.Error(t, err)
}
