// Package articles manages the site's article catalog (articles.json): a JSON
// array of stories in display order.
package articles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sonnes/pramaan/core"
)

// MaxRelated is the most related stories shown under an article.
const MaxRelated = 4

// Catalog holds the articles in file order. The first article is the
// default page.
type Catalog struct {
	Articles []core.Article
}

// ReadFile reads a catalog from disk. Returns an empty Catalog if the file
// does not exist.
func ReadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Catalog{}, nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a catalog document. Anything other than a JSON array is an
// error.
func Parse(data []byte) (*Catalog, error) {
	var list []core.Article
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse articles: %w", err)
	}
	return &Catalog{Articles: list}, nil
}

// Len returns the number of articles.
func (c *Catalog) Len() int {
	return len(c.Articles)
}

// Find returns the article with the given id.
func (c *Catalog) Find(id string) (core.Article, bool) {
	if i := c.index(id); i >= 0 {
		return c.Articles[i], true
	}
	return core.Article{}, false
}

// Select resolves the article for a page request. An empty id selects the
// first article; any other id must match exactly.
func (c *Catalog) Select(id string) (core.Article, bool) {
	if len(c.Articles) == 0 {
		return core.Article{}, false
	}
	if id == "" {
		return c.Articles[0], true
	}
	return c.Find(id)
}

// Related returns up to limit articles that follow the current one in circular
// order, skipping it. An unknown or empty id counts as the first article.
// Catalogs with fewer than two articles have nothing to suggest.
func (c *Catalog) Related(id string, limit int) []core.Article {
	n := len(c.Articles)
	if n < 2 || limit <= 0 {
		return nil
	}
	cur := c.index(id)
	if cur < 0 {
		cur = 0
	}
	count := min(limit, n-1)
	out := make([]core.Article, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, c.Articles[(cur+1+i)%n])
	}
	return out
}

func (c *Catalog) index(id string) int {
	if id == "" {
		return -1
	}
	for i, a := range c.Articles {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Upsert adds or replaces an article matched by ID. New articles are
// appended so existing page order is kept.
func (c *Catalog) Upsert(a core.Article) {
	if i := c.index(a.ID); i >= 0 {
		c.Articles[i] = a
		return
	}
	c.Articles = append(c.Articles, a)
}

// WriteFile writes the catalog to disk atomically using a temporary file and
// rename, which is safe against concurrent writers.
func (c *Catalog) WriteFile(path string) error {
	list := c.Articles
	if list == nil {
		list = []core.Article{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".articles-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}
