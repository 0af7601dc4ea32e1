package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Article is one story in the site's articles.json. Field names follow the
// file as published; the catalog tolerates a few legacy spellings.
type Article struct {
	ID           string   `json:"article_id"`
	Kicker       string   `json:"kicker,omitempty"`
	Title        string   `json:"title,omitempty"`
	Author       string   `json:"author,omitempty"`
	Posted       string   `json:"posted,omitempty"`
	LastUpdated  string   `json:"last_updated,omitempty"`
	ImagePath    string   `json:"image_path,omitempty"`
	ImageCaption string   `json:"image_caption,omitempty"`
	Content      []string `json:"content,omitempty"`
}

// rawArticle mirrors the on-disk shape, where article_id may be a number,
// content may be a single string and author was once spelled "autor".
type rawArticle struct {
	ID           json.RawMessage `json:"article_id"`
	Kicker       string          `json:"kicker"`
	Title        string          `json:"title"`
	Autor        *string         `json:"autor"`
	Author       *string         `json:"author"`
	Posted       string          `json:"posted"`
	LastUpdated  string          `json:"last_updated"`
	ImagePath    string          `json:"image_path"`
	ImageCaption string          `json:"image_caption"`
	Content      json.RawMessage `json:"content"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Article) UnmarshalJSON(data []byte) error {
	var raw rawArticle
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Article{
		ID:           rawID(raw.ID),
		Kicker:       raw.Kicker,
		Title:        raw.Title,
		Posted:       raw.Posted,
		LastUpdated:  raw.LastUpdated,
		ImagePath:    raw.ImagePath,
		ImageCaption: raw.ImageCaption,
		Content:      rawContent(raw.Content),
	}
	switch {
	case raw.Autor != nil:
		a.Author = *raw.Autor
	case raw.Author != nil:
		a.Author = *raw.Author
	}
	return nil
}

func rawID(msg json.RawMessage) string {
	if len(msg) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(msg, &v); err != nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

func rawContent(msg json.RawMessage) []string {
	if len(msg) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil
	}
	switch c := v.(type) {
	case string:
		return []string{c}
	case []any:
		out := make([]string, 0, len(c))
		for _, p := range c {
			if s, ok := p.(string); ok {
				out = append(out, s)
			} else if p != nil {
				out = append(out, fmt.Sprint(p))
			}
		}
		return out
	default:
		return nil
	}
}

// DisplayTitle returns the article title, or "Article <id>" when it has none.
func (a Article) DisplayTitle() string {
	if a.Title != "" {
		return a.Title
	}
	return "Article " + a.ID
}

// DisplayAuthor returns the byline, or Dash.
func (a Article) DisplayAuthor() string {
	if a.Author != "" {
		return a.Author
	}
	return Dash
}
