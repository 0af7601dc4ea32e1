package html

import (
	"html/template"
	"net/url"
	"strings"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"joinActions": joinActions,
		"thumbURL":    thumbURL,
	}
}

// joinActions renders a record's actions as one line.
func joinActions(actions []string) string {
	return strings.Join(actions, " -> ")
}

// thumbURL admits the URL schemes thumbnails arrive in. Toolkits hand out
// blob: and data:image/ URLs, which html/template would otherwise reject.
func thumbURL(u string) template.URL {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "data:image/") {
		return template.URL(u)
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https", "blob", "file":
		return template.URL(u)
	}
	return ""
}
