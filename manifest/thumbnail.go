package manifest

// ThumbnailSource is a thumbnail that must be resolved to a URL on demand,
// e.g. an SDK object that materializes a blob or data URL.
type ThumbnailSource interface {
	ThumbnailURL() (string, error)
}

// ThumbnailURL returns the URL of node's thumbnail, or fallback. A
// ThumbnailSource accessor is tried first, then a plain "url" field. Errors
// and panics raised by the accessor are swallowed.
func ThumbnailURL(node Value, fallback string) string {
	thumb := node.Get("thumbnail")
	if thumb.IsNil() {
		return fallback
	}

	if src, ok := thumb.Raw().(ThumbnailSource); ok {
		if u, ok := callThumbnail(src); ok && u != "" {
			return u
		}
		return fallback
	}

	if u := thumb.Get("url").String(); u != "" {
		return u
	}
	return fallback
}

func callThumbnail(src ThumbnailSource) (u string, ok bool) {
	defer func() {
		if recover() != nil {
			u, ok = "", false
		}
	}()
	u, err := src.ThumbnailURL()
	if err != nil {
		return "", false
	}
	return u, true
}
