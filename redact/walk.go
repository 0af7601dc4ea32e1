package redact

// maxWalkDepth bounds recursion into raw manifests; ingredient chains nest
// manifests inside manifests.
const maxWalkDepth = 32

// walkAny returns a copy of v with fn applied to every string leaf. When
// replace is non-nil and claims a map key, that key's whole value is
// swapped for the returned string.
func walkAny(v any, fn func(string) string, replace func(key string) (string, bool)) any {
	return walkDepth(v, fn, replace, 0)
}

func walkDepth(v any, fn func(string) string, replace func(string) (string, bool), depth int) any {
	if depth > maxWalkDepth {
		return v
	}
	switch val := v.(type) {
	case string:
		return fn(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if replace != nil {
				if s, ok := replace(k); ok {
					out[k] = s
					continue
				}
			}
			out[k] = walkDepth(child, fn, replace, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = walkDepth(child, fn, replace, depth+1)
		}
		return out
	default:
		return v
	}
}
