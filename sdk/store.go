package sdk

import (
	"encoding/json"
	"fmt"

	"github.com/sonnes/pramaan/manifest"
)

// maxResolveDepth bounds label resolution in label-keyed stores. Chains
// deeper than this are left unresolved; the walker never looks past two
// levels anyway.
const maxResolveDepth = 8

// DecodeStore parses a manifest store exported as JSON. Two layouts are
// understood:
//
//   - nested, as produced by the JavaScript toolkit: {"manifestStore":
//     {"activeManifest": {...}}, "source": {...}}, where each ingredient
//     already carries its "manifest";
//   - label-keyed, as produced by c2patool: {"active_manifest": "<label>",
//     "manifests": {"<label>": {...}}}, where ingredients reference their
//     manifest by label. These references are resolved into nested
//     "manifest" objects.
func DecodeStore(data []byte) (*Store, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode manifest store: %w", err)
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode manifest store: expected object, got %T", doc)
	}
	return storeFromDoc(manifest.Of(root)), nil
}

func storeFromDoc(root manifest.Value) *Store {
	s := &Store{
		Source:           root.Get("source"),
		ValidationStatus: validationCodes(root),
	}

	// Nested layout, possibly wrapped in "manifestStore".
	ms := root.Get("manifestStore", "manifest_store")
	if ms.IsNil() {
		ms = root
	}
	if active := ms.Get("activeManifest"); !active.IsNil() {
		if _, isObj := active.Raw().(map[string]any); isObj {
			s.ActiveManifest = active
			if len(s.ValidationStatus) == 0 {
				s.ValidationStatus = validationCodes(ms)
			}
			return s
		}
	}

	// Label-keyed layout.
	manifests, _ := ms.Get("manifests").Raw().(map[string]any)
	label := ms.Get("active_manifest", "activeManifest").String()
	if label == "" || manifests == nil {
		return s
	}
	r := &resolver{manifests: manifests}
	if active := r.resolve(label, 0, map[string]bool{}); active != nil {
		s.ActiveManifest = manifest.Of(active)
	}
	return s
}

type resolver struct {
	manifests map[string]any
}

// resolve returns a copy of the labelled manifest whose ingredients carry
// their resolved manifest under "manifest". visiting guards against cycles.
func (r *resolver) resolve(label string, depth int, visiting map[string]bool) map[string]any {
	src, ok := r.manifests[label].(map[string]any)
	if !ok || visiting[label] {
		return nil
	}
	visiting[label] = true
	defer delete(visiting, label)

	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	if _, ok := out["label"]; !ok {
		out["label"] = label
	}

	ingredients := manifest.ToList(src["ingredients"])
	if len(ingredients) == 0 {
		return out
	}
	resolved := make([]any, len(ingredients))
	for i, ing := range ingredients {
		resolved[i] = r.resolveIngredient(ing, depth, visiting)
	}
	out["ingredients"] = resolved
	return out
}

func (r *resolver) resolveIngredient(ing any, depth int, visiting map[string]bool) any {
	m, ok := ing.(map[string]any)
	if !ok {
		return ing
	}
	if _, nested := m["manifest"].(map[string]any); nested {
		return m
	}

	// c2patool names the reference "active_manifest"; older releases used
	// "manifest" with a label string.
	ref := manifest.Of(m).Get("active_manifest", "activeManifest", "manifest").String()
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	delete(out, "manifest")
	if ref == "" || depth+1 >= maxResolveDepth {
		return out
	}
	if nested := r.resolve(ref, depth+1, visiting); nested != nil {
		out["manifest"] = nested
	}
	return out
}

func validationCodes(v manifest.Value) []string {
	var codes []string
	for _, st := range v.Get("validation_status", "validationStatus").List() {
		if code := st.Get("code").String(); code != "" {
			codes = append(codes, code)
		} else if s := st.String(); s != "" {
			codes = append(codes, s)
		}
	}
	return codes
}
