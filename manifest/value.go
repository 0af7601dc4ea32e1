// Package manifest reads provenance manifests produced by an external SDK.
//
// Manifests arrive as loosely-typed trees whose shape varies across producer
// versions. Every accessor here is total: missing fields, wrong types and
// malformed accessors degrade to zero values instead of failing.
package manifest

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Lister is implemented by iterable collections that are neither slices nor
// maps, such as SDK wrapper types.
type Lister interface {
	Values() []any
}

// Value wraps one node of a manifest tree.
type Value struct {
	v any
}

// Of wraps v. A Value wrapping another Value is flattened.
func Of(v any) Value {
	if inner, ok := v.(Value); ok {
		return inner
	}
	return Value{v: v}
}

// Raw returns the wrapped value.
func (v Value) Raw() any {
	return v.v
}

// IsNil reports whether the value is absent.
func (v Value) IsNil() bool {
	return v.v == nil
}

// Get returns the first key present on an object value. Keys are tried in
// order, so callers list camelCase and snake_case spellings together.
func (v Value) Get(keys ...string) Value {
	m, ok := v.v.(map[string]any)
	if !ok {
		return Value{}
	}
	for _, k := range keys {
		if child, ok := m[k]; ok && child != nil {
			return Of(child)
		}
	}
	return Value{}
}

// Path walks nested object keys. Each segment may list aliases separated by
// "|", e.g. Path("signatureInfo|signature_info", "time").
func (v Value) Path(segments ...string) Value {
	cur := v
	for _, seg := range segments {
		cur = cur.Get(strings.Split(seg, "|")...)
		if cur.IsNil() {
			return cur
		}
	}
	return cur
}

// Index returns element i of the value's list form, or an absent value.
func (v Value) Index(i int) Value {
	items := ToList(v.v)
	if i < 0 || i >= len(items) {
		return Value{}
	}
	return Of(items[i])
}

// List returns the value's elements as Values. See ToList.
func (v Value) List() []Value {
	items := ToList(v.v)
	out := make([]Value, len(items))
	for i, it := range items {
		out[i] = Of(it)
	}
	return out
}

// String returns the value as text. Strings are returned as-is, numbers and
// booleans are formatted, everything else yields "".
func (v Value) String() string {
	switch s := v.v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case fmt.Stringer:
		return s.String()
	default:
		return ""
	}
}

// Lower returns String lower-cased.
func (v Value) Lower() string {
	return strings.ToLower(v.String())
}

// Truthy reports whether the value is present and not an empty string.
func (v Value) Truthy() bool {
	switch s := v.v.(type) {
	case nil:
		return false
	case string:
		return s != ""
	case bool:
		return s
	default:
		return true
	}
}

// ToList turns any collection into an ordered slice. Slices keep their
// order, Listers yield their values, maps yield their values with numeric
// keys first (ascending) and remaining keys sorted. Nil and scalars yield an
// empty slice. ToList never panics.
func ToList(v any) (out []any) {
	defer func() {
		if recover() != nil {
			out = []any{}
		}
	}()

	switch c := v.(type) {
	case nil:
		return []any{}
	case Value:
		return ToList(c.v)
	case []any:
		return c
	case Lister:
		vals := c.Values()
		if vals == nil {
			return []any{}
		}
		return vals
	case map[string]any:
		return mapValues(c)
	case string:
		return []any{}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return []any{}
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return mapValues(m)
	default:
		return []any{}
	}
}

func mapValues(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iErr := strconv.ParseUint(keys[i], 10, 32)
		nj, jErr := strconv.ParseUint(keys[j], 10, 32)
		switch {
		case iErr == nil && jErr == nil:
			return ni < nj
		case iErr == nil:
			return true
		case jErr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}
