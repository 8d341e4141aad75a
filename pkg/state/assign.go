package state

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Assign deep-merges src onto dst. Scalars overwrite. A composite value
// (map, object, slice) only recurses into a composite already present on dst
// and is dropped otherwise; Assign never creates nested objects or entries.
// Keys are applied in sorted order so accessor side effects are reproducible.
func Assign(dst *Object, src map[string]any) {
	if dst == nil || len(src) == 0 {
		return
	}
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := src[key]
		if !composite(value) {
			dst.Set(key, value)
			continue
		}
		switch target := dst.Get(key).(type) {
		case *Object:
			if fields, ok := asMap(value); ok {
				Assign(target, fields)
			}
		case List:
			if items, ok := value.([]any); ok {
				assignList(target, items)
			}
		}
	}
}

// AssignFrom is Assign for untyped sources: maps and objects merge, anything
// else is ignored.
func AssignFrom(dst *Object, src any) {
	if fields, ok := asMap(src); ok {
		Assign(dst, fields)
	}
}

func assignList(dst List, items []any) {
	for i, item := range items {
		if i >= dst.Len() {
			return
		}
		if fields, ok := asMap(item); ok {
			Assign(dst.At(i), fields)
		}
	}
}

func composite(v any) bool {
	switch v.(type) {
	case map[string]any, *Object, []any:
		return true
	default:
		return false
	}
}

func asMap(v any) (map[string]any, bool) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, true
	case *Object:
		return typed.Snapshot(), true
	default:
		return nil, false
	}
}

// Snapshot reads every enumerable field into plain Go values. Nested objects
// become maps and lists become slices of maps.
func (o *Object) Snapshot() map[string]any {
	out := make(map[string]any)
	if o == nil {
		return out
	}
	for _, key := range o.Keys() {
		out[key] = snapshotValue(o.Get(key))
	}
	return out
}

func snapshotValue(v any) any {
	switch typed := v.(type) {
	case *Object:
		return typed.Snapshot()
	case List:
		items := make([]any, 0, typed.Len())
		for i := 0; i < typed.Len(); i++ {
			items = append(items, typed.At(i).Snapshot())
		}
		return items
	default:
		return v
	}
}

// Decode copies a snapshot of o into out (a pointer to a struct or map).
// Input is weakly typed because element-backed fields read back as strings.
func Decode(o *Object, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("state: new decoder: %w", err)
	}
	if err := decoder.Decode(o.Snapshot()); err != nil {
		return fmt.Errorf("state: decode: %w", err)
	}
	return nil
}
