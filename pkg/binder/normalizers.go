package binder

import "strings"

// Normalizer coerces a value read from, or written to, a form field.
type Normalizer func(v any) any

// Normalizers is the caller supplied name → function table. Lookups use the
// field's key unless the element names an override.
type Normalizers map[string]Normalizer

// Lookup returns the normalizer registered under name.
func (n Normalizers) Lookup(name string) (Normalizer, bool) {
	if n == nil {
		return nil, false
	}
	fn, ok := n[strings.TrimSpace(name)]
	if !ok || fn == nil {
		return nil, false
	}
	return fn, true
}

// Resolve returns the normalizer registered under name, or Identity.
func (n Normalizers) Resolve(name string) Normalizer {
	if fn, ok := n.Lookup(name); ok {
		return fn
	}
	return Identity
}

// Merge returns a table holding n overlaid with other.
func (n Normalizers) Merge(other Normalizers) Normalizers {
	out := make(Normalizers, len(n)+len(other))
	for name, fn := range n {
		out[name] = fn
	}
	for name, fn := range other {
		out[name] = fn
	}
	return out
}

// Identity passes values through unchanged.
func Identity(v any) any {
	return v
}
