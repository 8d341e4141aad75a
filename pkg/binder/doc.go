// Package binder bridges state fields to tree elements.
//
// A Registry holds an ordered list of adapters, each a predicate plus an
// accessor factory. Select returns the first adapter whose predicate accepts
// an element; the built-ins, from highest to lowest priority, are:
//
//   - boolean-toggle: checkbox inputs, reads and writes the checked state.
//   - value-field: input, select and textarea, reads and writes the form
//     value through the field's normalizer.
//   - attribute-mirror: elements carrying the affect-to attribute, mirrors the
//     attribute it names.
//   - text-content: any element, mirrors its text.
//
// Bind installs the selected accessor as the property of a resolved target
// field. Callers supply the Normalizers table; a missing entry means values
// pass through unchanged.
package binder
