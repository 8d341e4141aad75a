package openapi

import (
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-xbind/pkg/binder"
)

// Normalizers builds a normalizer table from the properties of schema,
// keyed by property name. Nested object properties and the properties of
// array items are included; the shallowest declaration of a name wins.
//
// Values that cannot be coerced to the declared type pass through unchanged
// so interim user input is never lost.
func Normalizers(schema Schema) binder.Normalizers {
	out := make(binder.Normalizers)
	queue := []Schema{schema}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.Items != nil {
			queue = append(queue, *current.Items)
		}
		for _, name := range sortedNames(current.Properties) {
			property := current.Properties[name]
			if _, exists := out[name]; !exists {
				if fn := normalizerFor(property); fn != nil {
					out[name] = fn
				}
			}
			if property.Type == "object" || property.Type == "array" {
				queue = append(queue, property)
			}
		}
	}
	return out
}

func normalizerFor(property Schema) binder.Normalizer {
	var steps []binder.Normalizer
	for _, op := range property.Normalize {
		switch op {
		case "trim":
			steps = append(steps, stringStep(strings.TrimSpace))
		case "lower":
			steps = append(steps, stringStep(strings.ToLower))
		case "upper":
			steps = append(steps, stringStep(strings.ToUpper))
		}
	}
	switch property.Type {
	case "integer":
		steps = append(steps, coerce(func(v any) (any, error) { return cast.ToInt64E(v) }))
	case "number":
		steps = append(steps, coerce(func(v any) (any, error) { return cast.ToFloat64E(v) }))
	case "boolean":
		steps = append(steps, coerce(func(v any) (any, error) { return cast.ToBoolE(v) }))
	}
	if len(steps) == 0 {
		return nil
	}
	return func(v any) any {
		for _, step := range steps {
			v = step(v)
		}
		return v
	}
}

func stringStep(fn func(string) string) binder.Normalizer {
	return func(v any) any {
		if s, ok := v.(string); ok {
			return fn(s)
		}
		return v
	}
}

func coerce(fn func(any) (any, error)) binder.Normalizer {
	return func(v any) any {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return v
		}
		out, err := fn(v)
		if err != nil {
			return v
		}
		return out
	}
}

// Defaults collects the declared property defaults of schema as a state
// map. Object properties nest; array properties are skipped because the
// deep-merge rule cannot create list entries.
func Defaults(schema Schema) map[string]any {
	out := make(map[string]any)
	for _, name := range sortedNames(schema.Properties) {
		property := schema.Properties[name]
		switch property.Type {
		case "array":
			continue
		case "object":
			if nested := Defaults(property); len(nested) > 0 {
				out[name] = nested
			}
			continue
		}
		if property.Default != nil {
			out[name] = property.Default
		}
	}
	return out
}

func sortedNames(properties map[string]Schema) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
