package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const normalizeExtensionKey = "x-normalize"

// Component parses doc and returns the named component schema.
func Component(ctx context.Context, doc Document, name string) (Schema, error) {
	if err := ctx.Err(); err != nil {
		return Schema{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return Schema{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return Schema{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Components == nil {
		return Schema{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	ref, ok := spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return Schema{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	return convertSchema(ref), nil
}

func convertSchema(ref *openapi3.SchemaRef) Schema {
	if ref == nil || ref.Value == nil {
		return Schema{}
	}
	src := ref.Value
	schema := Schema{
		Type:      firstSchemaType(src.Type),
		Format:    src.Format,
		Default:   src.Default,
		Normalize: normalizeOps(src.Extensions[normalizeExtensionKey]),
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items)
		schema.Items = &items
	}
	return schema
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

// normalizeOps accepts either a comma separated string or a list of strings.
func normalizeOps(value any) []string {
	var raw []string
	switch typed := value.(type) {
	case string:
		raw = strings.Split(typed, ",")
	case []any:
		for _, item := range typed {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = typed
	}
	var out []string
	for _, op := range raw {
		if op = strings.ToLower(strings.TrimSpace(op)); op != "" {
			out = append(out, op)
		}
	}
	return out
}
