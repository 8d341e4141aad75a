// Package openapi derives binding configuration from an OpenAPI component
// schema: a normalizer table that coerces form values to the declared
// property types, and the property defaults as initial state.
//
// Documents are parsed with kin-openapi; callers only see the Schema
// wrapper.
package openapi
