package openapi

import "errors"

// ErrSchemaNotFound is returned when the requested component schema does not
// exist in the document.
var ErrSchemaNotFound = errors.New("openapi: schema not found")
