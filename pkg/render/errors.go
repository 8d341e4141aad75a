package render

import "errors"

// ErrNoDocument is returned when there is nothing to render.
var ErrNoDocument = errors.New("render: document is required")
