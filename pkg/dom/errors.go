package dom

import "errors"

// ErrNoBody is returned when a parsed document has no body element.
var ErrNoBody = errors.New("dom: document has no body")
