package xbind

import "errors"

var (
	// ErrClosed is returned by Build once the context has been closed.
	ErrClosed = errors.New("xbind: context closed")
	// ErrNoDocument is returned when Build receives a nil document.
	ErrNoDocument = errors.New("xbind: document is required")
	// ErrNotContainer is returned when a push target is not a repeat-for field.
	ErrNotContainer = errors.New("xbind: push target is not a repeat-for container")
)
