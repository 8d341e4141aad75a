package xbind

import (
	"log/slog"

	"github.com/goliatone/go-xbind/pkg/binder"
)

// Option customises a Context.
type Option func(*Context)

// WithLogger injects the logger used for binding diagnostics. The default
// discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegistry replaces the element adapter registry, e.g. to register
// adapters for custom elements ahead of the built-ins.
func WithRegistry(registry *binder.Registry) Option {
	return func(c *Context) {
		c.registry = registry
	}
}

// WithPrefix changes the directive attribute prefix (default "xb-").
func WithPrefix(prefix string) Option {
	return func(c *Context) {
		c.prefix = prefix
	}
}

// WithNormalizers registers value normalizers. Entries supplied through
// Params on the first Build are merged on top.
func WithNormalizers(normalizers binder.Normalizers) Option {
	return func(c *Context) {
		c.normalizers = c.normalizers.Merge(normalizers)
	}
}
