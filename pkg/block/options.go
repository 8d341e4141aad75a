package block

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-xbind/internal/logging"
	"github.com/goliatone/go-xbind/pkg/binder"
)

// DefaultPrefix is prepended to every directive attribute name.
const DefaultPrefix = "xb-"

// Attributes names the directive attributes read from the tree.
type Attributes struct {
	BindOn       string
	NormalizedBy string
	PresentIf    string
	RepeatFor    string
	AddSuffixTo  string
}

// AttributesWithPrefix derives the attribute names for prefix.
func AttributesWithPrefix(prefix string) Attributes {
	return Attributes{
		BindOn:       prefix + "bind-on",
		NormalizedBy: prefix + "normalized-by",
		PresentIf:    prefix + "present-if",
		RepeatFor:    prefix + "repeat-for",
		AddSuffixTo:  prefix + "add-suffix-to",
	}
}

// Option customises a Binder.
type Option func(*Binder)

// WithLogger sets the logger used for directive diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithRegistry replaces the element adapter registry.
func WithRegistry(registry *binder.Registry) Option {
	return func(b *Binder) {
		if registry != nil {
			b.registry = registry
		}
	}
}

// WithNormalizers sets the normalizer table consulted by value fields.
func WithNormalizers(normalizers binder.Normalizers) Option {
	return func(b *Binder) {
		b.normalizers = normalizers
	}
}

// WithPrefix changes the directive attribute prefix. The affect-to attribute
// of the default registry follows the prefix; a registry supplied through
// WithRegistry keeps its own.
func WithPrefix(prefix string) Option {
	return func(b *Binder) {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			return
		}
		b.prefix = prefix
		b.attrs = AttributesWithPrefix(prefix)
	}
}

func defaultBinder() *Binder {
	return &Binder{
		logger: logging.NewNop(),
		prefix: DefaultPrefix,
		attrs:  AttributesWithPrefix(DefaultPrefix),
	}
}
