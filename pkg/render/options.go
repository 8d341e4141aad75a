package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Options controls an export.
type Options struct {
	// StripPrefix removes attributes starting with the prefix and drops the
	// template elements carrying them. Empty keeps the tree as is.
	StripPrefix string
	// BodyOnly renders the children of <body> instead of the whole document.
	BodyOnly bool
	// Policy sanitises the serialised markup when set.
	Policy *bluemonday.Policy
}

// Option mutates Options.
type Option func(*Options)

// WithStripDirectives drops directive attributes and directive templates
// using prefix (e.g. "xb-").
func WithStripDirectives(prefix string) Option {
	return func(opts *Options) {
		opts.StripPrefix = strings.TrimSpace(prefix)
	}
}

// WithBodyOnly renders the body content only.
func WithBodyOnly() Option {
	return func(opts *Options) {
		opts.BodyOnly = true
	}
}

// WithSanitizer runs the output through policy. A nil policy selects
// DefaultPolicy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(opts *Options) {
		if policy == nil {
			policy = DefaultPolicy()
		}
		opts.Policy = policy
	}
}

var (
	defaultPolicyOnce sync.Once
	defaultPolicy     *bluemonday.Policy
)

// DefaultPolicy is bluemonday's UGC policy extended with the form controls
// and state attributes bound elements use.
func DefaultPolicy() *bluemonday.Policy {
	defaultPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements(
			"form", "fieldset", "legend", "label", "input", "select", "option",
			"textarea", "button", "output", "section", "main", "header", "footer",
		)
		policy.AllowAttrs(
			"type", "name", "value", "checked", "selected", "disabled",
			"placeholder", "for", "id", "multiple", "readonly",
		).Globally()
		defaultPolicy = policy
	})
	return defaultPolicy
}
