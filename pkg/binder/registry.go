package binder

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cast"

	"github.com/goliatone/go-xbind/pkg/dom"
	"github.com/goliatone/go-xbind/pkg/toggler"
)

// Built-in adapter identifiers, in priority order.
const (
	AdapterBooleanToggle   = "boolean-toggle"
	AdapterValueField      = "value-field"
	AdapterAttributeMirror = "attribute-mirror"
	AdapterTextContent     = "text-content"
)

// DefaultAffectToAttr names the attribute the attribute-mirror adapter reads
// its target attribute name from.
const DefaultAffectToAttr = "xb-affect-to"

// Accessor bridges a state field to an element.
type Accessor struct {
	Get func() any
	Set func(v any)
}

// Matcher decides whether an adapter handles el. It is the tree's matcher so
// dom.IsTag and dom.HasAttr plug in directly.
type Matcher = dom.Matcher

// Factory builds the accessor pair for el. normalize is Identity when no
// normalizer is registered for the field.
type Factory func(el dom.Element, normalize Normalizer) Accessor

// Adapter is one (predicate, factory) capability.
type Adapter struct {
	Name  string
	Match Matcher
	New   Factory
	// CommitNormalizes marks adapters for user-editable fields: when a
	// normalizer is registered the binding re-applies it on every change event.
	CommitNormalizes bool
}

type rule struct {
	adapter  Adapter
	priority int
	order    int
}

// Option customises a Registry.
type Option func(*Registry)

// WithAffectToAttr overrides the attribute read by the attribute-mirror
// adapter.
func WithAffectToAttr(name string) Option {
	return func(r *Registry) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.affectTo = trimmed
		}
	}
}

// Registry selects adapters for elements. Higher priority wins; ties fall back
// to registration order. The text-content fallback matches every element, so
// Select always succeeds on a registry built by NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	rules    []rule
	affectTo string
}

// NewRegistry constructs a registry with the built-in adapters registered.
func NewRegistry(options ...Option) *Registry {
	reg := &Registry{affectTo: DefaultAffectToAttr}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	reg.registerBuiltins()
	return reg
}

// Register adds an adapter with the provided priority. Built-ins use 400,
// 300, 200 and math.MinInt for the fallback.
func (r *Registry) Register(adapter Adapter, priority int) {
	if r == nil || adapter.Match == nil || adapter.New == nil {
		return
	}
	adapter.Name = strings.TrimSpace(adapter.Name)
	if adapter.Name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		adapter:  adapter,
		priority: priority,
		order:    len(r.rules),
	})
}

// Select returns the first adapter matching el in priority order.
func (r *Registry) Select(el dom.Element) (Adapter, bool) {
	if r == nil || el == nil {
		return Adapter{}, false
	}
	rules := r.ordered()
	for _, entry := range rules {
		if entry.adapter.Match(el) {
			return entry.adapter, true
		}
	}
	return Adapter{}, false
}

// Names lists adapter names in selection order.
func (r *Registry) Names() []string {
	rules := r.ordered()
	names := make([]string, 0, len(rules))
	for _, entry := range rules {
		names = append(names, entry.adapter.Name)
	}
	return names
}

func (r *Registry) ordered() []rule {
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	return rules
}

// AffectToAttr reports the attribute read by the attribute-mirror adapter.
func (r *Registry) AffectToAttr() string {
	return r.affectTo
}

func (r *Registry) registerBuiltins() {
	r.Register(Adapter{
		Name:  AdapterBooleanToggle,
		Match: isCheckbox,
		New: func(el dom.Element, _ Normalizer) Accessor {
			return Accessor{
				Get: func() any { return el.Checked() },
				Set: func(v any) { el.SetChecked(toggler.Truthy(v)) },
			}
		},
	}, 400)

	r.Register(Adapter{
		Name:  AdapterValueField,
		Match: dom.IsTag("input", "select", "textarea"),
		New: func(el dom.Element, normalize Normalizer) Accessor {
			return Accessor{
				Get: func() any { return normalize(el.Value()) },
				Set: func(v any) { el.SetValue(cast.ToString(normalize(v))) },
			}
		},
		CommitNormalizes: true,
	}, 300)

	affectTo := r.affectTo
	r.Register(Adapter{
		Name:  AdapterAttributeMirror,
		Match: dom.HasAttr(affectTo),
		New: func(el dom.Element, _ Normalizer) Accessor {
			return Accessor{
				Get: func() any {
					name, _ := el.Attr(affectTo)
					value, ok := el.Attr(name)
					if !ok {
						return nil
					}
					return value
				},
				Set: func(v any) {
					name, _ := el.Attr(affectTo)
					if name == "" {
						return
					}
					switch typed := v.(type) {
					case nil:
						el.RemoveAttr(name)
					case bool:
						if typed {
							el.SetAttr(name, "")
						} else {
							el.RemoveAttr(name)
						}
					default:
						el.SetAttr(name, cast.ToString(v))
					}
				},
			}
		},
	}, 200)

	r.Register(Adapter{
		Name:  AdapterTextContent,
		Match: func(dom.Element) bool { return true },
		New: func(el dom.Element, _ Normalizer) Accessor {
			return Accessor{
				Get: func() any { return el.Text() },
				Set: func(v any) { el.SetText(cast.ToString(v)) },
			}
		},
	}, math.MinInt)
}

func isCheckbox(el dom.Element) bool {
	if el.Tag() != "input" {
		return false
	}
	kind, _ := el.Attr("type")
	return strings.EqualFold(strings.TrimSpace(kind), "checkbox")
}
