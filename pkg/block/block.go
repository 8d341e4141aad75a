package block

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-xbind/pkg/binder"
	"github.com/goliatone/go-xbind/pkg/dom"
	"github.com/goliatone/go-xbind/pkg/reference"
)

// Binder walks fragments of a tree, binds bind-on elements and installs
// present-if / repeat-for controllers on template elements. A Binder keeps
// track of the directives it installed and is not safe for concurrent use.
type Binder struct {
	logger      *slog.Logger
	registry    *binder.Registry
	normalizers binder.Normalizers
	prefix      string
	attrs       Attributes

	anchors map[dom.Element]*directive
}

// New constructs a Binder.
func New(options ...Option) *Binder {
	b := defaultBinder()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.registry == nil {
		b.registry = binder.NewRegistry(binder.WithAffectToAttr(b.prefix + "affect-to"))
	}
	b.anchors = make(map[dom.Element]*directive)
	return b
}

// Attributes reports the directive attribute names in use.
func (b *Binder) Attributes() Attributes {
	return b.attrs
}

// Block is the result of one binding pass: the elements that received a
// binding or a directive controller, in the order they were bound.
type Block struct {
	elements []dom.Element
}

// Elements returns the bound elements.
func (k *Block) Elements() []dom.Element {
	if k == nil {
		return nil
	}
	return append([]dom.Element(nil), k.elements...)
}

// Destroy tears the block down: every bound element receives
// dom.EventDestroy, last bound first. Directive anchors destroy their
// materialised content before their own field is removed.
func (k *Block) Destroy() {
	if k == nil {
		return
	}
	elements := k.elements
	k.elements = nil
	for i := len(elements) - 1; i >= 0; i-- {
		elements[i].Trigger(dom.EventDestroy, nil)
	}
}

// BindBlock binds every bind-on element found in q under scope, then
// installs a controller on every directive element. Content materialised by
// those controllers is bound recursively with the scope extended by the
// directive's iterator alias.
func (b *Binder) BindBlock(q dom.Queryable, scope reference.Scope) *Block {
	return b.bindBlock(q, scope, "")
}

func (b *Binder) bindBlock(q dom.Queryable, scope reference.Scope, suffix string) *Block {
	block := &Block{}
	if q == nil {
		return block
	}
	for _, el := range q.Query(dom.HasAttr(b.attrs.BindOn)) {
		if b.bindElement(el, scope) {
			block.elements = append(block.elements, el)
		}
	}
	for _, el := range q.Query(dom.HasAttr(b.attrs.PresentIf, b.attrs.RepeatFor)) {
		if b.install(el, scope, suffix) != nil {
			block.elements = append(block.elements, el)
		}
	}
	return block
}

func (b *Binder) bindElement(el dom.Element, scope reference.Scope) bool {
	parsed, ok := reference.ParseBinding(el, b.attrs.BindOn, scope)
	if !ok {
		expression, _ := el.Attr(b.attrs.BindOn)
		b.logger.Debug("bind-on skipped: malformed reference", "tag", el.Tag(), "expression", expression)
		return false
	}
	override, _ := el.Attr(b.attrs.NormalizedBy)
	bound := b.registry.Bind(el, parsed.Target, b.normalizers, strings.TrimSpace(override))
	if bound == nil {
		return false
	}
	b.logger.Debug("element bound", "reference", parsed.Reference, "adapter", bound.Adapter())
	return true
}

// head returns the node that currently leads n in document order: n itself,
// or the first node materialised by the directive anchored at n.
func (b *Binder) head(n dom.Node) dom.Node {
	el, ok := n.AsElement()
	if !ok {
		return n
	}
	d, ok := b.anchors[el]
	if !ok {
		return n
	}
	if first, ok := d.first(); ok {
		return first
	}
	return n
}

// nodeList queries a run of sibling nodes as if it were a fragment.
type nodeList []dom.Node

func (l nodeList) Query(match dom.Matcher) []dom.Element {
	var out []dom.Element
	for _, n := range l {
		el, ok := n.AsElement()
		if !ok {
			continue
		}
		if match == nil || match(el) {
			out = append(out, el)
		}
		out = append(out, el.Query(match)...)
	}
	return out
}

// destroyNodes tears down a materialised subtree bottom-up and detaches it.
func destroyNodes(nodes []dom.Node) {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if el, ok := n.AsElement(); ok {
			descendants := el.Query(nil)
			for j := len(descendants) - 1; j >= 0; j-- {
				descendants[j].Trigger(dom.EventDestroy, nil)
			}
			el.Trigger(dom.EventDestroy, nil)
		}
		n.Remove()
	}
}
