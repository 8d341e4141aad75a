package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tree owns the wrappers of every html.Node handed out by a document, so the
// same underlying node always maps to the same Element (and its listeners).
type tree struct {
	nodes map[*html.Node]*node
}

func newTree() *tree {
	return &tree{nodes: make(map[*html.Node]*node)}
}

func (t *tree) wrap(n *html.Node) *node {
	if n == nil {
		return nil
	}
	if w, ok := t.nodes[n]; ok {
		return w
	}
	w := &node{t: t, n: n}
	t.nodes[n] = w
	return w
}

func (t *tree) forget(n *html.Node) {
	delete(t.nodes, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.forget(c)
	}
}

// HTMLDocument is a Document backed by golang.org/x/net/html.
type HTMLDocument struct {
	t    *tree
	root *html.Node
}

var _ Document = (*HTMLDocument)(nil)

// Parse reads an HTML document.
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return &HTMLDocument{t: newTree(), root: root}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(markup))
}

// Query returns every element of the document accepted by match.
func (d *HTMLDocument) Query(match Matcher) []Element {
	return query(d.t, d.root, match)
}

// First returns the first element accepted by match.
func (d *HTMLDocument) First(match Matcher) (Element, bool) {
	found := d.Query(match)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// Body returns the body element.
func (d *HTMLDocument) Body() (Element, error) {
	body, ok := d.First(IsTag("body"))
	if !ok {
		return nil, ErrNoBody
	}
	return body, nil
}

// Render writes the current state of the tree as HTML.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Root exposes the underlying html node for callers that post-process the
// tree (sanitising exporters, custom renderers).
func (d *HTMLDocument) Root() *html.Node {
	return d.root
}

func query(t *tree, parent *html.Node, match Matcher) []Element {
	var out []Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			el := t.wrap(c)
			if match == nil || match(el) {
				out = append(out, el)
			}
			if !isTemplate(c) {
				walk(c)
			}
		}
	}
	walk(parent)
	return out
}

func isTemplate(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Template || n.Data == "template")
}

type listener struct {
	fn      Listener
	removed bool
}

type node struct {
	t         *tree
	n         *html.Node
	listeners map[string][]*listener
}

var _ Element = (*node)(nil)

func (e *node) AsElement() (Element, bool) {
	if e.n.Type != html.ElementNode {
		return nil, false
	}
	return e, true
}

func (e *node) InsertBefore(f Fragment) []Node {
	frag, ok := f.(*htmlFragment)
	if !ok || frag == nil || e.n.Parent == nil {
		return nil
	}
	parent := e.n.Parent
	out := make([]Node, 0, len(frag.nodes))
	for _, child := range frag.nodes {
		if child.Parent != nil {
			child.Parent.RemoveChild(child)
		}
		parent.InsertBefore(child, e.n)
		out = append(out, e.t.wrap(child))
	}
	frag.nodes = nil
	return out
}

func (e *node) Remove() {
	if e.n.Parent == nil {
		return
	}
	e.n.Parent.RemoveChild(e.n)
	e.t.forget(e.n)
}

func (e *node) Attached() bool {
	return e.n.Parent != nil
}

func (e *node) Query(match Matcher) []Element {
	if isTemplate(e.n) {
		return nil
	}
	return query(e.t, e.n, match)
}

func (e *node) Tag() string {
	if e.n.Type != html.ElementNode {
		return ""
	}
	return e.n.Data
}

func (e *node) Attr(name string) (string, bool) {
	for _, attr := range e.n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func (e *node) SetAttr(name, value string) {
	for i, attr := range e.n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *node) RemoveAttr(name string) {
	attrs := e.n.Attr[:0]
	for _, attr := range e.n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			continue
		}
		attrs = append(attrs, attr)
	}
	e.n.Attr = attrs
}

func (e *node) Text() string {
	if e.n.Type == html.TextNode {
		return e.n.Data
	}
	var b strings.Builder
	collectText(&b, e.n)
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			collectText(b, c)
		}
	}
}

func (e *node) SetText(text string) {
	if e.n.Type == html.TextNode {
		e.n.Data = text
		return
	}
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		e.t.forget(c)
		c = next
	}
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *node) Value() string {
	switch e.Tag() {
	case "textarea":
		return e.Text()
	case "select":
		options := e.options()
		for _, opt := range options {
			if _, ok := opt.Attr("selected"); ok {
				return optionValue(opt)
			}
		}
		if len(options) > 0 {
			return optionValue(options[0])
		}
		return ""
	default:
		value, _ := e.Attr("value")
		return value
	}
}

func (e *node) SetValue(value string) {
	switch e.Tag() {
	case "textarea":
		e.SetText(value)
	case "select":
		for _, opt := range e.options() {
			if optionValue(opt) == value {
				opt.SetAttr("selected", "")
			} else {
				opt.RemoveAttr("selected")
			}
		}
	default:
		e.SetAttr("value", value)
	}
}

func (e *node) options() []Element {
	return query(e.t, e.n, IsTag("option"))
}

func optionValue(opt Element) string {
	if value, ok := opt.Attr("value"); ok {
		return value
	}
	return strings.TrimSpace(opt.Text())
}

func (e *node) Checked() bool {
	_, ok := e.Attr("checked")
	return ok
}

func (e *node) SetChecked(checked bool) {
	if checked {
		e.SetAttr("checked", "")
		return
	}
	e.RemoveAttr("checked")
}

func (e *node) Content() Fragment {
	if !isTemplate(e.n) {
		return nil
	}
	frag := &htmlFragment{t: e.t}
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		frag.nodes = append(frag.nodes, CloneNode(c))
	}
	return frag
}

func (e *node) On(name string, fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	e.listeners[name] = append(e.listeners[name], l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		current := e.listeners[name]
		for i, candidate := range current {
			if candidate == l {
				e.listeners[name] = append(current[:i:i], current[i+1:]...)
				break
			}
		}
		if len(e.listeners[name]) == 0 {
			delete(e.listeners, name)
		}
	}
}

func (e *node) Trigger(name string, detail any) {
	current := append([]*listener(nil), e.listeners[name]...)
	evt := Event{Name: name, Target: e, Detail: detail}
	for _, l := range current {
		if l.removed {
			continue
		}
		l.fn(evt)
	}
}

type htmlFragment struct {
	t     *tree
	nodes []*html.Node
}

var _ Fragment = (*htmlFragment)(nil)

func (f *htmlFragment) Nodes() []Node {
	out := make([]Node, 0, len(f.nodes))
	for _, n := range f.nodes {
		out = append(out, f.t.wrap(n))
	}
	return out
}

func (f *htmlFragment) Elements() []Element {
	var out []Element
	for _, n := range f.nodes {
		if n.Type == html.ElementNode {
			out = append(out, f.t.wrap(n))
		}
	}
	return out
}

func (f *htmlFragment) Query(match Matcher) []Element {
	var out []Element
	for _, n := range f.nodes {
		if n.Type != html.ElementNode {
			continue
		}
		el := f.t.wrap(n)
		if match == nil || match(el) {
			out = append(out, el)
		}
		if !isTemplate(n) {
			out = append(out, query(f.t, n, match)...)
		}
	}
	return out
}

// CloneNode deep-copies an html.Node subtree. The copy is detached.
func CloneNode(src *html.Node) *html.Node {
	dst := &html.Node{
		Type:      src.Type,
		DataAtom:  src.DataAtom,
		Data:      src.Data,
		Namespace: src.Namespace,
	}
	if len(src.Attr) > 0 {
		dst.Attr = append([]html.Attribute(nil), src.Attr...)
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		dst.AppendChild(CloneNode(c))
	}
	return dst
}
