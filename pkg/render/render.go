package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-xbind/pkg/dom"
)

// Document writes doc to w according to options.
func Document(w io.Writer, doc *dom.HTMLDocument, options ...Option) error {
	if doc == nil {
		return ErrNoDocument
	}
	return Node(w, doc.Root(), options...)
}

// String renders doc to a string.
func String(doc *dom.HTMLDocument, options ...Option) (string, error) {
	var buf bytes.Buffer
	if err := Document(&buf, doc, options...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Node writes the tree under root to w according to options.
func Node(w io.Writer, root *html.Node, options ...Option) error {
	if root == nil {
		return ErrNoDocument
	}
	cfg := Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.StripPrefix != "" {
		root = dom.CloneNode(root)
		strip(root, cfg.StripPrefix)
	}
	nodes := []*html.Node{root}
	if cfg.BodyOnly {
		body := findBody(root)
		if body == nil {
			return fmt.Errorf("render: %w", dom.ErrNoBody)
		}
		nodes = nodes[:0]
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return fmt.Errorf("render: serialise: %w", err)
		}
	}
	out := buf.Bytes()
	if cfg.Policy != nil {
		out = cfg.Policy.SanitizeBytes(out)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}

func strip(n *html.Node, prefix string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && c.Data == "template" && hasPrefixedAttr(c, prefix) {
			n.RemoveChild(c)
			c = next
			continue
		}
		strip(c, prefix)
		c = next
	}
	if n.Type != html.ElementNode || len(n.Attr) == 0 {
		return
	}
	attrs := n.Attr[:0]
	for _, attr := range n.Attr {
		if strings.HasPrefix(attr.Key, prefix) {
			continue
		}
		attrs = append(attrs, attr)
	}
	n.Attr = attrs
}

func hasPrefixedAttr(n *html.Node, prefix string) bool {
	for _, attr := range n.Attr {
		if strings.HasPrefix(attr.Key, prefix) {
			return true
		}
	}
	return false
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}
