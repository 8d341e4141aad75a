package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-xbind/pkg/dom"
)

// MustParse parses markup into a document. Testing helpers fail the test on
// error to keep scenario tests concise.
func MustParse(t *testing.T, markup string) *dom.HTMLDocument {
	t.Helper()

	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

// MustLoadDocument parses an HTML fixture from disk.
func MustLoadDocument(t *testing.T, path string) *dom.HTMLDocument {
	t.Helper()

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocument parses an HTML fixture without requiring testing.T.
func LoadDocument(path string) (*dom.HTMLDocument, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: open document: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse document: %w", err)
	}
	return doc, nil
}

// Texts returns the trimmed text of every element.
func Texts(elements []dom.Element) []string {
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		out = append(out, strings.TrimSpace(el.Text()))
	}
	return out
}

// Attrs returns the value of name on every element carrying it.
func Attrs(elements []dom.Element, name string) []string {
	var out []string
	for _, el := range elements {
		if value, ok := el.Attr(name); ok {
			out = append(out, value)
		}
	}
	return out
}

// Render serialises the document.
func Render(t *testing.T, doc *dom.HTMLDocument) string {
	t.Helper()

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		t.Fatalf("render document: %v", err)
	}
	return buf.String()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGoldenString reads a golden file and returns its content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
