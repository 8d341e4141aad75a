package xbind

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-xbind/pkg/binder"
	"github.com/goliatone/go-xbind/pkg/block"
	"github.com/goliatone/go-xbind/pkg/dom"
	"github.com/goliatone/go-xbind/pkg/testsupport"
)

func trim(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

func loadTodo(t *testing.T) (*dom.HTMLDocument, Params) {
	t.Helper()
	doc := testsupport.MustLoadDocument(t, filepath.Join("testdata", "todo.html"))
	params, err := LoadParamsFile(filepath.Join("testdata", "todo.yaml"))
	if err != nil {
		t.Fatalf("load params: %v", err)
	}
	params.Normalizers = binder.Normalizers{"trim": trim}
	return doc, params
}

func TestBuild_AppliesParams(t *testing.T) {
	doc, params := loadTodo(t)
	ctx := New()
	defer ctx.Close()

	root, err := ctx.Build(doc, params)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if diff := cmp.Diff([]string{"Groceries"}, testsupport.Texts(doc.Query(dom.IsTag("h1")))); diff != "" {
		t.Fatalf("title mismatch (-want +got):\n%s", diff)
	}
	owner, _ := doc.First(dom.HasAttr("id"))
	if got := owner.Value(); got != "ada" {
		t.Fatalf("expected normalized owner, got %q", got)
	}
	if diff := cmp.Diff([]string{"milk", "bread"}, testsupport.Texts(doc.Query(dom.IsTag("span")))); diff != "" {
		t.Fatalf("pushed entries mismatch (-want +got):\n%s", diff)
	}
	var checked []bool
	for _, box := range doc.Query(dom.IsTag("input")) {
		if kind, _ := box.Attr("type"); kind == "checkbox" {
			checked = append(checked, box.Checked())
		}
	}
	if diff := cmp.Diff([]bool{true, false}, checked); diff != "" {
		t.Fatalf("checkbox state mismatch (-want +got):\n%s", diff)
	}
	if _, ok := doc.First(dom.IsTag("p")); !ok {
		t.Fatalf("negated condition should be mounted")
	}

	var out struct {
		Title      string
		ItemsEmpty bool `mapstructure:"items_empty"`
		Owner      struct{ Name string }
		Items      []struct {
			Label string
			Done  bool
		}
	}
	if err := ctx.Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Title != "Groceries" || out.Owner.Name != "ada" || len(out.Items) != 2 || !out.Items[0].Done {
		t.Fatalf("unexpected decoded state %+v", out)
	}
	if root != ctx.Root() {
		t.Fatalf("build should return the context root")
	}
}

func TestBuild_ReusesContext(t *testing.T) {
	doc, params := loadTodo(t)
	ctx := New()
	defer ctx.Close()

	first, err := ctx.Build(doc, params)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := ctx.Build(nil, Params{State: map[string]any{"items_empty": true, "title": "Hardware"}})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same state root")
	}
	if _, ok := doc.First(dom.IsTag("p")); ok {
		t.Fatalf("condition write should unmount the summary")
	}
	if diff := cmp.Diff([]string{"Hardware"}, testsupport.Texts(doc.Query(dom.IsTag("h1")))); diff != "" {
		t.Fatalf("title mismatch (-want +got):\n%s", diff)
	}
	if got := len(doc.Query(dom.IsTag("li"))); got != 2 {
		t.Fatalf("second build must not rebind the document, got %d entries", got)
	}
}

func TestBuild_PreservesRootValues(t *testing.T) {
	doc := testsupport.MustParse(t, `<h1 xb-bind-on="title"></h1>`)
	ctx := New()
	ctx.Root().Set("title", "early")

	if _, err := ctx.Build(doc, Params{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"early"}, testsupport.Texts(doc.Query(dom.IsTag("h1")))); diff != "" {
		t.Fatalf("title mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Errors(t *testing.T) {
	if _, err := New().Build(nil, Params{}); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}

	doc := testsupport.MustParse(t, `<h1 xb-bind-on="title"></h1>`)
	ctx := New()
	_, err := ctx.Build(doc, Params{Push: map[string][]map[string]any{"title": {{"x": 1}}}})
	if !errors.Is(err, ErrNotContainer) {
		t.Fatalf("expected ErrNotContainer, got %v", err)
	}
}

func TestClose(t *testing.T) {
	doc, params := loadTodo(t)
	ctx := New()
	root, err := ctx.Build(doc, params)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if err := ctx.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := ctx.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
	if diff := cmp.Diff([]string{"owner"}, root.Keys()); diff != "" {
		t.Fatalf("close should remove every installed field (-want +got):\n%s", diff)
	}
	if got := len(doc.Query(dom.IsTag("li"))); got != 0 {
		t.Fatalf("close should remove materialised content, got %d", got)
	}
	if _, err := ctx.Build(doc, params); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestWithPrefixAndRegistry(t *testing.T) {
	reg := binder.NewRegistry(binder.WithAffectToAttr("data-affect-to"))
	reg.Register(binder.Adapter{
		Name:  "upper-text",
		Match: dom.IsTag("output"),
		New: func(el dom.Element, _ binder.Normalizer) binder.Accessor {
			return binder.Accessor{
				Get: func() any { return el.Text() },
				Set: func(v any) { el.SetText(strings.ToUpper(v.(string))) },
			}
		},
	}, 1000)

	doc := testsupport.MustParse(t, `<output data-bind-on="status"></output><a data-bind-on="link" data-affect-to="href"></a>`)
	ctx := New(WithPrefix("data-"), WithRegistry(reg))
	defer ctx.Close()

	if _, err := ctx.Build(doc, Params{State: map[string]any{"status": "ok", "link": "/home"}}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"OK"}, testsupport.Texts(doc.Query(dom.IsTag("output")))); diff != "" {
		t.Fatalf("custom adapter mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/home"}, testsupport.Attrs(doc.Query(dom.IsTag("a")), "href")); diff != "" {
		t.Fatalf("attribute mirror mismatch (-want +got):\n%s", diff)
	}
}

func TestContainerAndField(t *testing.T) {
	doc, params := loadTodo(t)
	ctx := New()
	defer ctx.Close()
	if _, err := ctx.Build(doc, params); err != nil {
		t.Fatalf("build: %v", err)
	}

	items, err := ctx.Container("items")
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	items.Splice(0, 1)
	if diff := cmp.Diff([]string{"bread"}, testsupport.Texts(doc.Query(dom.IsTag("span")))); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	if _, err := ctx.Container("title"); !errors.Is(err, ErrNotContainer) {
		t.Fatalf("expected ErrNotContainer, got %v", err)
	}

	ctx.Field("title").Set("Hardware")
	if diff := cmp.Diff([]string{"Hardware"}, testsupport.Texts(doc.Query(dom.IsTag("h1")))); diff != "" {
		t.Fatalf("title mismatch (-want +got):\n%s", diff)
	}

	ctx.Close()
	if _, err := ctx.Container("items"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestContainerAndField_ThroughEntries(t *testing.T) {
	doc, params := loadTodo(t)
	ctx := New()
	defer ctx.Close()
	root, err := ctx.Build(doc, params)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if _, err := ctx.Container("items.0.tags"); !errors.Is(err, ErrNotContainer) {
		t.Fatalf("expected ErrNotContainer, got %v", err)
	}
	if _, ok := root.Get("items").(*block.Items); !ok {
		t.Fatalf("items container was replaced by %T", root.Get("items"))
	}

	label := ctx.Field("items.0.label")
	if got := label.Get(); got != "milk" {
		t.Fatalf("expected first entry label, got %v", got)
	}
	label.Set("oat milk")
	if diff := cmp.Diff([]string{"oat milk", "bread"}, testsupport.Texts(doc.Query(dom.IsTag("span")))); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	ctx.Field("title.size").Set(3)
	if got := root.Get("title"); got != "Groceries" {
		t.Fatalf("scalar title was overwritten with %v", got)
	}

	items, err := ctx.Container("items")
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	items.Pop()
	if diff := cmp.Diff([]string{"oat milk"}, testsupport.Texts(doc.Query(dom.IsTag("span")))); diff != "" {
		t.Fatalf("container lost its subtrees (-want +got):\n%s", diff)
	}
}
