package binder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-xbind/pkg/dom"
	"github.com/goliatone/go-xbind/pkg/reference"
	"github.com/goliatone/go-xbind/pkg/state"
)

func element(t *testing.T, markup string) dom.Element {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	el, ok := doc.First(dom.HasAttr("id"))
	if !ok {
		t.Fatalf("no element with an id in %q", markup)
	}
	return el
}

func TestSelect_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		markup string
		expect string
	}{
		{name: "checkbox", markup: `<input id="x" type="checkbox">`, expect: AdapterBooleanToggle},
		{name: "checkbox upper case", markup: `<input id="x" type="CHECKBOX">`, expect: AdapterBooleanToggle},
		{name: "text input", markup: `<input id="x" type="text">`, expect: AdapterValueField},
		{name: "textarea", markup: `<textarea id="x"></textarea>`, expect: AdapterValueField},
		{name: "select", markup: `<select id="x"><option>a</option></select>`, expect: AdapterValueField},
		{name: "affect-to", markup: `<a id="x" xb-affect-to="href"></a>`, expect: AdapterAttributeMirror},
		{name: "input with affect-to", markup: `<input id="x" xb-affect-to="placeholder">`, expect: AdapterValueField},
		{name: "fallback", markup: `<span id="x"></span>`, expect: AdapterTextContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapter, ok := reg.Select(element(t, tc.markup))
			if !ok {
				t.Fatalf("expected an adapter")
			}
			if adapter.Name != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, adapter.Name)
			}
		})
	}
}

func TestRegister_PriorityAndOrder(t *testing.T) {
	reg := NewRegistry()
	always := func(dom.Element) bool { return true }
	noop := func(dom.Element, Normalizer) Accessor { return Accessor{} }

	reg.Register(Adapter{Name: "first", Match: always, New: noop}, 500)
	reg.Register(Adapter{Name: "second", Match: always, New: noop}, 500)
	reg.Register(Adapter{Name: "  ", Match: always, New: noop}, 900)

	want := []string{"first", "second", AdapterBooleanToggle, AdapterValueField, AdapterAttributeMirror, AdapterTextContent}
	if diff := cmp.Diff(want, reg.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if adapter, _ := reg.Select(element(t, `<span id="x"></span>`)); adapter.Name != "first" {
		t.Fatalf("expected registration order to break ties, got %q", adapter.Name)
	}
}

func TestWithAffectToAttr(t *testing.T) {
	reg := NewRegistry(WithAffectToAttr("data-affect"))
	if got := reg.AffectToAttr(); got != "data-affect" {
		t.Fatalf("unexpected affect-to attribute %q", got)
	}
	adapter, _ := reg.Select(element(t, `<a id="x" data-affect="href"></a>`))
	if adapter.Name != AdapterAttributeMirror {
		t.Fatalf("expected attribute mirror, got %q", adapter.Name)
	}
}

func TestAttributeMirror_Values(t *testing.T) {
	reg := NewRegistry()
	el := element(t, `<button id="x" xb-affect-to="disabled"></button>`)
	root := state.New()
	reg.Bind(el, reference.Target{Obj: root, Key: "off"}, nil, "")

	if got := root.Get("off"); got != nil {
		t.Fatalf("missing attribute should read as nil, got %v", got)
	}
	root.Set("off", true)
	if value, ok := el.Attr("disabled"); !ok || value != "" {
		t.Fatalf("true should set an empty attribute, got %q (ok=%v)", value, ok)
	}
	root.Set("off", 3)
	if got := root.Get("off"); got != "3" {
		t.Fatalf("expected stringified value, got %v", got)
	}
	root.Set("off", false)
	if _, ok := el.Attr("disabled"); ok {
		t.Fatalf("false should remove the attribute")
	}
}

func TestBind_NormalizesOnChange(t *testing.T) {
	reg := NewRegistry()
	el := element(t, `<input id="x" type="text" xb-normalized-by="trim">`)
	root := state.New()
	normalizers := Normalizers{"trim": func(v any) any {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		return v
	}}

	b := reg.Bind(el, reference.Target{Obj: root, Key: "name"}, normalizers, "trim")
	if b.Adapter() != AdapterValueField {
		t.Fatalf("unexpected adapter %q", b.Adapter())
	}

	el.SetValue("  bob  ")
	if raw, _ := el.Attr("value"); raw != "  bob  " {
		t.Fatalf("interim input must stay uncoerced, got %q", raw)
	}
	el.Trigger(dom.EventChange, nil)
	if raw, _ := el.Attr("value"); raw != "bob" {
		t.Fatalf("expected normalized value after change, got %q", raw)
	}
	if got := root.Get("name"); got != "bob" {
		t.Fatalf("unexpected field value %v", got)
	}
}

func TestBind_RebindReleasesPrevious(t *testing.T) {
	reg := NewRegistry()
	first := element(t, `<span id="a"></span>`)
	second := element(t, `<span id="b"></span>`)
	root := state.New()
	target := reference.Target{Obj: root, Key: "label"}

	old := reg.Bind(first, target, nil, "")
	reg.Bind(second, target, nil, "")

	root.Set("label", "hello")
	if first.Text() != "" || second.Text() != "hello" {
		t.Fatalf("write should only reach the latest binding, got %q / %q", first.Text(), second.Text())
	}

	// Destroying the stale element must not remove the newer binding.
	first.Trigger(dom.EventDestroy, nil)
	old.Unbind()
	if !root.Has("label") {
		t.Fatalf("stale teardown removed the current binding")
	}

	second.Trigger(dom.EventDestroy, nil)
	if root.Has("label") {
		t.Fatalf("expected destroy to remove the field")
	}
}

func TestBind_CheckboxTruthiness(t *testing.T) {
	reg := NewRegistry()
	el := element(t, `<input id="x" type="checkbox">`)
	root := state.New()
	reg.Bind(el, reference.Target{Obj: root, Key: "done"}, nil, "")

	for _, tc := range []struct {
		in   any
		want bool
	}{
		{true, true}, {"false", false}, {"yes", true}, {0, false}, {1, true}, {nil, false},
	} {
		root.Set("done", tc.in)
		if got := root.Get("done"); got != tc.want {
			t.Fatalf("set %v: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestRegister_TreeMatchers(t *testing.T) {
	reg := NewRegistry()
	noop := func(dom.Element, Normalizer) Accessor { return Accessor{} }

	var byTag Matcher = dom.IsTag("meter")
	reg.Register(Adapter{Name: "meter", Match: byTag, New: noop}, 1000)
	reg.Register(Adapter{Name: "flagged", Match: dom.HasAttr("data-flag"), New: noop}, 900)

	cases := []struct {
		markup string
		want   string
	}{
		{markup: `<meter id="x"></meter>`, want: "meter"},
		{markup: `<span id="x" data-flag></span>`, want: "flagged"},
		{markup: `<span id="x"></span>`, want: AdapterTextContent},
	}
	for _, tc := range cases {
		adapter, ok := reg.Select(element(t, tc.markup))
		if !ok || adapter.Name != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.markup, tc.want, adapter.Name)
		}
	}
}
