package block

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-xbind/pkg/container"
	"github.com/goliatone/go-xbind/pkg/dom"
	"github.com/goliatone/go-xbind/pkg/reference"
	"github.com/goliatone/go-xbind/pkg/state"
	"github.com/goliatone/go-xbind/pkg/toggler"
)

// Items is the observable container installed on a repeat-for target.
type Items = container.Container[*state.Object]

// Entry is the detail of the construct and destruct events a repeat-for
// anchor receives for each container entry. Condition edges carry no detail.
type Entry struct {
	At  container.Position
	Obj *state.Object
}

type slot struct {
	obj   *state.Object
	nodes []dom.Node
}

// directive is the controller behind one template element carrying
// present-if, repeat-for or both. With both, the container is always
// installed and entry subtrees only exist while the condition holds.
type directive struct {
	b      *Binder
	anchor dom.Element
	scope  reference.Scope
	suffix string
	seq    int

	cond      reference.Condition
	hasCond   bool
	condValue any
	condProp  *state.Accessor
	toggle    *toggler.Toggler

	rep       reference.Repetition
	hasRep    bool
	items     *Items
	itemsProp *state.Value
	slots     []*slot

	single    []dom.Node
	mounted   bool
	destroyed bool
	offs      []func()
}

func (b *Binder) install(el dom.Element, scope reference.Scope, suffix string) *directive {
	if el.Tag() != "template" {
		b.logger.Debug("directive skipped: not a template element", "tag", el.Tag())
		return nil
	}
	if _, ok := b.anchors[el]; ok {
		return nil
	}
	cond, hasCond := reference.ParseCondition(el, b.attrs.PresentIf, scope)
	rep, hasRep := reference.ParseRepetition(el, b.attrs.RepeatFor, scope)
	if !hasCond && !hasRep {
		b.logger.Debug("directive skipped: malformed expression",
			"present_if", attrOf(el, b.attrs.PresentIf),
			"repeat_for", attrOf(el, b.attrs.RepeatFor))
		return nil
	}

	d := &directive{
		b:       b,
		anchor:  el,
		scope:   scope,
		suffix:  suffix,
		cond:    cond,
		hasCond: hasCond,
		rep:     rep,
		hasRep:  hasRep,
		mounted: !hasCond,
	}
	b.anchors[el] = d
	d.offs = append(d.offs,
		el.On(dom.EventConstruct, d.onConstruct),
		el.On(dom.EventDestruct, d.onDestruct),
		el.On(dom.EventDestroy, func(dom.Event) { d.destroy() }),
	)

	if hasRep {
		d.installRepetition()
	}
	if hasCond {
		d.installCondition()
	}
	return d
}

func (d *directive) installRepetition() {
	d.items = container.New(container.Hooks[*state.Object]{
		New: state.New,
		Create: func(obj *state.Object, at container.Position) {
			d.anchor.Trigger(dom.EventConstruct, Entry{At: at, Obj: obj})
		},
		Populate: state.AssignFrom,
		Delete: func(obj *state.Object, at container.Position) {
			d.anchor.Trigger(dom.EventDestruct, Entry{At: at, Obj: obj})
		},
	})
	d.itemsProp = state.NewValue(d.items)
	d.rep.Target.Obj.Define(d.rep.Target.Key, d.itemsProp)
	d.b.logger.Debug("repeat-for installed", "reference", d.rep.Reference, "iterator", d.rep.Iterator)
}

func (d *directive) installCondition() {
	construct := func() { d.anchor.Trigger(dom.EventConstruct, nil) }
	destruct := func() { d.anchor.Trigger(dom.EventDestruct, nil) }
	if d.cond.Inversion {
		d.toggle = toggler.New(destruct, construct)
	} else {
		d.toggle = toggler.New(construct, destruct)
	}

	target := d.cond.Target
	prior := target.Obj.Get(target.Key)
	d.condProp = &state.Accessor{
		GetFunc: func() any { return d.condValue },
		SetFunc: d.setCondition,
	}
	target.Obj.Define(target.Key, d.condProp)

	// A negated condition holds while the field is still falsy.
	if d.cond.Inversion && !toggler.Truthy(prior) {
		d.mount()
	}
	d.setCondition(prior)
	d.b.logger.Debug("present-if installed", "reference", d.cond.Reference, "inversion", d.cond.Inversion)
}

func (d *directive) setCondition(v any) {
	d.condValue = v
	d.toggle.Observe(v)
}

func (d *directive) onConstruct(evt dom.Event) {
	if entry, ok := evt.Detail.(Entry); ok {
		d.insertEntry(entry)
		return
	}
	d.mount()
}

func (d *directive) onDestruct(evt dom.Event) {
	if entry, ok := evt.Detail.(Entry); ok {
		d.removeEntry(entry)
		return
	}
	d.unmount()
}

func (d *directive) insertEntry(entry Entry) {
	idx := min(max(entry.At.Index, 0), len(d.slots))
	s := &slot{obj: entry.Obj}
	d.slots = slices.Insert(d.slots, idx, s)
	if d.mounted {
		d.materialize(s, idx)
	}
}

func (d *directive) removeEntry(entry Entry) {
	idx := entry.At.Index
	if idx < 0 || idx >= len(d.slots) {
		return
	}
	s := d.slots[idx]
	d.slots = slices.Delete(d.slots, idx, idx+1)
	destroyNodes(s.nodes)
	s.nodes = nil
}

// materialize clones the template for the entry at idx, inserts it after
// the subtrees of the preceding entries and binds it with the iterator alias
// bound to the entry. Values the entry held while it had no subtree are
// written back through the new bindings.
func (d *directive) materialize(s *slot, idx int) {
	d.seq++
	suffix := fmt.Sprintf("%s-%d", d.suffix, d.seq)
	content := d.anchor.Content()
	d.addSuffix(content, suffix)

	preserved := s.obj.Snapshot()
	s.nodes = d.referenceAfter(idx).InsertBefore(content)
	d.b.bindBlock(nodeList(s.nodes), d.scope.With(d.rep.Iterator, s.obj), suffix)
	state.Assign(s.obj, preserved)
}

func (d *directive) referenceAfter(idx int) dom.Node {
	for _, s := range d.slots[idx+1:] {
		if len(s.nodes) > 0 {
			return d.b.head(s.nodes[0])
		}
	}
	return d.anchor
}

func (d *directive) mount() {
	if d.mounted || d.destroyed {
		return
	}
	d.mounted = true
	d.b.logger.Debug("directive mounted", "entries", len(d.slots))
	if d.hasRep {
		for i, s := range d.slots {
			d.materialize(s, i)
		}
		return
	}
	content := d.anchor.Content()
	if d.suffix != "" {
		d.addSuffix(content, d.suffix)
	}
	d.single = d.anchor.InsertBefore(content)
	d.b.bindBlock(nodeList(d.single), d.scope, d.suffix)
}

func (d *directive) unmount() {
	if !d.mounted {
		return
	}
	d.mounted = false
	d.b.logger.Debug("directive unmounted", "entries", len(d.slots))
	if d.hasRep {
		for i := len(d.slots) - 1; i >= 0; i-- {
			s := d.slots[i]
			preserved := s.obj.Snapshot()
			destroyNodes(s.nodes)
			s.nodes = nil
			state.Assign(s.obj, preserved)
		}
		return
	}
	destroyNodes(d.single)
	d.single = nil
}

// first returns the leading node of the materialised content.
func (d *directive) first() (dom.Node, bool) {
	if !d.hasRep {
		if len(d.single) == 0 {
			return nil, false
		}
		return d.b.head(d.single[0]), true
	}
	for _, s := range d.slots {
		if len(s.nodes) > 0 {
			return d.b.head(s.nodes[0]), true
		}
	}
	return nil, false
}

// destroy removes every materialised subtree, then the directive's fields
// and listeners. Repeated destroy events are ignored.
func (d *directive) destroy() {
	if d.destroyed {
		return
	}
	if d.hasRep {
		d.items.Clear()
	} else {
		destroyNodes(d.single)
		d.single = nil
	}
	d.destroyed = true
	d.mounted = false

	if d.hasCond {
		d.cond.Target.Obj.Remove(d.cond.Target.Key, d.condProp)
	}
	if d.hasRep {
		d.rep.Target.Obj.Remove(d.rep.Target.Key, d.itemsProp)
	}
	offs := d.offs
	d.offs = nil
	for _, off := range offs {
		off()
	}
	delete(d.b.anchors, d.anchor)
	d.b.logger.Debug("directive destroyed", "tag", d.anchor.Tag())
}

// addSuffix appends suffix to every id attribute of the cloned content and to
// the attributes listed by the add-suffix-to directive.
func (d *directive) addSuffix(content dom.Fragment, suffix string) {
	if content == nil || suffix == "" {
		return
	}
	for _, el := range content.Query(dom.HasAttr("id")) {
		id, _ := el.Attr("id")
		el.SetAttr("id", id+suffix)
	}
	attr := d.b.attrs.AddSuffixTo
	for _, el := range content.Query(dom.HasAttr(attr)) {
		names, _ := el.Attr(attr)
		for _, name := range strings.Split(names, ",") {
			name = strings.TrimSpace(name)
			if name == "" || name == "id" {
				continue
			}
			if value, ok := el.Attr(name); ok {
				el.SetAttr(name, value+suffix)
			}
		}
	}
}

func attrOf(el dom.Element, name string) string {
	value, _ := el.Attr(name)
	return value
}
