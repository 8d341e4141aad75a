package binder

import (
	"github.com/goliatone/go-xbind/pkg/dom"
	"github.com/goliatone/go-xbind/pkg/reference"
	"github.com/goliatone/go-xbind/pkg/state"
)

// Binding is the property installed on a target field for a bound element.
// It satisfies state.Property and state.Releaser.
type Binding struct {
	el      dom.Element
	target  reference.Target
	adapter Adapter
	access  Accessor
	offs    []func()
}

var (
	_ state.Property = (*Binding)(nil)
	_ state.Releaser = (*Binding)(nil)
)

// Bind selects the adapter for el and installs the resulting accessor at
// target, replacing (and releasing) whatever property was defined there.
// normalizerName overrides the field key as the normalizer table lookup.
//
// The binding removes itself from target when el receives dom.EventDestroy.
func (r *Registry) Bind(el dom.Element, target reference.Target, normalizers Normalizers, normalizerName string) *Binding {
	adapter, ok := r.Select(el)
	if !ok || target.Obj == nil {
		return nil
	}
	if normalizerName == "" {
		normalizerName = target.Key
	}
	normalize, hasNormalizer := normalizers.Lookup(normalizerName)
	if !hasNormalizer {
		normalize = Identity
	}

	b := &Binding{
		el:      el,
		target:  target,
		adapter: adapter,
		access:  adapter.New(el, normalize),
	}
	target.Obj.Define(target.Key, b)

	if adapter.CommitNormalizes && hasNormalizer {
		b.offs = append(b.offs, el.On(dom.EventChange, func(dom.Event) {
			b.Set(b.Get())
		}))
	}
	b.offs = append(b.offs, el.On(dom.EventDestroy, func(dom.Event) {
		b.Unbind()
	}))
	return b
}

// Get reads the element through the adapter.
func (b *Binding) Get() any {
	if b.access.Get == nil {
		return nil
	}
	return b.access.Get()
}

// Set writes v to the element through the adapter.
func (b *Binding) Set(v any) {
	if b.access.Set != nil {
		b.access.Set(v)
	}
}

// Adapter reports the adapter chosen for the element.
func (b *Binding) Adapter() string {
	return b.adapter.Name
}

// Element returns the bound element.
func (b *Binding) Element() dom.Element {
	return b.el
}

// Release detaches the element listeners. It runs when the field is
// redefined and leaves the field alone.
func (b *Binding) Release() {
	offs := b.offs
	b.offs = nil
	for _, off := range offs {
		off()
	}
}

// Unbind detaches the listeners and removes the field from its owner, unless
// the field has been rebound since.
func (b *Binding) Unbind() {
	b.Release()
	b.target.Obj.Remove(b.target.Key, b)
}
