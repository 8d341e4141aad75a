// Package toggler turns a stream of boolean-ish writes into activate and
// deactivate callbacks fired only on edges.
package toggler

import (
	"github.com/spf13/cast"
)

// Toggler remembers the last observed boolean and fires OnSet on a
// false→true edge and OnReset on a true→false edge.
type Toggler struct {
	onSet   func()
	onReset func()
	last    bool
}

// New constructs a Toggler in the false state. Nil callbacks are skipped.
func New(onSet, onReset func()) *Toggler {
	return &Toggler{onSet: onSet, onReset: onReset}
}

// Observe feeds v and fires the callback for the edge it produces, if any.
func (t *Toggler) Observe(v any) {
	next := Truthy(v)
	prev := t.last
	t.last = next
	Notify(prev, next, t.onSet, t.onReset)
}

// State reports the last observed boolean.
func (t *Toggler) State() bool {
	return t.last
}

// Notify fires onSet or onReset when old and new differ in truthiness.
func Notify(old, new any, onSet, onReset func()) {
	was, is := Truthy(old), Truthy(new)
	switch {
	case !was && is && onSet != nil:
		onSet()
	case was && !is && onReset != nil:
		onReset()
	}
}

// Truthy converts a field value to a boolean. Booleans and numbers convert as
// usual, strings accepted by strconv.ParseBool convert as parsed, other
// strings are true when non-empty, nil is false and anything else is true.
func Truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		if b, err := cast.ToBoolE(typed); err == nil {
			return b
		}
		return typed != ""
	}
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	return true
}
