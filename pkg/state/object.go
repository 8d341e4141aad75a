package state

import (
	"slices"
	"strconv"
	"strings"
)

// Object is a state object: an ordered set of named fields, each backed by a
// Property. The state root and every nested or per-entry object is an Object.
//
// Objects are not safe for concurrent use.
type Object struct {
	fields map[string]Property
	order  []string
}

// New returns an empty object.
func New() *Object {
	return &Object{fields: make(map[string]Property)}
}

// List is implemented by ordered collections of objects (the observable
// container) so Assign and Snapshot can traverse them.
type List interface {
	Len() int
	At(i int) *Object
}

// Get reads a field. Missing fields read as nil.
func (o *Object) Get(key string) any {
	if o == nil {
		return nil
	}
	p, ok := o.fields[key]
	if !ok {
		return nil
	}
	return p.Get()
}

// Set writes a field through its property, defining a plain value when the
// field does not exist yet.
func (o *Object) Set(key string, v any) {
	if p, ok := o.fields[key]; ok {
		p.Set(v)
		return
	}
	o.Define(key, NewValue(v))
}

// Has reports whether the field is defined.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.fields[key]
	return ok
}

// Property returns the property currently backing key.
func (o *Object) Property(key string) (Property, bool) {
	if o == nil {
		return nil, false
	}
	p, ok := o.fields[key]
	return p, ok
}

// Define installs p at key. A different property previously installed there
// is released first.
func (o *Object) Define(key string, p Property) {
	if p == nil {
		o.Delete(key)
		return
	}
	if prev, ok := o.fields[key]; ok {
		if prev != p {
			release(prev)
		}
	} else {
		o.order = append(o.order, key)
	}
	o.fields[key] = p
}

// Remove deletes key only while p is still the property installed there, so
// a stale teardown never clobbers a newer binding. It does not release p.
func (o *Object) Remove(key string, p Property) bool {
	current, ok := o.fields[key]
	if !ok || current != p {
		return false
	}
	o.drop(key)
	return true
}

// Delete removes key unconditionally, releasing its property.
func (o *Object) Delete(key string) {
	prev, ok := o.fields[key]
	if !ok {
		return
	}
	o.drop(key)
	release(prev)
}

func (o *Object) drop(key string) {
	delete(o.fields, key)
	if idx := slices.Index(o.order, key); idx >= 0 {
		o.order = slices.Delete(o.order, idx, idx+1)
	}
}

// Child returns the object stored at key, creating an empty one when the
// field is missing or nil. Any other value is left in place and a detached
// object is returned.
func (o *Object) Child(key string) *Object {
	switch current := o.Get(key).(type) {
	case *Object:
		if current != nil {
			return current
		}
	case nil:
	default:
		return New()
	}
	child := New()
	o.Set(key, child)
	return child
}

// Index returns the entry of list at the decimal index key.
func Index(list List, key string) (*Object, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= list.Len() {
		return nil, false
	}
	return list.At(i), true
}

// Field returns a handle to key.
func (o *Object) Field(key string) Field {
	return Field{owner: o, key: key}
}

// Keys lists enumerable fields in definition order. Fields whose name starts
// with "_" are hidden.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, 0, len(o.order))
	for _, key := range o.order {
		if Enumerable(key) {
			out = append(out, key)
		}
	}
	return out
}

// Len counts every defined field, hidden ones included.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.fields)
}

// Enumerable reports whether key is listed by Keys and Snapshot.
func Enumerable(key string) bool {
	return !strings.HasPrefix(key, "_")
}

func release(p Property) {
	if r, ok := p.(Releaser); ok {
		r.Release()
	}
}
