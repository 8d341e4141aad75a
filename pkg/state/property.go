package state

// Property is an observable field slot. Plain values and bound accessors both
// satisfy it, so owners read and write fields without knowing which is which.
type Property interface {
	Get() any
	Set(v any)
}

// Releaser is implemented by properties holding resources (listeners) that
// must be let go when the property is replaced on its owner.
type Releaser interface {
	Release()
}

// Value is a plain, unbound property.
type Value struct {
	v any
}

// NewValue wraps v in a plain property.
func NewValue(v any) *Value {
	return &Value{v: v}
}

func (p *Value) Get() any {
	return p.v
}

func (p *Value) Set(v any) {
	p.v = v
}

// Accessor is a property backed by caller supplied functions. A nil GetFunc
// reads as nil, a nil SetFunc drops writes.
type Accessor struct {
	GetFunc     func() any
	SetFunc     func(v any)
	ReleaseFunc func()
}

func (a *Accessor) Get() any {
	if a.GetFunc == nil {
		return nil
	}
	return a.GetFunc()
}

func (a *Accessor) Set(v any) {
	if a.SetFunc != nil {
		a.SetFunc(v)
	}
}

func (a *Accessor) Release() {
	if a.ReleaseFunc != nil {
		a.ReleaseFunc()
	}
}

// Field is a handle to a named field of an Object. It stays valid across
// redefinitions of the field.
type Field struct {
	owner *Object
	key   string
}

// Get reads the field's current value.
func (f Field) Get() any {
	return f.owner.Get(f.key)
}

// Set writes through whatever property currently backs the field.
func (f Field) Set(v any) {
	f.owner.Set(f.key, v)
}

// Key returns the field name.
func (f Field) Key() string {
	return f.key
}
