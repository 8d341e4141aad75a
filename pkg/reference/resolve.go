package reference

import (
	"strings"

	"github.com/goliatone/go-xbind/pkg/state"
)

// Target is the field a reference denotes: Key on Obj.
type Target struct {
	Obj *state.Object
	Key string
}

// Field returns a handle to the target field.
func (t Target) Field() state.Field {
	return t.Obj.Field(t.Key)
}

// Resolve maps ref to its target under scope. An aliased head segment that
// is bound in scope selects that object and is stripped from the path;
// anything else resolves from the scope root. A segment naming a list
// followed by an index descends into that entry. Missing intermediate
// objects are created; existing values are never replaced. The final field
// is never read or created.
func Resolve(scope Scope, ref string) Target {
	base, path := split(scope, ref)
	if base == nil {
		base = state.New()
	}
	segments := strings.Split(path, ".")
	last := len(segments) - 1
	obj := base
	for i := 0; i < last; i++ {
		if list, ok := obj.Get(segments[i]).(state.List); ok && i+1 < last {
			if entry, ok := state.Index(list, segments[i+1]); ok {
				obj = entry
				i++
				continue
			}
		}
		obj = obj.Child(segments[i])
	}
	return Target{Obj: obj, Key: segments[last]}
}

func split(scope Scope, ref string) (*state.Object, string) {
	head, rest, dotted := strings.Cut(ref, ".")
	if IsAlias(head) {
		if obj, ok := scope.Lookup(head); ok {
			if !dotted {
				return obj, ref
			}
			return obj, rest
		}
	}
	return scope.Root(), ref
}
