package reference

import (
	"strings"

	"github.com/goliatone/go-xbind/pkg/state"
)

// Sigil prefixes alias tokens introduced by repeat-for directives.
const Sigil = "$"

// NoAlias is the distinguished alias under which a scope stores its root.
const NoAlias = ""

// Scope maps alias tokens to the objects they denote. Scopes are immutable:
// With returns a new scope layered over the receiver.
type Scope struct {
	parent *Scope
	alias  string
	obj    *state.Object
}

// NewScope returns a scope whose unaliased references resolve against root.
func NewScope(root *state.Object) Scope {
	return Scope{alias: NoAlias, obj: root}
}

// With returns a child scope binding alias to obj.
func (s Scope) With(alias string, obj *state.Object) Scope {
	parent := s
	return Scope{parent: &parent, alias: alias, obj: obj}
}

// Lookup returns the object bound to alias, innermost binding first.
func (s Scope) Lookup(alias string) (*state.Object, bool) {
	for cur := &s; cur != nil; cur = cur.parent {
		if cur.obj != nil && cur.alias == alias {
			return cur.obj, true
		}
	}
	return nil, false
}

// Root returns the object unaliased references resolve against.
func (s Scope) Root() *state.Object {
	obj, _ := s.Lookup(NoAlias)
	return obj
}

// Aliases lists the alias tokens visible from this scope, innermost first.
func (s Scope) Aliases() []string {
	var out []string
	seen := make(map[string]struct{})
	for cur := &s; cur != nil; cur = cur.parent {
		if cur.alias == NoAlias {
			continue
		}
		if _, ok := seen[cur.alias]; ok {
			continue
		}
		seen[cur.alias] = struct{}{}
		out = append(out, cur.alias)
	}
	return out
}

// IsAlias reports whether token carries the alias sigil.
func IsAlias(token string) bool {
	return strings.HasPrefix(token, Sigil)
}
