package reference

import "regexp"

// AttrSource is the slice of an element the parsers read.
type AttrSource interface {
	Attr(name string) (string, bool)
}

const refPattern = `\$?\w+(?:\.\w+)*`

var (
	xPattern    = regexp.MustCompile(`^\s*(` + refPattern + `)\s*$`)
	notXPattern = regexp.MustCompile(`^\s*(not\s+)?(` + refPattern + `)\s*$`)
	xInYPattern = regexp.MustCompile(`^\s*(\$\w+)\s+in\s+(` + refPattern + `)\s*$`)
)

// Binding describes a bind-on directive: `<reference>`.
type Binding struct {
	Reference string
	Target    Target
}

// Condition describes a present-if directive: `[not ]<reference>`.
type Condition struct {
	Reference string
	Inversion bool
	Target    Target
}

// Repetition describes a repeat-for directive: `<$alias> in <reference>`.
type Repetition struct {
	Reference string
	Iterator  string
	Target    Target
}

// ParseBinding reads attr from el as a single reference. ok is false when the
// attribute is absent or malformed.
func ParseBinding(el AttrSource, attr string, scope Scope) (Binding, bool) {
	matches, ok := match(el, attr, xPattern)
	if !ok {
		return Binding{}, false
	}
	return Binding{
		Reference: matches[1],
		Target:    Resolve(scope, matches[1]),
	}, true
}

// ParseCondition reads attr from el as an optionally negated reference.
func ParseCondition(el AttrSource, attr string, scope Scope) (Condition, bool) {
	matches, ok := match(el, attr, notXPattern)
	if !ok {
		return Condition{}, false
	}
	return Condition{
		Reference: matches[2],
		Inversion: matches[1] != "",
		Target:    Resolve(scope, matches[2]),
	}, true
}

// ParseRepetition reads attr from el as an `iterator in collection` pair.
func ParseRepetition(el AttrSource, attr string, scope Scope) (Repetition, bool) {
	matches, ok := match(el, attr, xInYPattern)
	if !ok {
		return Repetition{}, false
	}
	return Repetition{
		Reference: matches[2],
		Iterator:  matches[1],
		Target:    Resolve(scope, matches[2]),
	}, true
}

func match(el AttrSource, attr string, pattern *regexp.Regexp) ([]string, bool) {
	if el == nil {
		return nil, false
	}
	expression, ok := el.Attr(attr)
	if !ok {
		return nil, false
	}
	matches := pattern.FindStringSubmatch(expression)
	if matches == nil {
		return nil, false
	}
	return matches, true
}
