// Package reference resolves dotted binding expressions (`a.b.c`,
// `$item.name`) to the state field they denote, honouring the alias scope
// introduced by enclosing repeat-for directives, and parses the three
// directive grammars built on top of them.
package reference
