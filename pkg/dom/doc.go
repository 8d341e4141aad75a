// Package dom describes the tree capability the binding engine operates on:
// elements with attributes, text, form values and events, template elements
// with inert content, and fragments that can be cloned and inserted.
//
// The engine only depends on the interfaces declared here. Parse and
// ParseString provide an implementation over golang.org/x/net/html so the
// engine can drive a parsed HTML document (tests, the CLI, server-side
// previews). Template content is inert: Query never descends into it, which
// mirrors how a browser keeps <template> content out of the live document.
package dom
