// Package xbind keeps a tree of state objects synchronised with a live HTML
// tree whose markup declares bindings through attributes.
//
//	<input xb-bind-on="user.email" xb-normalized-by="trim">
//	<template xb-present-if="not busy">...</template>
//	<template xb-repeat-for="$it in items"><li xb-bind-on="$it.name"></li></template>
//
// A Context owns the state root. Build binds a document once and returns the
// root; after that, writes to root fields update the tree and change events
// from the tree update the fields:
//
//	doc, _ := dom.ParseString(markup)
//	ctx := xbind.New(xbind.WithNormalizers(binder.Normalizers{"trim": trim}))
//	root, err := ctx.Build(doc, xbind.Params{State: map[string]any{"busy": false}})
//	items := root.Get("items").(*block.Items)
//	items.Push(map[string]any{"name": "a"})
//	defer ctx.Close()
//
// Subpackages carry the pieces: state (observable objects and deep-merge),
// reference (alias scopes and directive grammars), binder (element adapters),
// toggler, container and block (the directive controllers).
package xbind
