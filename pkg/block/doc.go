// Package block binds a tree fragment to state.
//
// BindBlock walks a fragment twice. The first pass binds every element
// carrying the bind-on attribute through the adapter registry. The second
// installs a controller on every template element carrying present-if or
// repeat-for:
//
//   - present-if="[not ]ref" installs an accessor at ref; truthiness edges
//     mount or unmount a bound copy of the template content in front of the
//     template.
//   - repeat-for="$it in ref" installs an Items container at ref; every
//     entry owns one bound copy of the content, with $it resolving to the
//     entry's state object.
//
// A template carrying both keeps its container while unmounted; entries
// retain their values and regain a subtree on the next mount.
//
// Controllers talk through the tree's event mechanism: dom.EventConstruct and
// dom.EventDestruct on the template (with an Entry detail for container
// entries) and dom.EventDestroy for teardown. Destroying a subtree fires
// dom.EventDestroy on its elements bottom-up, so nested directives and
// bindings are gone before the nodes leave the tree.
package block
