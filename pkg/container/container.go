// Package container implements the observable ordered collection behind
// repeat-for directives. Entries are created and destroyed only through the
// mutation methods, and every creation or deletion is reported to the hooks
// before control returns to the caller.
package container

import (
	"iter"
	"slices"
)

// Position locates a lifecycle event: Index is the slot being created or
// deleted, Len the number of entries held when the hook runs (the entry being
// created is not counted yet, the entry being deleted no longer is).
type Position struct {
	Index int
	Len   int
}

// Hooks wires a container to its owner. New builds the fresh entry value,
// Create runs before the entry is populated and stored, Populate applies the
// caller supplied source and Delete runs after the entry left the container.
type Hooks[T any] struct {
	New      func() T
	Create   func(entry T, at Position)
	Populate func(entry T, src any)
	Delete   func(entry T, at Position)
}

// Container is an index-addressable sequence of entries with lifecycle hooks.
// It is not safe for concurrent use.
type Container[T any] struct {
	hooks    Hooks[T]
	contents []T
}

// New constructs an empty container.
func New[T any](hooks Hooks[T]) *Container[T] {
	return &Container[T]{hooks: hooks}
}

func (c *Container[T]) create(src any, idx int) T {
	var entry T
	if c.hooks.New != nil {
		entry = c.hooks.New()
	}
	if c.hooks.Create != nil {
		c.hooks.Create(entry, Position{Index: idx, Len: len(c.contents)})
	}
	if c.hooks.Populate != nil && src != nil {
		c.hooks.Populate(entry, src)
	}
	return entry
}

func (c *Container[T]) deleted(entry T, idx int) T {
	if c.hooks.Delete != nil {
		c.hooks.Delete(entry, Position{Index: idx, Len: len(c.contents)})
	}
	return entry
}

// Push appends one entry per source and returns the new length.
func (c *Container[T]) Push(srcs ...any) int {
	for _, src := range srcs {
		entry := c.create(src, len(c.contents))
		c.contents = append(c.contents, entry)
	}
	return len(c.contents)
}

// Unshift prepends the sources so that they end up in call order at the head
// of the container, and returns the new length.
func (c *Container[T]) Unshift(srcs ...any) int {
	for i := len(srcs) - 1; i >= 0; i-- {
		entry := c.create(srcs[i], 0)
		c.contents = slices.Insert(c.contents, 0, entry)
	}
	return len(c.contents)
}

// Splice removes deleteCount entries starting at start, then inserts one
// entry per source at start. It returns the removed entries. Out of range
// arguments are clamped.
func (c *Container[T]) Splice(start, deleteCount int, srcs ...any) []T {
	start = c.clampStart(start)
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > len(c.contents) {
		deleteCount = len(c.contents) - start
	}

	removed := make([]T, 0, deleteCount)
	for i := 0; i < deleteCount; i++ {
		entry := c.contents[start]
		c.contents = slices.Delete(c.contents, start, start+1)
		removed = append(removed, c.deleted(entry, start))
	}
	for i := len(srcs) - 1; i >= 0; i-- {
		entry := c.create(srcs[i], start)
		c.contents = slices.Insert(c.contents, start, entry)
	}
	return removed
}

func (c *Container[T]) clampStart(start int) int {
	if start < 0 {
		start += len(c.contents)
		if start < 0 {
			start = 0
		}
	}
	if start > len(c.contents) {
		start = len(c.contents)
	}
	return start
}

// Pop removes the last entry. ok is false on an empty container.
func (c *Container[T]) Pop() (entry T, ok bool) {
	if len(c.contents) == 0 {
		return entry, false
	}
	last := len(c.contents) - 1
	entry = c.contents[last]
	c.contents = c.contents[:last]
	return c.deleted(entry, last), true
}

// Shift removes the first entry. ok is false on an empty container.
func (c *Container[T]) Shift() (entry T, ok bool) {
	if len(c.contents) == 0 {
		return entry, false
	}
	entry = c.contents[0]
	c.contents = slices.Delete(c.contents, 0, 1)
	return c.deleted(entry, 0), true
}

// Len returns the number of entries.
func (c *Container[T]) Len() int {
	return len(c.contents)
}

// SetLen grows the container with empty entries or pops entries off the tail
// until it holds n entries.
func (c *Container[T]) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	for len(c.contents) > n {
		c.Pop()
	}
	for len(c.contents) < n {
		c.Push(nil)
	}
}

// Clear removes every entry from the tail backwards.
func (c *Container[T]) Clear() {
	c.SetLen(0)
}

// At returns the entry at i. It panics when i is out of range, like a slice.
func (c *Container[T]) At(i int) T {
	return c.contents[i]
}

// Entries returns a copy of the entries in order.
func (c *Container[T]) Entries() []T {
	return slices.Clone(c.contents)
}

// All iterates over index/entry pairs in order.
func (c *Container[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, entry := range c.Entries() {
			if !yield(i, entry) {
				return
			}
		}
	}
}

// Keys returns the valid indices.
func (c *Container[T]) Keys() []int {
	out := make([]int, len(c.contents))
	for i := range out {
		out[i] = i
	}
	return out
}

// ForEach calls fn for every entry in order.
func (c *Container[T]) ForEach(fn func(entry T, i int)) {
	for i, entry := range c.Entries() {
		fn(entry, i)
	}
}

// Filter returns the entries accepted by fn.
func (c *Container[T]) Filter(fn func(entry T, i int) bool) []T {
	var out []T
	for i, entry := range c.contents {
		if fn(entry, i) {
			out = append(out, entry)
		}
	}
	return out
}

// Find returns the first entry accepted by fn.
func (c *Container[T]) Find(fn func(entry T, i int) bool) (T, bool) {
	for i, entry := range c.contents {
		if fn(entry, i) {
			return entry, true
		}
	}
	var zero T
	return zero, false
}

// FindIndex returns the index of the first entry accepted by fn, or -1.
func (c *Container[T]) FindIndex(fn func(entry T, i int) bool) int {
	for i, entry := range c.contents {
		if fn(entry, i) {
			return i
		}
	}
	return -1
}

// Every reports whether fn accepts every entry.
func (c *Container[T]) Every(fn func(entry T, i int) bool) bool {
	for i, entry := range c.contents {
		if !fn(entry, i) {
			return false
		}
	}
	return true
}

// Some reports whether fn accepts at least one entry.
func (c *Container[T]) Some(fn func(entry T, i int) bool) bool {
	return c.FindIndex(fn) >= 0
}

// Sort returns the entries ordered by cmp. The container keeps its order:
// entry order is owned by the mutation methods.
func (c *Container[T]) Sort(cmp func(a, b T) int) []T {
	out := c.Entries()
	slices.SortStableFunc(out, cmp)
	return out
}

// Reverse returns the entries in reverse order without reordering the
// container.
func (c *Container[T]) Reverse() []T {
	out := c.Entries()
	slices.Reverse(out)
	return out
}

// Map transforms every entry in order.
func Map[T, U any](c *Container[T], fn func(entry T, i int) U) []U {
	out := make([]U, 0, c.Len())
	for i, entry := range c.contents {
		out = append(out, fn(entry, i))
	}
	return out
}

// Reduce folds the entries from the head.
func Reduce[T, A any](c *Container[T], fn func(acc A, entry T, i int) A, initial A) A {
	acc := initial
	for i, entry := range c.contents {
		acc = fn(acc, entry, i)
	}
	return acc
}

// ReduceRight folds the entries from the tail.
func ReduceRight[T, A any](c *Container[T], fn func(acc A, entry T, i int) A, initial A) A {
	acc := initial
	for i := len(c.contents) - 1; i >= 0; i-- {
		acc = fn(acc, c.contents[i], i)
	}
	return acc
}

// Includes reports whether v is one of the entries.
func Includes[T comparable](c *Container[T], v T) bool {
	return slices.Contains(c.contents, v)
}

// IndexOf returns the index of v, or -1.
func IndexOf[T comparable](c *Container[T], v T) int {
	return slices.Index(c.contents, v)
}
