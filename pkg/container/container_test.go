package container

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type entry struct {
	id    int
	value any
}

type recorder struct {
	created []string
	deleted []string
	live    map[*entry]bool
	seq     int
}

func newRecorded() (*Container[*entry], *recorder) {
	rec := &recorder{live: make(map[*entry]bool)}
	c := New(Hooks[*entry]{
		New: func() *entry {
			rec.seq++
			return &entry{id: rec.seq}
		},
		Create: func(e *entry, at Position) {
			rec.live[e] = true
			rec.created = append(rec.created, fmt.Sprintf("%d@%d/%d", e.id, at.Index, at.Len))
		},
		Populate: func(e *entry, src any) {
			e.value = src
		},
		Delete: func(e *entry, at Position) {
			if !rec.live[e] {
				panic("deleted an entry that was never created")
			}
			delete(rec.live, e)
			rec.deleted = append(rec.deleted, fmt.Sprintf("%d@%d/%d", e.id, at.Index, at.Len))
		},
	})
	return c, rec
}

func values(c *Container[*entry]) []any {
	return Map(c, func(e *entry, _ int) any { return e.value })
}

func TestPushSplice_IndexCorrectness(t *testing.T) {
	c, _ := newRecorded()
	c.Push("a", "b", "c")
	removed := c.Splice(1, 1, "d")

	if diff := cmp.Diff([]any{"a", "d", "c"}, values(c)); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if len(removed) != 1 || removed[0].value != "b" {
		t.Fatalf("expected b to be removed, got %+v", removed)
	}
}

func TestUnshift_KeepsCallOrder(t *testing.T) {
	c, rec := newRecorded()
	c.Push("z")
	if n := c.Unshift("x", "y"); n != 3 {
		t.Fatalf("unexpected length %d", n)
	}

	if diff := cmp.Diff([]any{"x", "y", "z"}, values(c)); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	want := []string{"1@0/0", "2@0/1", "3@0/2"}
	if diff := cmp.Diff(want, rec.created); diff != "" {
		t.Fatalf("create positions mismatch (-want +got):\n%s", diff)
	}
}

func TestPopShift(t *testing.T) {
	c, rec := newRecorded()
	c.Push("a", "b", "c")

	last, ok := c.Pop()
	if !ok || last.value != "c" {
		t.Fatalf("unexpected pop %+v", last)
	}
	first, ok := c.Shift()
	if !ok || first.value != "a" {
		t.Fatalf("unexpected shift %+v", first)
	}
	if diff := cmp.Diff([]string{"3@2/2", "1@0/1"}, rec.deleted); diff != "" {
		t.Fatalf("delete positions mismatch (-want +got):\n%s", diff)
	}

	c.Clear()
	if _, ok := c.Pop(); ok {
		t.Fatalf("pop on empty container must report false")
	}
	if _, ok := c.Shift(); ok {
		t.Fatalf("shift on empty container must report false")
	}
}

func TestSetLen(t *testing.T) {
	c, rec := newRecorded()
	c.SetLen(3)
	if c.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", c.Len())
	}
	if c.At(0).value != nil {
		t.Fatalf("grown entries must be empty")
	}
	c.SetLen(1)
	if c.Len() != 1 || len(rec.deleted) != 2 {
		t.Fatalf("expected tail entries popped, got len=%d deleted=%v", c.Len(), rec.deleted)
	}
}

func TestSymmetry(t *testing.T) {
	c, rec := newRecorded()
	c.Push(1, 2, 3)
	c.Splice(1, 1, 4, 5)
	c.Pop()
	c.Unshift(6)
	c.Shift()
	c.Splice(-1, 5)
	c.Push(7)
	c.Clear()

	if len(rec.created) != len(rec.deleted) {
		t.Fatalf("created %d entries, deleted %d", len(rec.created), len(rec.deleted))
	}
	if len(rec.live) != 0 {
		t.Fatalf("expected no live entries, got %d", len(rec.live))
	}
}

func TestSplice_Clamps(t *testing.T) {
	c, _ := newRecorded()
	c.Push("a", "b")
	removed := c.Splice(5, 3, "c")
	if len(removed) != 0 {
		t.Fatalf("expected nothing removed, got %d", len(removed))
	}
	removed = c.Splice(-2, 1)
	if len(removed) != 1 || removed[0].value != "b" {
		t.Fatalf("negative start should count from the tail, got %+v", removed)
	}
	if diff := cmp.Diff([]any{"a", "c"}, values(c)); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestPassthroughs(t *testing.T) {
	c, _ := newRecorded()
	c.Push("pear", "apple", "fig")

	byValue := func(e *entry) string { return e.value.(string) }

	sorted := c.Sort(func(a, b *entry) int { return strings.Compare(byValue(a), byValue(b)) })
	if got := []string{byValue(sorted[0]), byValue(sorted[1]), byValue(sorted[2])}; !cmp.Equal(got, []string{"apple", "fig", "pear"}) {
		t.Fatalf("unexpected sort %v", got)
	}
	if byValue(c.At(0)) != "pear" {
		t.Fatalf("sort must not reorder the container")
	}
	if rev := c.Reverse(); byValue(rev[0]) != "fig" || byValue(c.At(0)) != "pear" {
		t.Fatalf("reverse must return a reversed copy")
	}

	long := c.Filter(func(e *entry, _ int) bool { return len(byValue(e)) > 3 })
	if len(long) != 2 {
		t.Fatalf("unexpected filter result %d", len(long))
	}
	if found, ok := c.Find(func(e *entry, _ int) bool { return byValue(e) == "fig" }); !ok || found != c.At(2) {
		t.Fatalf("find failed")
	}
	if idx := c.FindIndex(func(e *entry, _ int) bool { return byValue(e) == "kiwi" }); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
	if !c.Every(func(e *entry, _ int) bool { return byValue(e) != "" }) || !c.Some(func(e *entry, i int) bool { return i == 1 }) {
		t.Fatalf("every/some mismatch")
	}
	total := Reduce(c, func(acc int, e *entry, _ int) int { return acc + len(byValue(e)) }, 0)
	if total != 12 {
		t.Fatalf("unexpected reduce %d", total)
	}
	joined := ReduceRight(c, func(acc string, e *entry, _ int) string { return acc + byValue(e)[:1] }, "")
	if joined != "fap" {
		t.Fatalf("unexpected reduceRight %q", joined)
	}
	if !Includes(c, c.At(1)) || IndexOf(c, c.At(2)) != 2 {
		t.Fatalf("includes/indexOf mismatch")
	}
	if diff := cmp.Diff([]int{0, 1, 2}, c.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	var seen []int
	for i := range c.All() {
		seen = append(seen, i)
	}
	if len(seen) != 3 {
		t.Fatalf("expected iteration over 3 entries, got %v", seen)
	}
	count := 0
	c.ForEach(func(*entry, int) { count++ })
	if count != 3 {
		t.Fatalf("forEach visited %d entries", count)
	}
	if got := len(c.Entries()); got != 3 {
		t.Fatalf("entries returned %d", got)
	}
}
