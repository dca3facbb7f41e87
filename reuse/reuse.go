// Package reuse implements incremental reuse: matching subtrees of a prior
// parse against a list of edits so the parser can skip reparsing spans that
// did not change, per spec.md §4.7.
package reuse

import (
	"github.com/nihei9/glrcore/table"
	"github.com/nihei9/glrcore/tree"
)

// ChangedRange describes one edit as a pre-edit/post-edit coordinate pair.
// A list of ChangedRanges must be sorted by FromA and non-overlapping.
type ChangedRange struct {
	FromA, ToA int
	FromB, ToB int
}

// InvalidateFrom returns the earliest pre-edit position any range touches,
// for callers that need to drop cached tokens from that point on (see
// tokenize.Interpreter.InvalidateFrom). Returns -1 for an empty list.
func InvalidateFrom(ranges []ChangedRange) int {
	if len(ranges) == 0 {
		return -1
	}
	from := ranges[0].FromA
	for _, r := range ranges[1:] {
		if r.FromA < from {
			from = r.FromA
		}
	}
	return from
}

// gap is a maximal pre-edit span left untouched by any ChangedRange, plus
// the constant offset that maps a position within it to post-edit
// coordinates.
type gap struct {
	from, to int
	offset   int
}

const infinite = int(^uint(0) >> 1)

func buildGaps(ranges []ChangedRange) []gap {
	gaps := make([]gap, 0, len(ranges)+1)
	prevToA, prevToB := 0, 0
	for _, r := range ranges {
		if r.FromA > prevToA {
			gaps = append(gaps, gap{from: prevToA, to: r.FromA, offset: prevToB - prevToA})
		}
		prevToA, prevToB = r.ToA, r.ToB
	}
	gaps = append(gaps, gap{from: prevToA, to: infinite, offset: prevToB - prevToA})
	return gaps
}

func findGap(gaps []gap, pos int) *gap {
	for i := range gaps {
		if pos >= gaps[i].from && pos < gaps[i].to {
			return &gaps[i]
		}
	}
	return nil
}

// Entry is one reusable subtree, indexed by its start in post-edit
// coordinates.
type Entry struct {
	Tag        table.TermID
	Node       tree.Child
	Start, End int

	// LookAhead is the subtree's own furthest-inspected position, in
	// post-edit coordinates. The parser folds this into the shift quad it
	// records for the reused subtree, so a later edit can still correctly
	// judge whether this span may be reused again.
	LookAhead int
}

// Map indexes the subtrees of a prior parse that survive a set of edits,
// keyed by their post-edit start position. The parser consults it before
// tokenizing: at a position where a reusable subtree begins and whose tag
// has a valid goto from the current state, it shifts the subtree in one
// step instead of parsing its contents (spec.md §4.7).
type Map struct {
	byStart map[int]Entry
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{byStart: map[int]Entry{}}
}

func (m *Map) add(e Entry) {
	m.byStart[e.Start] = e
}

// Lookup reports the reusable subtree starting at pos, if any.
func (m *Map) Lookup(pos int) (Entry, bool) {
	e, ok := m.byStart[pos]
	return e, ok
}

// Len reports how many subtrees were retained.
func (m *Map) Len() int {
	return len(m.byStart)
}

// Build walks prior against ranges and returns the subtrees whose pre-edit
// span, extended by their own recorded lookAhead, lies entirely within one
// unchanged gap.
//
// The source this is modeled on cuts gaps exactly at each ChangedRange's
// boundary, which loses a subtree whose tokenizer peeked one character past
// that cut (a documented FIXME). Checking the subtree's actual LookAhead
// against the gap bound instead of a fixed boundary fixes this: a subtree
// that peeked into the changed region is excluded because its lookAhead
// pushes it past the gap, not because of an arbitrary margin, and a
// subtree that stayed within the gap is kept regardless of how close its
// tokenizer came to the edit.
func Build(prior *tree.Tree, ranges []ChangedRange) *Map {
	m := NewMap()
	gaps := buildGaps(ranges)
	walkTree(prior, 0, gaps, m)
	return m
}

func walkTree(t *tree.Tree, base int, gaps []gap, m *Map) {
	start := base
	end := base + t.Length
	look := base + t.LookAhead

	if g := findGap(gaps, start); g != nil && end <= g.to && look <= g.to {
		if t.Tagged() {
			m.add(Entry{Tag: t.Tag, Node: t, Start: start + g.offset, End: end + g.offset, LookAhead: look + g.offset})
			return
		}
	}

	for i, ch := range t.Children {
		childBase := base + t.Positions[i]
		switch c := ch.(type) {
		case *tree.Tree:
			walkTree(c, childBase, gaps, m)
		case *tree.TreeBuffer:
			walkBuffer(c, childBase, gaps, m)
		}
	}
}

// walkBuffer treats b as atomic: per spec.md §4.7, a TreeBuffer is reused
// whole or not at all, never partially.
func walkBuffer(b *tree.TreeBuffer, base int, gaps []gap, m *Map) {
	if len(b.Quads) == 0 {
		return
	}
	start := base
	end := base + b.Length
	look := base + b.LookAhead

	g := findGap(gaps, start)
	if g == nil || end > g.to || look > g.to {
		return
	}

	root := b.Quads[0]
	if !root.Tag.Tagged() {
		return
	}
	m.add(Entry{Tag: root.Tag, Node: b, Start: start + g.offset, End: end + g.offset, LookAhead: look + g.offset})
}
