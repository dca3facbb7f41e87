// Package tree implements the dual syntax-tree representation of spec.md
// §3/§4.6: heavy Tree nodes for larger or tree-spanning subtrees, and
// packed TreeBuffers for dense runs of small nodes, plus the cursor API of
// §4.8 that hides the split from callers.
package tree

import "github.com/nihei9/glrcore/table"

// Child is anything that can sit in a Tree's Children slice: either another
// Tree or a TreeBuffer. Modeled as a tagged union via this narrow interface
// rather than inheritance, per spec.md §9.
type Child interface {
	Len() int
}

// Tree is a node of the heavy representation: parallel Children/Positions
// arrays, as spec.md §3 describes. Tag 0 with Tagged() false marks a
// headerless container (an anonymous grouping, e.g. a repeat operator's
// wrapper) rather than a tree-visible Node; callers distinguish the two
// with Tagged().
type Tree struct {
	Tag    table.TermID
	Length int

	// Children and Positions are parallel: Positions[i] is Children[i]'s
	// start, relative to this Tree's own start.
	Children  []Child
	Positions []int

	// LookAhead is the furthest position (in the coordinate system this
	// tree was parsed in) inspected while building this subtree. The
	// incremental-reuse layer uses Start+LookAhead to decide whether the
	// subtree's tokenization decisions are still valid after an edit
	// (spec.md §4.7).
	LookAhead int
}

func (t *Tree) Len() int { return t.Length }

// Tagged reports whether this Tree is a real output node (as opposed to an
// anonymous grouping container).
func (t *Tree) Tagged() bool { return t.Tag.Tagged() }

// Quad is one entry of a TreeBuffer, in prefix order: (tag, relStart,
// relEnd, childCount), per spec.md §3.
type Quad struct {
	Tag        table.TermID
	RelStart   int
	RelEnd     int
	ChildCount int
}

// TreeBuffer is a densely packed run of small nodes, stored as a flat quad
// array in prefix order (reversed from the postfix order quads arrive in on
// the GSS head's buffer; see builder.go). TreeBuffers are atomic for
// incremental reuse: spec.md §4.7 says a single touched quad discards the
// whole buffer.
type TreeBuffer struct {
	Length int
	Quads  []Quad

	// LookAhead mirrors Tree.LookAhead: buffers are atomic for reuse, so
	// one scalar for the whole packed run suffices (spec.md §4.7).
	LookAhead int
}

func (b *TreeBuffer) Len() int { return b.Length }

// childCount returns the ChildCount of the quad at index i of Quads.
func (b *TreeBuffer) childCount(i int) int {
	return b.Quads[i].ChildCount
}
