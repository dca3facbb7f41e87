package reuse

import (
	"testing"

	"github.com/nihei9/glrcore/stack"
	"github.com/nihei9/glrcore/table"
	"github.com/nihei9/glrcore/tree"
)

const (
	termNum  table.TermID = 3
	termPlus table.TermID = 7
	termExpr table.TermID = 9
)

// buildExprTree builds the prior parse of "1+2": num(1) "+" num(2), forced
// into heavy Tree nodes (threshold 1) so individual leaves are distinct
// objects rather than one packed buffer.
func buildExprTree() *tree.Tree {
	quads := []stack.Quad{
		{Tag: termNum, Start: 0, End: 1, ChildCount: 0},
		{Tag: termPlus, Start: 1, End: 2, ChildCount: 0},
		{Tag: termNum, Start: 2, End: 3, ChildCount: 0},
		{Tag: termExpr, Start: 0, End: 3, ChildCount: 3},
	}
	b := &tree.Builder{Threshold: 1}
	return b.Build(quads)
}

func TestBuildRetainsLeavesOutsideEditedSpan(t *testing.T) {
	prior := buildExprTree()
	numLeft := prior.Children[0]
	numRight := prior.Children[2]

	// Replace the single "+" character with "-": same span, same length.
	ranges := []ChangedRange{
		{FromA: 1, ToA: 2, FromB: 1, ToB: 2},
	}
	m := Build(prior, ranges)

	if m.Len() != 2 {
		t.Fatalf("got %v reused entries, want 2 (the two num leaves)", m.Len())
	}

	left, ok := m.Lookup(0)
	if !ok || left.Tag != termNum || left.Node != numLeft {
		t.Fatalf("Lookup(0) = %+v, ok=%v, want the original left num leaf", left, ok)
	}
	right, ok := m.Lookup(2)
	if !ok || right.Tag != termNum || right.Node != numRight {
		t.Fatalf("Lookup(2) = %+v, ok=%v, want the original right num leaf", right, ok)
	}

	if _, ok := m.Lookup(1); ok {
		t.Fatalf("Lookup(1) reused the edited operator, want it discarded")
	}
}

func TestBuildReusesWholeSubtreeForTrailingInsert(t *testing.T) {
	prior := buildExprTree()

	// Append "+3" after "1+2": the whole prior tree is untouched.
	ranges := []ChangedRange{
		{FromA: 3, ToA: 3, FromB: 3, ToB: 5},
	}
	m := Build(prior, ranges)

	if m.Len() != 1 {
		t.Fatalf("got %v reused entries, want 1 (the whole expr)", m.Len())
	}
	e, ok := m.Lookup(0)
	if !ok || e.Tag != termExpr || e.Node != prior {
		t.Fatalf("Lookup(0) = %+v, ok=%v, want the whole prior expr reused", e, ok)
	}
	if e.End != 3 {
		t.Fatalf("reused end = %v, want 3", e.End)
	}
}

func TestInvalidateFromReportsEarliestTouchedPosition(t *testing.T) {
	ranges := []ChangedRange{
		{FromA: 10, ToA: 12, FromB: 10, ToB: 11},
		{FromA: 2, ToA: 2, FromB: 2, ToB: 4},
	}
	if got := InvalidateFrom(ranges); got != 2 {
		t.Fatalf("InvalidateFrom = %v, want 2", got)
	}
	if got := InvalidateFrom(nil); got != -1 {
		t.Fatalf("InvalidateFrom(nil) = %v, want -1", got)
	}
}
