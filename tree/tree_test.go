package tree

import (
	"testing"

	"github.com/nihei9/glrcore/stack"
	"github.com/nihei9/glrcore/table"
)

// tagged term IDs: odd low bit per table.TermID.Tagged().
const (
	termA table.TermID = 3 // tagged leaf
	termS table.TermID = 5 // tagged non-terminal
)

func TestBuilderSimpleRepeat(t *testing.T) {
	// S -> a a a, flat postfix quads: three leaves then one reduction of
	// depth 3, mirroring spec.md §8 scenario 1 (S -> "a"+ over "aaa").
	quads := []stack.Quad{
		{Tag: termA, Start: 0, End: 1, ChildCount: 0},
		{Tag: termA, Start: 1, End: 2, ChildCount: 0},
		{Tag: termA, Start: 2, End: 3, ChildCount: 0},
		{Tag: termS, Start: 0, End: 3, ChildCount: 3},
	}
	b := NewBuilder()
	tr := b.Build(quads)

	if tr.Length != 3 {
		t.Fatalf("root length = %v, want 3", tr.Length)
	}
	cur := NewCursor(tr)
	var types []table.TermID
	var starts []int
	for cur.Next() {
		n := cur.Node()
		types = append(types, n.Type)
		starts = append(starts, n.Start)
	}
	want := []table.TermID{termS, termA, termA, termA}
	if len(types) != len(want) {
		t.Fatalf("got %v tagged nodes, want %v", len(types), len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("node %v type = %v, want %v", i, types[i], want[i])
		}
	}
	if starts[1] != 0 || starts[2] != 1 || starts[3] != 2 {
		t.Fatalf("leaf starts = %v, want [0 1 2]", starts[1:])
	}
}

func TestResolveFindsInnermostTaggedNode(t *testing.T) {
	quads := []stack.Quad{
		{Tag: termA, Start: 0, End: 1, ChildCount: 0},
		{Tag: termA, Start: 1, End: 2, ChildCount: 0},
		{Tag: termS, Start: 0, End: 2, ChildCount: 2},
	}
	tr := NewBuilder().Build(quads)

	ctx := tr.Resolve(1)
	if ctx == nil || ctx.Type != termA || ctx.Start != 1 {
		t.Fatalf("Resolve(1) = %+v, want the second leaf", ctx)
	}
	if ctx.Parent == nil || ctx.Parent.Type != termS {
		t.Fatalf("Resolve(1).Parent = %+v, want termS", ctx.Parent)
	}
}

func TestBuildWithReuseSplicesOriginalChild(t *testing.T) {
	reusedLeaf := &Tree{Tag: termA, Length: 1, LookAhead: 1}
	quads := []stack.Quad{
		{Tag: termA, Start: 0, End: 1, ChildCount: 0},
		{Tag: termS, Start: 0, End: 1, ChildCount: 1},
	}
	tr := (&Builder{Threshold: 1}).BuildWithReuse(quads, map[int]Child{0: reusedLeaf})

	if len(tr.Children) != 1 || tr.Children[0] != Child(reusedLeaf) {
		t.Fatalf("root child = %+v, want the exact reused leaf object", tr.Children)
	}
}

func TestBuilderLargeSubtreeBecomesHeavyNode(t *testing.T) {
	b := &Builder{Threshold: 2}
	quads := []stack.Quad{
		{Tag: termA, Start: 0, End: 1},
		{Tag: termA, Start: 1, End: 2},
		{Tag: termA, Start: 2, End: 3},
		{Tag: termS, Start: 0, End: 3, ChildCount: 3},
	}
	tr := b.Build(quads)
	if tr.Tag != termS || len(tr.Children) != 3 {
		t.Fatalf("root = %+v, want the heavy S node with 3 children", tr)
	}
	// Regardless of the threshold forcing a heavy Tree node instead of a
	// packed TreeBuffer, the logical shape (tagged nodes, positions) must
	// be identical to the packed case.
	cur := NewCursor(tr)
	count := 0
	for cur.Next() {
		count++
	}
	if count != 4 {
		t.Fatalf("got %v tagged nodes with a low threshold, want 4 (same shape)", count)
	}
}

func TestSExprIdenticalAcrossPackedAndHeavyRepresentation(t *testing.T) {
	quads := []stack.Quad{
		{Tag: termA, Start: 0, End: 1, ChildCount: 0},
		{Tag: termA, Start: 1, End: 2, ChildCount: 0},
		{Tag: termA, Start: 2, End: 3, ChildCount: 0},
		{Tag: termS, Start: 0, End: 3, ChildCount: 3},
	}
	packed := (&Builder{Threshold: 32}).Build(quads)
	heavy := (&Builder{Threshold: 1}).Build(quads)

	want := "(5 (3) (3) (3))"
	if got := packed.SExpr(nil); got != want {
		t.Fatalf("packed SExpr = %q, want %q", got, want)
	}
	if got := heavy.SExpr(nil); got != want {
		t.Fatalf("heavy SExpr = %q, want %q (spec.md §4.6: representation must not change shape)", got, want)
	}
}
