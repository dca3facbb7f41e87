package stack

import (
	"testing"

	"github.com/nihei9/glrcore/table"
)

func TestForkCopiesBufferIndependently(t *testing.T) {
	root := NewRoot(0)
	root.AppendQuad(Quad{Tag: 1, Start: 0, End: 1})

	fork := root.Fork()
	fork.AppendQuad(Quad{Tag: 2, Start: 1, End: 2})

	if len(root.Buffer) != 1 {
		t.Fatalf("root.Buffer mutated by fork: %+v", root.Buffer)
	}
	if len(fork.Buffer) != 2 {
		t.Fatalf("fork.Buffer = %+v, want 2 entries", fork.Buffer)
	}
}

func TestPushAndPopN(t *testing.T) {
	root := NewRoot(0)
	a := root.Push(1)
	b := a.Push(2)
	c := b.Push(3)

	if c.PopN(2) != a {
		t.Fatalf("PopN(2) from c should reach a")
	}
	if c.PopN(0) != c {
		t.Fatalf("PopN(0) should be a no-op")
	}
}

func TestMergeKeepsHigherScoringHead(t *testing.T) {
	low := &Head{State: 5, Pos: 10, Score: 1}
	high := &Head{State: 5, Pos: 10, Score: 9}
	other := &Head{State: 6, Pos: 10, Score: 0}

	merged := Merge([]*Head{low, high, other})
	if len(merged) != 2 {
		t.Fatalf("Merge result = %v heads, want 2", len(merged))
	}

	var survivor *Head
	for _, h := range merged {
		if h.State == 5 {
			survivor = h
		}
	}
	if survivor != high {
		t.Fatalf("Merge should keep the higher-scoring head at (state 5, pos 10)")
	}
}

func TestPruneBoundsFrontier(t *testing.T) {
	heads := make([]*Head, 0, 40)
	for i := 0; i < 40; i++ {
		heads = append(heads, &Head{State: table.StateID(i), Score: i})
	}
	kept := Prune(heads, 32, 0)
	if len(kept) != 32 {
		t.Fatalf("Prune kept %v heads, want 32", len(kept))
	}
	// The 8 lowest-scoring heads (0..7) must have been dropped.
	for _, h := range kept {
		if h.Score < 8 {
			t.Fatalf("Prune kept a low-scoring head: %+v", h)
		}
	}
}
