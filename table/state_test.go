package table

import "testing"

func TestParseStateLookupAlwaysReducePrefersShift(t *testing.T) {
	// spec.md §9: alwaysReduce coexisting with a shift must prefer the
	// shift when a matching terminal exists.
	s := &ParseState{
		Actions: []TermAction{
			{Term: 4, Action: Shift(7)},
		},
		HasAlwaysReduce: true,
		AlwaysReduce:    Reduce(2, 1),
	}

	got := s.Lookup(4)
	if !got.IsShift() || got.ShiftTarget() != 7 {
		t.Fatalf("Lookup(4) = %v, want shift to state 7", got)
	}

	got = s.Lookup(99)
	if !got.IsReduce() {
		t.Fatalf("Lookup(99) = %v, want the alwaysReduce fallback", got)
	}
}

func TestParseStateGotoAndRecover(t *testing.T) {
	s := &ParseState{
		Goto:    []TermGoto{{Term: 2, State: 5}, {Term: 8, State: 9}},
		Recover: []TermGoto{{Term: 3, State: 1}},
	}

	if st, ok := s.GetGoto(8); !ok || st != 9 {
		t.Fatalf("GetGoto(8) = (%v, %v), want (9, true)", st, ok)
	}
	if _, ok := s.GetGoto(100); ok {
		t.Fatalf("GetGoto(100) should not be found")
	}
	if st, ok := s.GetRecover(3); !ok || st != 1 {
		t.Fatalf("GetRecover(3) = (%v, %v), want (1, true)", st, ok)
	}
}

func TestParseStateActionsForReturnsAmbiguousRun(t *testing.T) {
	// A table compiled from an ambiguous grammar may carry a shift and a
	// reduce for the same terminal; spec.md §4.4 step 3 requires the
	// parser to fork on all of them.
	s := &ParseState{
		Actions: []TermAction{
			{Term: 4, Action: Shift(7)},
			{Term: 4, Action: Reduce(2, 1)},
			{Term: 6, Action: Shift(9)},
		},
	}

	got := s.ActionsFor(4)
	if len(got) != 2 {
		t.Fatalf("ActionsFor(4) = %v, want 2 entries", got)
	}
	if !got[0].IsShift() || got[0].ShiftTarget() != 7 {
		t.Fatalf("ActionsFor(4)[0] = %v, want shift to 7", got[0])
	}
	if !got[1].IsReduce() {
		t.Fatalf("ActionsFor(4)[1] = %v, want a reduce", got[1])
	}

	if got := s.ActionsFor(6); len(got) != 1 || !got[0].IsShift() {
		t.Fatalf("ActionsFor(6) = %v, want a single shift", got)
	}
	if got := s.ActionsFor(99); got != nil {
		t.Fatalf("ActionsFor(99) = %v, want nil", got)
	}
}

func TestActionEncoding(t *testing.T) {
	a := Reduce(TermID(12), 5)
	if !a.IsReduce() {
		t.Fatalf("expected a reduce action")
	}
	if a.ReduceTerm() != 12 || a.ReduceDepth() != 5 {
		t.Fatalf("ReduceTerm/ReduceDepth = (%v, %v), want (12, 5)", a.ReduceTerm(), a.ReduceDepth())
	}

	sh := Shift(42)
	if !sh.IsShift() || sh.ShiftTarget() != 42 {
		t.Fatalf("Shift encoding broken: %v", sh)
	}

	if !Accept.IsAccept() {
		t.Fatalf("Accept.IsAccept() should be true")
	}
}

func TestRowDisplacementMatrixRoundTrip(t *testing.T) {
	const empty = -1
	entries := []int{
		empty, 1, empty, empty,
		empty, empty, 2, empty,
		3, empty, empty, empty,
	}
	m, err := NewDenseMatrix(entries, 4)
	if err != nil {
		t.Fatalf("NewDenseMatrix: %v", err)
	}
	c := CompressRowDisplacement(m, empty)

	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			want := entries[row*4+col]
			got, err := c.Lookup(row, col)
			if err != nil {
				t.Fatalf("Lookup(%v,%v): %v", row, col, err)
			}
			if got != want {
				t.Fatalf("Lookup(%v,%v) = %v, want %v", row, col, got, want)
			}
		}
	}
}
