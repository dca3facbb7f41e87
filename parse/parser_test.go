package parse

import (
	"testing"

	"github.com/nihei9/glrcore/input"
	"github.com/nihei9/glrcore/table"
)

// Terms for a minimal left-recursive expression grammar:
//
//	E -> E PLUS NUM | NUM
//
// chosen so every tagged id is odd and every untagged one even, per
// table.TermID.Tagged.
const (
	termEOF  table.TermID = 0
	termErr  table.TermID = 1
	termNum  table.TermID = 3
	termPlus table.TermID = 5
	termExpr table.TermID = 7
)

func digitsDFA() *table.GroupDFA {
	return &table.GroupDFA{
		States: []table.DFAState{
			{GroupMask: 1, Edges: []table.DFAEdge{{From: '0', To: '9' + 1, Next: 1}}},
			{
				GroupMask: 1,
				Accepts:   []table.DFAAccept{{Term: termNum, Mask: 1}},
				Edges:     []table.DFAEdge{{From: '0', To: '9' + 1, Next: 1}},
			},
		},
	}
}

func plusDFA() *table.GroupDFA {
	return &table.GroupDFA{
		States: []table.DFAState{
			{GroupMask: 1, Edges: []table.DFAEdge{{From: '+', To: '+' + 1, Next: 1}}},
			{GroupMask: 1, Accepts: []table.DFAAccept{{Term: termPlus, Mask: 1}}},
		},
	}
}

// exprTables builds a hand-written 5-state table for E -> E PLUS NUM | NUM:
//
//	0: start, expect NUM           -- shift NUM -> 1, goto E -> 2
//	1: just shifted NUM            -- always reduce E -> NUM (depth 1)
//	2: have an E                   -- shift PLUS -> 3, accept on EOF
//	3: just shifted PLUS           -- shift NUM -> 4
//	4: just shifted the second NUM -- always reduce E -> E PLUS NUM (depth 3)
func exprTables() *table.Tables {
	return &table.Tables{
		Terms: []table.TermInfo{
			int(termEOF):  {Name: "eof"},
			int(termErr):  {Name: "err"},
			int(termNum):  {Name: "num"},
			int(termPlus): {Name: "plus"},
			int(termExpr): {Name: "expr"},
		},
		Tokenizers: []table.Tokenizer{
			{Kind: table.KindGroupDFA, Group: digitsDFA()},
			{Kind: table.KindGroupDFA, Group: plusDFA()},
		},
		States: []table.ParseState{
			{
				ID:         0,
				Actions:    []table.TermAction{{Term: termNum, Action: table.Shift(1)}},
				Goto:       []table.TermGoto{{Term: termExpr, State: 2}},
				GroupMask:  1,
				Skip:       table.NoTokenizer,
				Tokenizers: []table.TokenizerID{0},
			},
			{
				ID:              1,
				Skip:            table.NoTokenizer,
				HasAlwaysReduce: true,
				AlwaysReduce:    table.Reduce(termExpr, 1),
			},
			{
				ID: 2,
				Actions: []table.TermAction{
					{Term: termEOF, Action: table.Accept},
					{Term: termPlus, Action: table.Shift(3)},
				},
				GroupMask:  1,
				Skip:       table.NoTokenizer,
				Tokenizers: []table.TokenizerID{1},
			},
			{
				ID:         3,
				Actions:    []table.TermAction{{Term: termNum, Action: table.Shift(4)}},
				GroupMask:  1,
				Skip:       table.NoTokenizer,
				Tokenizers: []table.TokenizerID{0},
			},
			{
				ID:              4,
				Skip:            table.NoTokenizer,
				HasAlwaysReduce: true,
				AlwaysReduce:    table.Reduce(termExpr, 3),
			},
		},
		EOFTerm:      termEOF,
		ErrTerm:      termErr,
		InitialState: 0,
		StartTerm:    termExpr,
	}
}

func TestParseBuildsTreeCoveringWholeInput(t *testing.T) {
	tabs := exprTables()
	p := New(tabs)

	r, err := p.Parse(input.NewStringInput("1+2"), nil, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !r.Done() {
		t.Fatalf("expected an unbudgeted parse to finish in one Continue")
	}
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	tr := r.Tree()
	if tr == nil {
		t.Fatalf("Tree() = nil")
	}
	if tr.Len() != 3 {
		t.Fatalf("tree covers length %d, want 3", tr.Len())
	}
}

func TestParseRecoversFromUnexpectedLeadingInput(t *testing.T) {
	tabs := exprTables()
	p := New(tabs)

	r, err := p.Parse(input.NewStringInput("@12"), nil, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !r.Done() {
		t.Fatalf("expected recovery to still finish the parse")
	}
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a recorded syntax error")
	}
	tr := r.Tree()
	if tr == nil || tr.Len() != 3 {
		t.Fatalf("Tree() = %+v, want a tree covering all 3 bytes", tr)
	}
}

func TestParseResumeMatchesUnbudgetedResult(t *testing.T) {
	tabs := exprTables()

	full, err := New(tabs).Parse(input.NewStringInput("1+2"), nil, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wantLen := full.Tree().Len()

	r, err := New(tabs).Parse(input.NewStringInput("1+2"), nil, 1)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	steps := 0
	for !r.Done() && steps < 1000 {
		r, err = r.Continue(1)
		if err != nil {
			t.Fatalf("Continue: %v", err)
		}
		steps++
	}
	if !r.Done() {
		t.Fatalf("budgeted parse never finished after %d single-step resumes", steps)
	}
	if steps < 2 {
		t.Fatalf("expected a budget of 1 to take more than one Continue, got %d", steps)
	}
	if r.Tree().Len() != wantLen {
		t.Fatalf("resumed tree length = %d, want %d", r.Tree().Len(), wantLen)
	}
}

func TestParseCancelProducesPartialTreeWithError(t *testing.T) {
	tabs := exprTables()
	calls := 0
	p := New(tabs, WithCancel(func() bool {
		calls++
		return calls > 1
	}))

	r, err := p.Parse(input.NewStringInput("1+2"), nil, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !r.Done() {
		t.Fatalf("expected cancellation to finish the parse")
	}
	if len(r.Errors()) == 0 {
		t.Fatalf("expected a cancellation error recorded")
	}
	if r.Tree() == nil {
		t.Fatalf("expected a (possibly partial) tree even when cancelled")
	}
}
