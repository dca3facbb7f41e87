package tokenize

import (
	"testing"

	"github.com/nihei9/glrcore/input"
	"github.com/nihei9/glrcore/table"
)

// buildDigitsDFA accepts one or more ASCII digits ('0'-'9') as term 2.
func buildDigitsDFA() *table.GroupDFA {
	return &table.GroupDFA{
		States: []table.DFAState{
			{ // state 0: no accept yet, edge on digits -> state 1
				GroupMask: 1,
				Edges:     []table.DFAEdge{{From: '0', To: '9' + 1, Next: 1}},
			},
			{ // state 1: accepts term 2, loops on further digits
				GroupMask: 1,
				Accepts:   []table.DFAAccept{{Term: 2, Mask: 1}},
				Edges:     []table.DFAEdge{{From: '0', To: '9' + 1, Next: 1}},
			},
		},
	}
}

func buildSpaceDFA() *table.GroupDFA {
	return &table.GroupDFA{
		States: []table.DFAState{
			{GroupMask: 1, Edges: []table.DFAEdge{{From: ' ', To: ' ' + 1, Next: 1}}},
			{GroupMask: 1, Accepts: []table.DFAAccept{{Term: 3, Mask: 1}}},
		},
	}
}

func testTables() *table.Tables {
	return &table.Tables{
		Terms: []table.TermInfo{{Name: "eof"}, {Name: "err"}, {Name: "num"}, {Name: "ws"}},
		Tokenizers: []table.Tokenizer{
			{Kind: table.KindGroupDFA, Group: buildSpaceDFA()},
			{Kind: table.KindGroupDFA, Group: buildDigitsDFA()},
		},
	}
}

func TestInterpreterMainTokenizesDigits(t *testing.T) {
	tabs := testTables()
	st := &table.ParseState{
		Actions:    []table.TermAction{{Term: 2, Action: table.Shift(1)}},
		Skip:       0,
		Tokenizers: []table.TokenizerID{1},
	}
	interp := NewInterpreter(tabs, NewRegistry(), table.AllDialects)
	s := input.NewStream(input.NewStringInput("123abc"), nil)

	tok, ok := interp.Main(s, st, nil, 1)
	if !ok {
		t.Fatalf("expected a token")
	}
	if tok.Value != 2 || tok.End != 3 {
		t.Fatalf("tok = %+v, want Value=2 End=3", tok)
	}
}

func TestInterpreterSkip(t *testing.T) {
	tabs := testTables()
	st := &table.ParseState{Skip: 0}
	interp := NewInterpreter(tabs, NewRegistry(), table.AllDialects)
	s := input.NewStream(input.NewStringInput("  123"), nil)

	tok, ok := interp.Skip(s, st, nil, 1)
	if !ok {
		t.Fatalf("expected a skip token")
	}
	if tok.Value != 3 || tok.End != 1 {
		t.Fatalf("tok = %+v, want Value=3 End=1", tok)
	}
}

// buildPlusDFA accepts a single '+' as term 4.
func buildPlusDFA() *table.GroupDFA {
	return &table.GroupDFA{
		States: []table.DFAState{
			{GroupMask: 1, Edges: []table.DFAEdge{{From: '+', To: '+' + 1, Next: 1}}},
			{GroupMask: 1, Accepts: []table.DFAAccept{{Term: 4, Mask: 1}}},
		},
	}
}

// TestInterpreterMainCacheIsKeyedPerTokenizerNotJustPosition guards against
// a GLR head in one state caching a token at a position and a different
// head, at the same position but using a disjoint tokenizer set, silently
// reading that cached result back out (spec.md §4.2: a token's identity is
// a function of position *and* which tokenizer/group mask produced it).
func TestInterpreterMainCacheIsKeyedPerTokenizerNotJustPosition(t *testing.T) {
	tabs := testTables()
	tabs.Terms = append(tabs.Terms, table.TermInfo{Name: "plus"})
	tabs.Tokenizers = append(tabs.Tokenizers, table.Tokenizer{Kind: table.KindGroupDFA, Group: buildPlusDFA()})

	interp := NewInterpreter(tabs, NewRegistry(), table.AllDialects)

	digitsState := &table.ParseState{
		Actions:    []table.TermAction{{Term: 2, Action: table.Shift(1)}},
		Tokenizers: []table.TokenizerID{1},
	}
	s1 := input.NewStream(input.NewStringInput("123"), nil)
	tok, ok := interp.Main(s1, digitsState, nil, 1)
	if !ok || tok.Value != 2 {
		t.Fatalf("digits head: tok = %+v, ok = %v, want Value=2", tok, ok)
	}

	plusState := &table.ParseState{
		Actions:    []table.TermAction{{Term: 4, Action: table.Shift(2)}},
		Tokenizers: []table.TokenizerID{2},
	}
	s2 := input.NewStream(input.NewStringInput("123"), nil)
	if _, ok := interp.Main(s2, plusState, nil, 1); ok {
		t.Fatalf("plus head at the same position must not reuse the digits head's cached token")
	}
}
