package table

import "golang.org/x/exp/slices"

// TermAction is one (terminal, action) entry of a ParseState's action table.
type TermAction struct {
	Term   TermID
	Action Action
}

// TermGoto is one (non-terminal, target-state) entry of a ParseState's goto
// table, or, when reused for recovery, one (terminal, target-state) entry.
type TermGoto struct {
	Term  TermID
	State StateID
}

// ParseState is immutable and referenced by ID. It carries the per-state
// action, goto, recovery and default-reduce data described in spec.md §3.
// The pair lists are kept sorted by Term so lookups are a binary search
// (grounded in npillmayer-gorgo/lr/tables.go's use of sorted associative
// containers for table data).
type ParseState struct {
	ID StateID

	// Actions is sorted by Term.
	Actions []TermAction

	// Goto is sorted by Term (a non-terminal TermID).
	Goto []TermGoto

	// Recover is sorted by Term; each entry names a terminal that panic-mode
	// recovery can skip forward to and the state to resume in.
	Recover []TermGoto

	// HasAlwaysReduce/AlwaysReduce: a reduce action taken unconditionally
	// when no shift applies to the looked-ahead token. Per spec.md §9, when
	// both a matching shift and AlwaysReduce are present, the shift wins;
	// see Lookup.
	HasAlwaysReduce bool
	AlwaysReduce    Action

	// HasDefaultReduce/DefaultReduce: a reduce to fall back to when the next
	// token matches no action.
	HasDefaultReduce bool
	DefaultReduce    Action

	// GroupMask selects which tokenizer sub-DFA this state belongs to
	// (spec.md Glossary: "used to prune unreachable token searches").
	// Passed straight through to the tokenizer interpreter.
	GroupMask uint32

	// Skip is the tokenizer producing "skip" tokens (whitespace, comments)
	// for this state, or NoTokenizer.
	Skip TokenizerID

	// Tokenizers lists the tokenizers tried, in priority order, for this
	// state.
	Tokenizers []TokenizerID
}

// hasAction performs an associative lookup into Actions.
func (s *ParseState) hasAction(term TermID) (Action, bool) {
	i, ok := slices.BinarySearchFunc(s.Actions, term, func(e TermAction, t TermID) int {
		return int(e.Term) - int(t)
	})
	if !ok {
		return ActionZero, false
	}
	return s.Actions[i].Action, true
}

// Lookup resolves the action to take for a terminal, applying spec.md §9's
// explicit alwaysReduce-vs-shift precedence: a matching shift in Actions
// always wins over AlwaysReduce.
func (s *ParseState) Lookup(term TermID) Action {
	if act, ok := s.hasAction(term); ok {
		return act
	}
	if s.HasAlwaysReduce {
		return s.AlwaysReduce
	}
	if s.HasDefaultReduce {
		return s.DefaultReduce
	}
	return ActionZero
}

// ActionsFor returns every action entry for term. Actions is normally dense
// (one entry per shiftable/reducible terminal), but a table compiled from an
// ambiguous grammar may carry several entries for the same terminal — a
// shift and one or more reduces, or several reduces — which is exactly the
// case spec.md §4.4 step 3 requires the parser to fork on. The slice is
// sorted so the matching run, if any, is contiguous around the binary
// search hit.
func (s *ParseState) ActionsFor(term TermID) []Action {
	i, ok := slices.BinarySearchFunc(s.Actions, term, func(e TermAction, t TermID) int {
		return int(e.Term) - int(t)
	})
	if !ok {
		return nil
	}
	lo, hi := i, i+1
	for lo > 0 && s.Actions[lo-1].Term == term {
		lo--
	}
	for hi < len(s.Actions) && s.Actions[hi].Term == term {
		hi++
	}
	out := make([]Action, hi-lo)
	for j := lo; j < hi; j++ {
		out[j-lo] = s.Actions[j].Action
	}
	return out
}

// GetGoto performs an associative lookup over Goto.
func (s *ParseState) GetGoto(nonTerminal TermID) (StateID, bool) {
	i, ok := slices.BinarySearchFunc(s.Goto, nonTerminal, func(e TermGoto, t TermID) int {
		return int(e.Term) - int(t)
	})
	if !ok {
		return 0, false
	}
	return s.Goto[i].State, true
}

// GetRecover performs an associative lookup over Recover.
func (s *ParseState) GetRecover(term TermID) (StateID, bool) {
	i, ok := slices.BinarySearchFunc(s.Recover, term, func(e TermGoto, t TermID) int {
		return int(e.Term) - int(t)
	})
	if !ok {
		return 0, false
	}
	return s.Recover[i].State, true
}

// AnyReduce returns some reduce action available in this state, used during
// panic-mode recovery to synthesize a token that would let the parser make
// progress (spec.md §4.5). AlwaysReduce is preferred; otherwise the first
// positive action value in Actions.
func (s *ParseState) AnyReduce() (Action, bool) {
	if s.HasAlwaysReduce {
		return s.AlwaysReduce, true
	}
	for _, e := range s.Actions {
		if e.Action.IsReduce() {
			return e.Action, true
		}
	}
	return ActionZero, false
}
