package tokenize

import (
	"github.com/nihei9/glrcore/input"
	"github.com/nihei9/glrcore/table"
)

// Interpreter executes a ParseState's tokenizers against an input.Stream,
// applying the priority/fallback/extend policy of spec.md §4.2.
type Interpreter struct {
	tables   *table.Tables
	registry *Registry
	dialect  table.Dialect

	// cache holds non-contextual results keyed by (position, tokenizer,
	// group mask), since such tokens may be reused across stacks at the
	// same position (spec.md §4.2) but only when they ran the same
	// tokenizer under the same group mask: runGroupDFA gates every accept
	// on groupMask, so a token's identity is a function of all three, not
	// of position alone. Two heads at the same position in different
	// states reaching for different tokenizers (or the same tokenizer
	// under a different mask) must never share a cache slot. Contextual
	// tokenizers are never cached.
	cache map[cacheKey]CachedToken
}

type cacheKey struct {
	pos       int
	tokenizer table.TokenizerID
	mask      uint32
}

// NewInterpreter builds an Interpreter for tables, with external tokenizers
// resolved through registry.
func NewInterpreter(tables *table.Tables, registry *Registry, dialect table.Dialect) *Interpreter {
	return &Interpreter{
		tables:   tables,
		registry: registry,
		dialect:  dialect,
		cache:    map[cacheKey]CachedToken{},
	}
}

// InvalidateFrom drops cached tokens that could not possibly still be valid
// after an edit starting at pos. reuse.InvalidateFrom computes that position
// from a list of ChangedRanges.
func (tp *Interpreter) InvalidateFrom(pos int) {
	for k := range tp.cache {
		if k.pos >= pos {
			delete(tp.cache, k)
		}
	}
}

// Skip runs the state's skip tokenizer, if any, returning the token it
// produced (which is never entered into the tree) and whether one matched.
func (tp *Interpreter) Skip(s *input.Stream, state *table.ParseState, stack Stack, groupMask uint32) (CachedToken, bool) {
	if state.Skip == table.NoTokenizer {
		return CachedToken{}, false
	}
	start := s.Pos()
	tz := &tp.tables.Tokenizers[state.Skip]
	tok := tp.runOne(tz, s, stack, groupMask, start)
	s.Reset(start, nil)
	if tok == nil || !tok.Accepted() {
		return CachedToken{}, false
	}
	return *tok, true
}

// Main runs state's main tokenizers in priority order and returns the
// winning token, if any.
func (tp *Interpreter) Main(s *input.Stream, state *table.ParseState, stack Stack, groupMask uint32) (CachedToken, bool) {
	pos := s.Pos()

	var candidate *CachedToken
	candidateAccepted := false

	for _, tzid := range state.Tokenizers {
		tz := &tp.tables.Tokenizers[tzid]

		if candidate != nil {
			if candidateAccepted {
				break
			}
			if !tz.Flags.Fallback {
				continue
			}
		}

		key := cacheKey{pos: pos, tokenizer: tzid, mask: groupMask}
		var tok *CachedToken
		if !tz.Flags.Contextual {
			if cached, ok := tp.cache[key]; ok {
				tok = &cached
			}
		}
		if tok == nil {
			tok = tp.runOne(tz, s, stack, groupMask, pos)
			if tok != nil && !tz.Flags.Contextual {
				tp.cache[key] = *tok
			}
		}
		if tok == nil || !tok.Accepted() {
			continue
		}

		accepted := stateAcceptsTerm(state, table.TermID(tok.Value))

		if candidate == nil || (accepted && !candidateAccepted) {
			candidate = tok
			candidateAccepted = accepted
		}

		if accepted && !tz.Flags.Extend {
			break
		}
	}

	// Leave the stream where the caller found it; callers consume the
	// winning token's width explicitly via Stream.Advance/Reset once they
	// know whether to shift, skip, or discard it.
	s.Reset(pos, nil)

	if candidate == nil {
		return CachedToken{}, false
	}
	return *candidate, true
}

func stateAcceptsTerm(state *table.ParseState, term table.TermID) bool {
	act := state.Lookup(term)
	return !act.IsZero()
}

// runOne executes a single tokenizer (group DFA or external) starting at
// the stream's current position and returns the resulting token, or nil if
// nothing was accepted.
func (tp *Interpreter) runOne(tz *table.Tokenizer, s *input.Stream, stack Stack, groupMask uint32, start int) *CachedToken {
	s.Reset(start, nil)

	switch tz.Kind {
	case table.KindGroupDFA:
		ok := runGroupDFA(tz.Group, tp.tables.Terms, s, groupMask, tp.dialect)
		if !ok {
			return nil
		}
	case table.KindExternal:
		fn, ok := tp.registry.Lookup(tz.ExternalName)
		if !ok {
			return nil
		}
		fn(s, stack)
		if s.Token().Value < 0 {
			return nil
		}
	default:
		return nil
	}

	t := s.Token()
	t.Extended = tz.Flags.Extend
	t.Mask = groupMask
	ct := fromInputToken(t)
	if tz.Flags.Contextual && stack != nil {
		ct.Context = stack.State()
	}
	return &ct
}
