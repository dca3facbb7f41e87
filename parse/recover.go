package parse

import (
	"fmt"

	"github.com/nihei9/glrcore/stack"
	"github.com/nihei9/glrcore/table"
	"github.com/nihei9/glrcore/tokenize"
)

// recover implements spec.md §4.5: a head with no applicable action tries,
// in order, skipping tokens until a recovery terminal is matched, then
// synthesizing a reduce, then finally giving up softly by emitting a single
// ERR node over the remaining input and accepting. Recovery always leaves
// at least one surviving, eventually-accepted head.
func (s *session) recover(h *stack.Head, state *table.ParseState, tok tokenize.CachedToken) ([]*stack.Head, *SyntaxError, error) {
	if len(state.Recover) > 0 {
		if nh, serr := s.recoverBySkipping(h, state); nh != nil {
			return []*stack.Head{nh}, serr, nil
		}
	}

	if act, ok := state.AnyReduce(); ok {
		fh := h.Fork()
		synth := tokenize.CachedToken{Start: h.Pos, Value: int32(s.tables.ErrTerm), End: h.Pos, LookAhead: h.Pos}
		nh, err := s.applyAction(fh, act, synth)
		if err != nil {
			return nil, nil, err
		}
		nh.Score -= 2
		return []*stack.Head{nh}, &SyntaxError{
			Pos: h.Pos, State: int32(h.State),
			Message: "no matching action; synthesized a reduce to continue",
		}, nil
	}

	return []*stack.Head{s.recoverByAccepting(h)}, &SyntaxError{
		Pos: h.Pos, State: int32(h.State),
		Message: "unrecoverable; emitted an ERR node for the remaining input",
	}, nil
}

// recoverBySkipping scans forward from h.Pos, tokenizing with state's own
// tokenizers, until it finds a token matching one of state.Recover's
// terminals or exhausts the attempt budget. Each skipped token is folded
// into a single ERR-tagged leaf spanning the skipped span.
func (s *session) recoverBySkipping(h *stack.Head, state *table.ParseState) (*stack.Head, *SyntaxError) {
	pos := h.Pos
	for attempt := 0; attempt < s.p.maxRecoveryAttempts && pos < s.stream.Length(); attempt++ {
		s.stream.Reset(pos, nil)
		tok, ok := s.interp.Main(s.stream, state, headStack{h}, state.GroupMask)
		if !ok {
			pos++
			continue
		}
		if target, ok := state.GetRecover(table.TermID(tok.Value)); ok {
			fh := h.Fork()
			if pos > h.Pos {
				fh.AppendQuad(stack.Quad{Tag: s.tables.ErrTerm, Start: h.Pos, End: pos, LookAhead: pos})
			}
			nh := fh.Push(target)
			nh.Buffer = fh.Buffer
			nh.Pos = pos
			nh.Score = fh.Score - attempt - 1
			return nh, &SyntaxError{
				Pos: h.Pos, State: int32(h.State),
				Message: fmt.Sprintf("skipped input to recover at term %d", tok.Value),
			}
		}
		if tok.End > pos {
			pos = tok.End
		} else {
			pos++
		}
	}
	return nil, nil
}

// recoverByAccepting is the last-resort strategy: wrap everything from
// h.Pos onward in a single ERR node and accept, per spec.md §4.5's "soft
// recovery" guarantee that the parser always produces a tree.
func (s *session) recoverByAccepting(h *stack.Head) *stack.Head {
	end := s.stream.Length()
	if end > h.Pos {
		h.AppendQuad(stack.Quad{Tag: s.tables.ErrTerm, Start: h.Pos, End: end, LookAhead: end})
	}
	h.Pos = end
	h.Accepted = true
	return h
}
