// Package parse drives the GLR step loop: it tokenizes, applies shifts and
// reduces against one or more GSS heads, forks on conflicts, merges heads
// that reconverge, recovers from malformed input, and hands the surviving
// head's buffer to the tree builder (spec.md §4.4).
package parse

import (
	"fmt"

	"github.com/nihei9/glrcore/input"
	"github.com/nihei9/glrcore/reuse"
	"github.com/nihei9/glrcore/stack"
	"github.com/nihei9/glrcore/table"
	"github.com/nihei9/glrcore/tokenize"
	"github.com/nihei9/glrcore/tree"
)

// Parser holds the immutable configuration of a parse: the compiled tables
// and the options of option.go. It is cheap to reuse across many Parse
// calls (no mutable state lives on it).
type Parser struct {
	tables   *table.Tables
	registry *tokenize.Registry
	dialect  table.Dialect

	maxHeads            int
	scoreGap            int
	maxRecoveryAttempts int

	builder  *tree.Builder
	reuseMap *reuse.Map

	cancel func() bool
}

// New builds a Parser over tables, applying opts over sensible defaults.
func New(tables *table.Tables, opts ...Option) *Parser {
	p := &Parser{
		tables:              tables,
		registry:            tokenize.NewRegistry(),
		dialect:             table.AllDialects,
		maxHeads:            defaultMaxHeads,
		scoreGap:            defaultScoreGap,
		maxRecoveryAttempts: 8,
		builder:             tree.NewBuilder(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// headStack adapts a stack.Head to the narrow view tokenize.Interpreter's
// external tokenizers need (spec.md §6).
type headStack struct{ h *stack.Head }

func (hs headStack) State() int32 { return int32(hs.h.State) }

// Result is the outcome of a finished parse.
type Result struct {
	Tree   *tree.Tree
	Errors []*SyntaxError
}

// session holds everything that mutates over the course of one Parse call:
// the input stream, the tokenizer interpreter's cache, and the live GSS
// frontier. A *Resume wraps one of these between budgeted Continue calls.
type session struct {
	p       *Parser
	stream  *input.Stream
	interp  *tokenize.Interpreter
	tables  *table.Tables
	errs    []*SyntaxError
	splices map[int]tree.Child

	frontier []*stack.Head

	done      bool
	result    *tree.Tree
	resultErr error
}

// Resume is the handle spec.md §5 requires for interruptible parsing: a
// Parse call that exhausts its budget returns one instead of an error, and
// Continue picks up exactly where it left off.
type Resume struct {
	s *session
}

// Parse starts parsing in over gaps, running at most budget steps before
// returning a Resume. Call Resume.Continue to keep going, or check
// Resume.Done to see whether the parse already finished.
func (p *Parser) Parse(in input.Input, gaps []input.Gap, budget int) (*Resume, error) {
	s := &session{
		p:        p,
		stream:   input.NewStream(in, gaps),
		interp:   tokenize.NewInterpreter(p.tables, p.registry, p.dialect),
		tables:   p.tables,
		splices:  map[int]tree.Child{},
		frontier: []*stack.Head{stack.NewRoot(p.tables.InitialState)},
	}
	r := &Resume{s: s}
	return r.Continue(budget)
}

// Done reports whether the parse this handle belongs to has finished.
func (r *Resume) Done() bool { return r.s.done }

// Tree returns the finished tree. Valid only once Done reports true and
// Continue returned a nil error.
func (r *Resume) Tree() *tree.Tree { return r.s.result }

// Errors returns the recoverable syntax errors collected so far.
func (r *Resume) Errors() []*SyntaxError { return r.s.errs }

// Continue runs up to budget more steps. It returns r itself (now possibly
// Done) and a non-nil error only for a fatal table inconsistency (spec.md
// §7) or a host Input error.
func (r *Resume) Continue(budget int) (*Resume, error) {
	if r.s.done {
		return r, r.s.resultErr
	}
	if err := r.s.run(budget); err != nil {
		r.s.resultErr = err
		r.s.done = true
		return r, err
	}
	return r, nil
}

// run advances the parse by at most budget steps, or without limit if
// budget <= 0 (spec.md §5: a resumable budget is opt-in, not mandatory).
func (s *session) run(budget int) error {
	for steps := 0; budget <= 0 || steps < budget; steps++ {
		if s.p.cancel != nil && s.p.cancel() {
			s.finishCancelled()
			return nil
		}
		if len(s.frontier) == 0 {
			s.finishExhausted()
			return nil
		}
		if allAccepted(s.frontier) {
			return s.finishAccepted()
		}
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

func allAccepted(heads []*stack.Head) bool {
	for _, h := range heads {
		if !h.Accepted {
			return false
		}
	}
	return true
}

// step advances the single highest-priority unfinished head one action, per
// spec.md §4.4: tokenize, look up applicable actions (forking on more than
// one), apply, then merge and prune the frontier.
func (s *session) step() error {
	sch := newScheduler()
	for _, h := range s.frontier {
		if !h.Accepted {
			sch.push(h)
		}
	}
	h, ok := sch.pop()
	if !ok {
		return nil
	}
	s.frontier = removeHead(s.frontier, h)

	newHeads, serr, err := s.applyStep(h)
	if err != nil {
		return err
	}
	if serr != nil {
		s.errs = append(s.errs, serr)
	}
	s.frontier = append(s.frontier, newHeads...)
	s.frontier = stack.Merge(s.frontier)
	s.frontier = stack.Prune(s.frontier, s.p.maxHeads, s.p.scoreGap)
	return nil
}

func removeHead(heads []*stack.Head, target *stack.Head) []*stack.Head {
	out := heads[:0]
	for _, h := range heads {
		if h != target {
			out = append(out, h)
		}
	}
	return out
}

// applyStep implements one GLR step for h (spec.md §4.4's "Step on a
// head"), returning the heads it produced.
func (s *session) applyStep(h *stack.Head) ([]*stack.Head, *SyntaxError, error) {
	if nh, ok := s.tryReuse(h); ok {
		return []*stack.Head{nh}, nil, nil
	}

	state, err := s.tables.State(h.State)
	if err != nil {
		return nil, nil, err
	}

	if h.Pos >= s.stream.Length() {
		return s.applyTerm(h, state, tokenize.CachedToken{Start: h.Pos, Value: int32(s.tables.EOFTerm), End: h.Pos, LookAhead: h.Pos})
	}

	s.stream.Reset(h.Pos, nil)
	if skipTok, ok := s.interp.Skip(s.stream, state, headStack{h}, state.GroupMask); ok {
		h.Pos = skipTok.End
		return []*stack.Head{h}, nil, nil
	}

	tok, ok := s.interp.Main(s.stream, state, headStack{h}, state.GroupMask)
	if !ok {
		tok = tokenize.CachedToken{Start: h.Pos, Value: int32(s.tables.ErrTerm), End: h.Pos, LookAhead: h.Pos}
	}
	return s.applyTerm(h, state, tok)
}

func (s *session) applyTerm(h *stack.Head, state *table.ParseState, tok tokenize.CachedToken) ([]*stack.Head, *SyntaxError, error) {
	term := table.TermID(tok.Value)
	acts := state.ActionsFor(term)
	if len(acts) == 0 && state.HasAlwaysReduce {
		acts = []table.Action{state.AlwaysReduce}
	}
	if len(acts) == 0 && state.HasDefaultReduce {
		acts = []table.Action{state.DefaultReduce}
	}
	if len(acts) == 0 {
		return s.recover(h, state, tok)
	}

	if len(acts) == 1 {
		nh, err := s.applyAction(h, acts[0], tok)
		if err != nil {
			return nil, nil, err
		}
		return []*stack.Head{nh}, nil, nil
	}

	out := make([]*stack.Head, 0, len(acts))
	for _, act := range acts {
		fh := h.Fork()
		nh, err := s.applyAction(fh, act, tok)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, nh)
	}
	return out, nil, nil
}

// applyAction applies a single resolved action to h, per spec.md §4.4 step
// 4. h is always safe to mutate in place: callers either own it exclusively
// (the single-action path) or have just forked it (the multi-action path).
func (s *session) applyAction(h *stack.Head, act table.Action, tok tokenize.CachedToken) (*stack.Head, error) {
	switch {
	case act.IsAccept():
		h.Accepted = true
		return h, nil

	case act.IsShift():
		target := act.ShiftTarget()
		nh := h.Push(target)
		nh.Pos = tok.End
		nh.Score = h.Score + 1
		if table.TermID(tok.Value).Tagged() {
			nh.AppendQuad(stack.Quad{Tag: table.TermID(tok.Value), Start: tok.Start, End: tok.End, LookAhead: tok.LookAhead})
		}
		return nh, nil

	case act.IsReduce():
		depth := act.ReduceDepth()
		term := act.ReduceTerm()
		exposed := h.PopN(depth)

		exposedState, err := s.tables.State(exposed.State)
		if err != nil {
			return nil, err
		}
		target, ok := exposedState.GetGoto(term)
		if !ok {
			return nil, &table.TableError{
				Op:          "Goto",
				StateID:     exposed.State,
				Fingerprint: s.tables.Fingerprint(),
				Message:     fmt.Sprintf("no goto for term %d after reducing depth %d", term, depth),
			}
		}

		h.AppendQuad(stack.Quad{Tag: term, Start: exposed.Pos, End: h.Pos, ChildCount: depth, LookAhead: tok.LookAhead})

		nh := exposed.Push(target)
		nh.Buffer = h.Buffer
		nh.Pos = h.Pos
		nh.Score = h.Score - 1
		return nh, nil
	}
	return nil, fmt.Errorf("parse: action %v is neither shift, reduce, nor accept", act)
}

// tryReuse consults the reuse map before tokenizing: if a subtree starts
// exactly at h's position and its tag has a valid goto from h's state, it
// is shifted whole (spec.md §4.7's last paragraph).
func (s *session) tryReuse(h *stack.Head) (*stack.Head, bool) {
	if s.p.reuseMap == nil {
		return nil, false
	}
	e, ok := s.p.reuseMap.Lookup(h.Pos)
	if !ok {
		return nil, false
	}
	state, err := s.tables.State(h.State)
	if err != nil {
		return nil, false
	}
	target, ok := state.GetGoto(e.Tag)
	if !ok {
		return nil, false
	}

	nh := h.Push(target)
	nh.Pos = e.End
	nh.Score = h.Score + 1
	nh.AppendQuad(stack.Quad{Tag: e.Tag, Start: h.Pos, End: e.End, LookAhead: e.LookAhead})
	s.splices[h.Pos] = e.Node
	return nh, true
}

func (s *session) finishAccepted() error {
	var best *stack.Head
	for _, h := range s.frontier {
		if !h.Accepted {
			continue
		}
		if best == nil || h.Score > best.Score {
			best = h
		}
	}
	if best == nil {
		s.finishExhausted()
		return nil
	}
	s.result = s.p.builder.BuildWithReuse(best.Buffer, s.splices)
	s.done = true
	return nil
}

// finishExhausted handles the case spec.md §4.5 says recovery must never
// reach in practice ("keep at least one surviving head"): every head died
// anyway. A single ERR node spanning the whole input is still a tree.
func (s *session) finishExhausted() {
	s.errs = append(s.errs, &SyntaxError{Pos: 0, Message: "no surviving parse head; recovery exhausted"})
	s.result = &tree.Tree{Tag: s.tables.ErrTerm, Length: s.stream.Length()}
	s.done = true
}

// finishCancelled implements spec.md §5's cancellation contract: wrap the
// consumed prefix in an ERR node for the unconsumed remainder.
func (s *session) finishCancelled() {
	pos := 0
	var best *stack.Head
	for _, h := range s.frontier {
		if best == nil || h.Pos > best.Pos {
			best = h
		}
	}
	if best != nil {
		pos = best.Pos
	}
	buffer := []stack.Quad(nil)
	if best != nil {
		buffer = append(buffer, best.Buffer...)
	}
	if pos < s.stream.Length() {
		buffer = append(buffer, stack.Quad{Tag: s.tables.ErrTerm, Start: pos, End: s.stream.Length(), LookAhead: s.stream.Length()})
	}
	s.errs = append(s.errs, &SyntaxError{Pos: pos, Message: "parse cancelled"})
	s.result = s.p.builder.BuildWithReuse(buffer, s.splices)
	s.done = true
}
