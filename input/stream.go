package input

// Token is the working token InputStream.AcceptToken writes into while the
// tokenizer interpreter is scanning. tokenize.Interpreter owns the decision
// of when to start a fresh one; InputStream only fills in the fields spec.md
// §4.1 assigns it.
type Token struct {
	Start int

	// Value is set by AcceptToken; -1 means "nothing accepted yet".
	Value int32

	// End is the accepted end position, computed through resolvePos so it
	// matches the underlying coordinate system (i.e. gaps are re-added).
	End int

	Extended bool

	// LookAhead records the furthest position inspected while recognizing
	// this token. The incremental-reuse layer uses it to decide whether a
	// cached token survives an edit (spec.md §4.7).
	LookAhead int

	// Mask is the tokenizer group mask in effect when this token was
	// produced.
	Mask uint32
}

func newToken(start int) *Token {
	return &Token{Start: start, Value: -1, End: start, LookAhead: start}
}

// Stream is a random-access character stream over an Input, with gap
// elision and a two-chunk cache (spec.md §4.1). It is the only thing the
// tokenizer interpreter reads from.
type Stream struct {
	in     Input
	length int
	gaps   []Gap

	pos int

	// chunk covers pos; chunk2 is the chunk that was active immediately
	// before the last rotation. Caching both, rather than just one, avoids
	// repeated calls to Input.Chunk when the parser backtracks a short
	// distance (e.g. a failed tokenizer attempt), which is the common case.
	chunk       string
	chunkStart  int
	chunk2      string
	chunk2Start int

	token *Token
}

// NewStream builds a Stream over in, with gaps sorted and non-overlapping
// per spec.md §3.
func NewStream(in Input, gaps []Gap) *Stream {
	s := &Stream{
		in:     in,
		length: in.Length(),
		gaps:   gaps,
	}
	s.token = newToken(0)
	s.fillChunk(0)
	return s
}

// Pos returns the current logical position.
func (s *Stream) Pos() int {
	return s.pos
}

// Length returns the total length of the underlying input, in the same
// coordinate system as Pos.
func (s *Stream) Length() int {
	return s.length
}

// Next returns the byte value at the current position, or -1 at end of
// input.
func (s *Stream) Next() int {
	return s.at(s.pos)
}

// Peek returns the byte value at pos+offset without moving the stream,
// honoring gaps exactly as Next/Advance would if the stream were actually
// advanced there (spec.md §8: peek(k) at p must agree with a fresh stream
// reset to resolvePos(p, k)).
func (s *Stream) Peek(offset int) int {
	p := s.resolvePos(s.pos, offset)
	s.trackLookAhead(p)
	return s.at(p)
}

// Advance moves the stream forward n positions, crossing any gaps in the
// way, and updates the working token's LookAhead.
func (s *Stream) Advance(n int) {
	s.pos = s.resolvePos(s.pos, n)
	s.trackLookAhead(s.pos)
	s.fillChunk(s.pos)
}

// AcceptToken records that term has been recognized ending endOffset
// positions past the current position (0 meaning "ends here"). end is
// computed through resolvePos so it lands on the underlying coordinate
// system, matching spec.md §4.1.
func (s *Stream) AcceptToken(term int32, endOffset int) {
	s.token.Value = term
	s.token.End = s.resolvePos(s.pos, endOffset)
}

// Reset relocates the stream to pos, preserving the chunk cache when
// possible, and binds a fresh working token (or tok, if supplied, letting a
// caller resume a token whose LookAhead must survive the reset).
func (s *Stream) Reset(pos int, tok *Token) {
	s.pos = pos
	if tok != nil {
		s.token = tok
	} else {
		s.token = newToken(pos)
	}
	s.fillChunk(pos)
}

// Token returns the working token bound by the last Reset (or NewStream).
func (s *Stream) Token() *Token {
	return s.token
}

// Read returns the exact substring [from, to), with any gap content
// removed, per spec.md §4.1.
func (s *Stream) Read(from, to int) string {
	if len(s.gaps) == 0 {
		return s.in.Read(from, to)
	}
	var b []byte
	cur := from
	for _, g := range s.gaps {
		if g.To <= cur || g.From >= to {
			continue
		}
		if g.From > cur {
			b = append(b, s.in.Read(cur, g.From)...)
		}
		if g.To > cur {
			cur = g.To
		}
	}
	if cur < to {
		b = append(b, s.in.Read(cur, to)...)
	}
	return string(b)
}

// at returns the byte value at an absolute position, using the chunk cache,
// or -1 past the end of input.
func (s *Stream) at(pos int) int {
	if pos < 0 || pos >= s.length {
		return -1
	}
	if pos >= s.chunkStart && pos < s.chunkStart+len(s.chunk) {
		return int(s.chunk[pos-s.chunkStart])
	}
	if pos >= s.chunk2Start && pos < s.chunk2Start+len(s.chunk2) {
		return int(s.chunk2[pos-s.chunk2Start])
	}
	// Cold path: read straight from Input.Chunk, leaving both cached chunks
	// and s.pos untouched, so a lookahead-only Peek disturbs nothing.
	c := s.in.Chunk(pos)
	if c == "" {
		return -1
	}
	return int(c[0])
}

// fillChunk ensures s.chunk covers pos, rotating the cache and calling
// Input.Chunk on a miss. On a miss that lands inside a gap, pos is jumped to
// the gap's end first (spec.md §4.1: "Gaps never split a token: a gap
// boundary aligns the tokenizer to its to position").
func (s *Stream) fillChunk(pos int) {
	if pos >= s.chunkStart && pos < s.chunkStart+len(s.chunk) {
		return
	}
	if pos >= s.chunk2Start && pos < s.chunk2Start+len(s.chunk2) {
		s.chunk, s.chunk2 = s.chunk2, s.chunk
		s.chunkStart, s.chunk2Start = s.chunk2Start, s.chunkStart
		return
	}

	start := pos
	if g := s.gapContaining(start); g != nil {
		start = g.To
		s.pos = start
	}
	if start >= s.length {
		s.chunk2, s.chunk2Start = s.chunk, s.chunkStart
		s.chunk, s.chunkStart = "", start
		return
	}

	c := s.in.Chunk(start)
	if end := start + len(c); end > s.length {
		c = c[:s.length-start]
	}
	// Truncate against the next gap so the cached chunk never straddles one;
	// the tokenizer interpreter must see a gap boundary, not skip over it
	// invisibly mid-chunk.
	if g := s.nextGapAfter(start); g != nil && g.From < start+len(c) {
		c = c[:g.From-start]
	}

	s.chunk2, s.chunk2Start = s.chunk, s.chunkStart
	s.chunk, s.chunkStart = string([]byte(c)), start
}

func (s *Stream) gapContaining(pos int) *Gap {
	for i := range s.gaps {
		if pos >= s.gaps[i].From && pos < s.gaps[i].To {
			return &s.gaps[i]
		}
	}
	return nil
}

func (s *Stream) nextGapAfter(pos int) *Gap {
	var best *Gap
	for i := range s.gaps {
		if s.gaps[i].From >= pos && (best == nil || s.gaps[i].From < best.From) {
			best = &s.gaps[i]
		}
	}
	return best
}

// resolvePos walks gaps in the direction of offset, adding each (to-from)
// the offset would cross, so a logical advance of n positions skips gap
// content entirely (spec.md §4.1).
func (s *Stream) resolvePos(pos, offset int) int {
	if offset == 0 {
		return pos
	}
	if offset > 0 {
		remaining := offset
		cur := pos
		for remaining > 0 {
			if g := s.gapContaining(cur); g != nil {
				cur = g.To
				continue
			}
			next := cur + 1
			if g := s.nextGapAfter(cur); g != nil && g.From == next {
				next = g.To
			}
			cur = next
			remaining--
		}
		return cur
	}
	remaining := -offset
	cur := pos
	for remaining > 0 {
		cur--
		if g := s.gapContaining(cur); g != nil {
			cur = g.From - 1
		}
		remaining--
	}
	return cur
}

func (s *Stream) trackLookAhead(pos int) {
	if pos > s.token.LookAhead {
		s.token.LookAhead = pos
	}
}
