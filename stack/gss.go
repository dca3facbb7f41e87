// Package stack implements the GLR parse stack: a graph-structured stack
// (GSS) of Heads that can fork on conflicts and merge when they reconverge,
// per spec.md §3/§4.4.
package stack

import "github.com/nihei9/glrcore/table"

// Quad is one flat entry of a Head's in-progress tree buffer: a tagged leaf
// or a reduction, in postfix order, per spec.md §3 ("buffer: flat u16 array
// ... as quads (tag, start, end, childCount)").
type Quad struct {
	Tag        table.TermID
	Start, End int
	ChildCount int

	// LookAhead is the furthest input position inspected while producing
	// this quad: the token's own lookahead for a shift, or, for a reduce,
	// the lookahead of the token that triggered it (tree.Builder folds in
	// the max over the children). The tree package propagates it so
	// reuse.Build can decide whether a subtree survives an edit (spec.md
	// §4.7).
	LookAhead int
}

// Head is one node of the GSS: a GLR stack version. Heads may share a
// parent prefix; forking clones only the head itself, following vartan's
// single stackStack []int generalized to a branching structure, and the
// slab/clone-don't-copy-the-world shape of the GLR reference sketch.
type Head struct {
	State table.StateID
	Pos   int

	// Score accumulates for tie-breaking: shifts increment it, reductions
	// and recoveries decrement it (spec.md §4.4).
	Score int

	// Buffer is this head's flat quad list, in postfix order, for everything
	// parsed so far; tree.Builder turns it into a tree once the parse
	// finishes. Fork copies it; Push shares it with the new head (see Fork
	// and Push).
	Buffer []Quad

	// Accepted marks a head that reached a top-level Accept action.
	Accepted bool

	// Dead marks a head that hit an unrecoverable error and should be
	// dropped at the next prune.
	Dead bool

	parent *Head
}

// NewRoot creates the single initial GSS head.
func NewRoot(initial table.StateID) *Head {
	return &Head{State: initial}
}

// Parent returns the head this one was forked from, or nil for the root.
func (h *Head) Parent() *Head {
	return h.parent
}

// Fork clones h into a new head that shares h's parent chain. Per spec.md
// §4.4 step 3, each fork "receives a copy of the current buffer and parent
// pointer": the buffer slice is copied so the two forks can diverge
// independently, but nothing below the fork point is duplicated.
func (h *Head) Fork() *Head {
	buf := make([]Quad, len(h.Buffer))
	copy(buf, h.Buffer)
	return &Head{
		State:    h.State,
		Pos:      h.Pos,
		Score:    h.Score,
		Buffer:   buf,
		Accepted: h.Accepted,
		parent:   h.parent,
	}
}

// Push returns a new head with state pushed on top of h (h becomes its
// parent). Pos and Buffer are inherited starting points for the caller to
// mutate (shift appends a leaf quad and advances Pos; reduce pops first).
func (h *Head) Push(state table.StateID) *Head {
	return &Head{
		State:  state,
		Pos:    h.Pos,
		Score:  h.Score,
		Buffer: h.Buffer,
		parent: h,
	}
}

// PopN walks n parents up from h and returns that ancestor, the GSS
// equivalent of popping n stack frames. The popped frames' quads have
// already been appended to h.Buffer by the reduce step, in postfix order,
// before this is called.
func (h *Head) PopN(n int) *Head {
	cur := h
	for i := 0; i < n; i++ {
		if cur.parent == nil {
			return cur
		}
		cur = cur.parent
	}
	return cur
}

// AppendQuad records a shift or reduce result into h's buffer.
func (h *Head) AppendQuad(q Quad) {
	h.Buffer = append(h.Buffer, q)
}

// Key identifies a head's merge point: per spec.md §4.4 step 5, heads that
// land in the same (state, pos) are merge candidates.
type Key struct {
	State table.StateID
	Pos   int
}

// KeyOf returns h's merge key.
func KeyOf(h *Head) Key {
	return Key{State: h.State, Pos: h.Pos}
}

// Merge collapses heads that share a (state, pos) key, keeping the
// higher-scoring one of each group and dropping the rest (spec.md §4.4 step
// 5). Order among distinct keys is preserved from the first occurrence.
func Merge(heads []*Head) []*Head {
	if len(heads) <= 1 {
		return heads
	}

	order := make([]Key, 0, len(heads))
	best := make(map[Key]*Head, len(heads))
	for _, h := range heads {
		if h == nil || h.Dead {
			continue
		}
		k := KeyOf(h)
		if cur, ok := best[k]; !ok {
			order = append(order, k)
			best[k] = h
		} else if h.Score > cur.Score {
			best[k] = h
		}
	}

	out := make([]*Head, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}

// Prune removes dead and (optionally) low-scoring heads to bound the live
// frontier, per spec.md §4.4's forking bound. Heads beyond max, after
// sorting by score descending, are dropped; a head scoring more than
// scoreGap below the leader is also dropped regardless of max.
func Prune(heads []*Head, max int, scoreGap int) []*Head {
	alive := heads[:0]
	for _, h := range heads {
		if h != nil && !h.Dead {
			alive = append(alive, h)
		}
	}
	if len(alive) <= 1 {
		return alive
	}

	leader := alive[0].Score
	for _, h := range alive[1:] {
		if h.Score > leader {
			leader = h.Score
		}
	}

	kept := alive[:0]
	for _, h := range alive {
		if scoreGap > 0 && leader-h.Score > scoreGap {
			continue
		}
		kept = append(kept, h)
	}
	if max > 0 && len(kept) > max {
		// Keep the max highest-scoring heads. The result is ordered by
		// score, descending, with ties in their original order (a stable
		// insertion sort by score).
		idx := make([]int, len(kept))
		for i := range idx {
			idx[i] = i
		}
		for i := 1; i < len(idx); i++ {
			for j := i; j > 0 && kept[idx[j]].Score > kept[idx[j-1]].Score; j-- {
				idx[j], idx[j-1] = idx[j-1], idx[j]
			}
		}
		out := make([]*Head, max)
		for i := 0; i < max; i++ {
			out[i] = kept[idx[i]]
		}
		return out
	}
	return kept
}
