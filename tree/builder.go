package tree

import "github.com/nihei9/glrcore/stack"

// DefaultTreeBufferThreshold bounds how many quads a packed TreeBuffer run
// may contain before a reduction is instead materialized as a heavy Tree
// node, per spec.md §4.6.
const DefaultTreeBufferThreshold = 32

// Builder converts a GSS head's flat postfix quad buffer into the dual
// Tree/TreeBuffer representation. Per spec.md §4.6, the split is purely a
// representation choice: the resulting tree's shape must not depend on
// where the small/large boundary falls, only Builder.Threshold does.
type Builder struct {
	Threshold int
}

// NewBuilder returns a Builder using DefaultTreeBufferThreshold.
func NewBuilder() *Builder {
	return &Builder{Threshold: DefaultTreeBufferThreshold}
}

type frame struct {
	child      Child
	start, end int
	lookAhead  int
	// quadCount is how many Quad entries this subtree would occupy if
	// packed into a TreeBuffer; only meaningful while packable is true.
	quadCount int
	packable  bool
}

// Build walks quads (in the postfix order a GSS head accumulates them) and
// returns the finished tree rooted at the single remaining value.
func (b *Builder) Build(quads []stack.Quad) *Tree {
	return b.build(quads, nil)
}

// BuildWithReuse is Build, except that any leaf quad whose Start matches a
// key of reused is spliced in verbatim as that Child instead of being
// freshly materialized. This is how the incremental-reuse layer incorporates
// whole subtrees carried over from a prior parse (spec.md §4.7): because
// Tree/TreeBuffer positions are stored relative to their own start, a
// reused Child needs no rewriting to appear at its new absolute base.
func (b *Builder) BuildWithReuse(quads []stack.Quad, reused map[int]Child) *Tree {
	return b.build(quads, reused)
}

func (b *Builder) build(quads []stack.Quad, reused map[int]Child) *Tree {
	threshold := b.Threshold
	if threshold <= 0 {
		threshold = DefaultTreeBufferThreshold
	}

	var stk []frame
	for _, q := range quads {
		n := q.ChildCount
		children := append([]frame(nil), stk[len(stk)-n:]...)
		stk = stk[:len(stk)-n]

		if n == 0 {
			if reused != nil {
				if c, ok := reused[q.Start]; ok {
					look := q.Start + childLookAhead(c)
					if look < q.End {
						look = q.End
					}
					stk = append(stk, frame{child: c, start: q.Start, end: q.End, lookAhead: look, packable: false})
					continue
				}
			}
			look := q.LookAhead
			if look < q.End {
				look = q.End
			}
			leaf := &Tree{Tag: q.Tag, Length: q.End - q.Start, LookAhead: look - q.Start}
			stk = append(stk, frame{child: leaf, start: q.Start, end: q.End, lookAhead: look, quadCount: 1, packable: true})
			continue
		}

		packable := true
		total := 1
		look := q.LookAhead
		for _, c := range children {
			if !c.packable {
				packable = false
			} else {
				total += c.quadCount
			}
			if c.lookAhead > look {
				look = c.lookAhead
			}
		}
		if look < q.End {
			look = q.End
		}

		if packable && total <= threshold {
			quadsOut := make([]Quad, 0, total)
			quadsOut = append(quadsOut, Quad{Tag: q.Tag, RelStart: 0, RelEnd: q.End - q.Start, ChildCount: n})
			for _, c := range children {
				appendChildQuads(&quadsOut, c.child, c.start-q.Start)
			}
			tb := &TreeBuffer{Length: q.End - q.Start, Quads: quadsOut, LookAhead: look - q.Start}
			stk = append(stk, frame{child: tb, start: q.Start, end: q.End, lookAhead: look, quadCount: total, packable: true})
			continue
		}

		childNodes := make([]Child, n)
		positions := make([]int, n)
		for i, c := range children {
			childNodes[i] = c.child
			positions[i] = c.start - q.Start
		}
		node := &Tree{Tag: q.Tag, Length: q.End - q.Start, Children: childNodes, Positions: positions, LookAhead: look - q.Start}
		stk = append(stk, frame{child: node, start: q.Start, end: q.End, lookAhead: look, packable: false})
	}

	if len(stk) == 0 {
		return &Tree{}
	}
	top := stk[len(stk)-1]
	if t, ok := top.child.(*Tree); ok {
		return t
	}
	// The root reduced into something other than a plain Tree (a packed
	// TreeBuffer, or a reused Child); wrap it in a headerless container so
	// callers always get a *Tree root.
	return &Tree{
		Length:    top.child.Len(),
		Children:  []Child{top.child},
		Positions: []int{0},
		LookAhead: childLookAhead(top.child),
	}
}

// childLookAhead reads a Child's own LookAhead field, for the two concrete
// representations; Child itself only promises Len().
func childLookAhead(c Child) int {
	switch v := c.(type) {
	case *Tree:
		return v.LookAhead
	case *TreeBuffer:
		return v.LookAhead
	}
	return 0
}

// appendChildQuads flattens child's own quads (if it is a TreeBuffer) or a
// single-entry quad (if it is a leaf Tree) into out, shifted by offset.
func appendChildQuads(out *[]Quad, child Child, offset int) {
	switch v := child.(type) {
	case *TreeBuffer:
		for _, q := range v.Quads {
			*out = append(*out, Quad{Tag: q.Tag, RelStart: q.RelStart + offset, RelEnd: q.RelEnd + offset, ChildCount: q.ChildCount})
		}
	case *Tree:
		*out = append(*out, Quad{Tag: v.Tag, RelStart: offset, RelEnd: offset + v.Length, ChildCount: 0})
	}
}
