package tree

import "github.com/nihei9/glrcore/table"

// Context is the result of resolving a position, or one step of a Cursor
// walk: a tagged node's type, span, and a lazily-walkable Parent/Children
// relationship, per spec.md §4.8. Two concrete resolver shapes (treeNode
// and bufferNode) hide whether this Context's node lives in the heavy Tree
// representation or a packed TreeBuffer.
type Context struct {
	Type       table.TermID
	Start, End int
	Parent     *Context

	node resolverNode
}

// Children returns this node's immediate children as Contexts, resolved on
// demand.
func (c *Context) Children() []*Context {
	if c.node == nil {
		return nil
	}
	return c.node.children(c)
}

type resolverNode interface {
	children(parent *Context) []*Context
}

type treeNode struct {
	t    *Tree
	base int
}

func (n treeNode) children(parent *Context) []*Context {
	out := make([]*Context, 0, len(n.t.Children))
	for i, ch := range n.t.Children {
		abs := n.base + n.t.Positions[i]
		out = append(out, childContext(ch, abs, parent))
	}
	return out
}

func childContext(c Child, base int, parent *Context) *Context {
	switch v := c.(type) {
	case *Tree:
		return &Context{Type: v.Tag, Start: base, End: base + v.Length, Parent: parent, node: treeNode{t: v, base: base}}
	case *TreeBuffer:
		q := v.Quads[0]
		return &Context{Type: q.Tag, Start: base + q.RelStart, End: base + q.RelEnd, Parent: parent, node: bufferNode{b: v, base: base, idx: 0}}
	}
	return nil
}

type bufferNode struct {
	b    *TreeBuffer
	base int
	idx  int
}

func (n bufferNode) children(parent *Context) []*Context {
	q := n.b.Quads[n.idx]
	out := make([]*Context, 0, q.ChildCount)
	next := n.idx + 1
	for i := 0; i < q.ChildCount; i++ {
		cq := n.b.Quads[next]
		out = append(out, &Context{
			Type: cq.Tag, Start: n.base + cq.RelStart, End: n.base + cq.RelEnd,
			Parent: parent, node: bufferNode{b: n.b, base: n.base, idx: next},
		})
		next += subtreeQuadCount(n.b, next)
	}
	return out
}

// subtreeQuadCount returns how many Quad entries (including idx itself)
// the subtree rooted at idx occupies, by walking child counts through the
// buffer's prefix-order layout.
func subtreeQuadCount(b *TreeBuffer, idx int) int {
	q := b.Quads[idx]
	size := 1
	next := idx + 1
	for i := 0; i < q.ChildCount; i++ {
		s := subtreeQuadCount(b, next)
		size += s
		next += s
	}
	return size
}

// Resolve returns the innermost tagged node containing pos, or nil if pos
// is outside t's span entirely. Untagged container nodes are skipped over
// (both as the returned node and as ancestors in Parent), per spec.md §4.8.
func (t *Tree) Resolve(pos int) *Context {
	emptyRoot := t.Length == 0 && pos == 0
	if !emptyRoot && (pos < 0 || pos >= t.Length) {
		return nil
	}
	return resolveTree(t, 0, pos, nil)
}

func resolveTree(t *Tree, base int, pos int, parent *Context) *Context {
	var mine *Context
	if t.Tagged() {
		mine = &Context{Type: t.Tag, Start: base, End: base + t.Length, Parent: parent, node: treeNode{t: t, base: base}}
	}
	effParent := parent
	if mine != nil {
		effParent = mine
	}

	for i, cp := range t.Children {
		start := base + t.Positions[i]
		end := start + cp.Len()
		if pos >= start && pos < end {
			switch c := t.Children[i].(type) {
			case *Tree:
				if r := resolveTree(c, start, pos, effParent); r != nil {
					return r
				}
			case *TreeBuffer:
				if r := resolveBufEntry(c, 0, start, pos, effParent); r != nil {
					return r
				}
			}
		}
	}
	return mine
}

func resolveBufEntry(b *TreeBuffer, idx int, base int, pos int, parent *Context) *Context {
	q := b.Quads[idx]
	var mine *Context
	if q.Tag.Tagged() {
		mine = &Context{Type: q.Tag, Start: base + q.RelStart, End: base + q.RelEnd, Parent: parent, node: bufferNode{b: b, base: base, idx: idx}}
	}
	effParent := parent
	if mine != nil {
		effParent = mine
	}

	next := idx + 1
	for i := 0; i < q.ChildCount; i++ {
		cq := b.Quads[next]
		start, end := base+cq.RelStart, base+cq.RelEnd
		size := subtreeQuadCount(b, next)
		if pos >= start && pos < end {
			if r := resolveBufEntry(b, next, base, pos, effParent); r != nil {
				return r
			}
		}
		next += size
	}
	return mine
}

// Cursor iterates a tree's tagged nodes in document order, skipping
// untagged container nodes (spec.md §4.8).
type Cursor struct {
	nodes []*Context
	pos   int
}

// NewCursor builds a Cursor over t.
func NewCursor(t *Tree) *Cursor {
	c := &Cursor{pos: -1}
	var root *Context
	if t.Tagged() {
		root = &Context{Type: t.Tag, Start: 0, End: t.Length, node: treeNode{t: t, base: 0}}
	}
	walk(treeNode{t: t, base: 0}, root, &c.nodes)
	return c
}

func walk(n resolverNode, self *Context, out *[]*Context) {
	if self != nil && self.Type.Tagged() {
		*out = append(*out, self)
	}
	for _, child := range n.children(self) {
		walk(child.node, child, out)
	}
}

// Next advances the cursor and reports whether a node remains.
func (c *Cursor) Next() bool {
	c.pos++
	return c.pos < len(c.nodes)
}

// Node returns the Context the cursor currently sits at. Valid only after a
// Next call that returned true.
func (c *Cursor) Node() *Context {
	return c.nodes[c.pos]
}
