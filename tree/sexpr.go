package tree

import (
	"fmt"
	"strings"

	"github.com/nihei9/glrcore/table"
)

// SExpr reproduces an S-expression of t's tagged nodes, per spec.md §6
// ("the tree's toString(parser) reproduces an S-expression of tagged nodes
// for testing"). tables resolves TermIDs to names; pass nil to fall back to
// numeric term IDs.
func (t *Tree) SExpr(tables *table.Tables) string {
	var b strings.Builder
	writeSExpr(&b, t, tables)
	return b.String()
}

func writeSExpr(b *strings.Builder, c Child, tables *table.Tables) {
	switch v := c.(type) {
	case *Tree:
		if !v.Tagged() {
			writeChildren(b, v.Children, tables, false)
			return
		}
		fmt.Fprintf(b, "(%v", termName(tables, v.Tag))
		writeChildren(b, v.Children, tables, true)
		b.WriteByte(')')
	case *TreeBuffer:
		writeBufEntry(b, v, 0, tables)
	}
}

// writeChildren writes children separated by single spaces. leading controls
// whether a space is also written before the first child, which a tagged
// node needs (to separate its tag from its first child) but an untagged root
// container does not (it has no enclosing tag to separate from).
func writeChildren(b *strings.Builder, children []Child, tables *table.Tables, leading bool) {
	for i, ch := range children {
		if leading || i > 0 {
			b.WriteByte(' ')
		}
		writeSExpr(b, ch, tables)
	}
}

// writeBufEntry writes the subtree rooted at quads[idx] and returns the
// index just past it.
func writeBufEntry(b *strings.Builder, buf *TreeBuffer, idx int, tables *table.Tables) int {
	q := buf.Quads[idx]
	next := idx + 1
	if !q.Tag.Tagged() {
		for i := 0; i < q.ChildCount; i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			next = writeBufEntry(b, buf, next, tables)
		}
		return next
	}
	fmt.Fprintf(b, "(%v", termName(tables, q.Tag))
	for i := 0; i < q.ChildCount; i++ {
		b.WriteByte(' ')
		next = writeBufEntry(b, buf, next, tables)
	}
	b.WriteByte(')')
	return next
}

func termName(tables *table.Tables, tag table.TermID) string {
	if tables == nil {
		return fmt.Sprintf("%d", tag)
	}
	return tables.Term(tag)
}
