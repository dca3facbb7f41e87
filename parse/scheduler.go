package parse

import (
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/nihei9/glrcore/stack"
)

// scheduler orders live GSS heads the way spec.md §4.4 requires: "the
// scheduler always extends the head with the smallest pos first; within a
// tie, highest score first". Grounded in npillmayer-gorgo/lr/tables.go's use
// of the gods collections for table-building bookkeeping, generalized here
// to a binary heap used as a priority queue over the live frontier.
type scheduler struct {
	heap *binaryheap.Heap
}

func newScheduler() *scheduler {
	return &scheduler{
		heap: binaryheap.NewWith(func(a, b interface{}) int {
			ha, hb := a.(*stack.Head), b.(*stack.Head)
			if ha.Pos != hb.Pos {
				return ha.Pos - hb.Pos
			}
			// Higher score first on a position tie, so invert the
			// comparison: a "smaller" heap element is the higher score.
			return hb.Score - ha.Score
		}),
	}
}

func (s *scheduler) push(h *stack.Head) {
	s.heap.Push(h)
}

func (s *scheduler) pop() (*stack.Head, bool) {
	v, ok := s.heap.Pop()
	if !ok {
		return nil, false
	}
	return v.(*stack.Head), true
}
