package tokenize

import (
	"sort"

	"github.com/nihei9/glrcore/input"
	"github.com/nihei9/glrcore/table"
)

// runGroupDFA executes the packed group-DFA table starting at state 0,
// per spec.md §4.2:
//
//   - At each state, if the group mask fails, stop.
//   - Scan accepting entries; a match updates the working token via
//     AcceptToken, so the last matching entry scanned wins.
//   - Binary-search outgoing edges by the next character; advance on match.
//   - Terminate when no edge matches or the group mask fails.
func runGroupDFA(dfa *table.GroupDFA, terms []table.TermInfo, s *input.Stream, groupMask uint32, dialect table.Dialect) bool {
	accepted := false
	state := int32(0)
	for {
		if state < 0 || int(state) >= len(dfa.States) {
			return accepted
		}
		st := &dfa.States[state]
		if st.GroupMask&groupMask == 0 {
			return accepted
		}

		for _, acc := range st.Accepts {
			if acc.Mask&groupMask == 0 {
				continue
			}
			mask := uint32(0)
			if int(acc.Term) < len(terms) {
				mask = terms[acc.Term].DialectMask
			}
			if !dialect.Allows(mask) {
				continue
			}
			s.AcceptToken(int32(acc.Term), 0)
			accepted = true
		}

		c := s.Next()
		if c == -1 {
			return accepted
		}

		edges := st.Edges
		i := sort.Search(len(edges), func(i int) bool { return edges[i].To > int32(c) })
		if i >= len(edges) || edges[i].From > int32(c) {
			return accepted
		}

		state = edges[i].Next
		s.Advance(1)
	}
}
