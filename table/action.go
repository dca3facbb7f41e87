package table

// Action is a packed shift/reduce/accept instruction, indexed by state and
// terminal. The encoding follows spec.md §3:
//
//   - Shift:  negative value; abs(value) is the target state ID.
//   - Reduce: positive value; the low 6 bits are the reduction depth (number
//     of stack entries consumed, 0-63), the remaining bits are the TermID of
//     the resulting non-terminal.
//   - Accept: a distinguished reduce-like sentinel.
//   - Zero:   no action.
type Action int32

const (
	// ActionZero means "no action".
	ActionZero Action = 0

	// reduceDepthBits is the width of the depth field packed into the low
	// bits of a reduce Action.
	reduceDepthBits = 6
	reduceDepthMask = 1<<reduceDepthBits - 1

	// actionAccept is a sentinel outside the value space a legitimate
	// reduce or shift action can take (reduce actions are encoded as
	// non-negative depth/term pairs that never reach this magnitude in a
	// table of reasonable size; shifts are always negative).
	actionAccept Action = 1 << 30
)

// Shift returns the Action that shifts into the given state.
func Shift(target StateID) Action {
	return Action(-target)
}

// Reduce returns the Action that reduces depth stack entries into term.
func Reduce(term TermID, depth int) Action {
	return Action(uint32(term)<<reduceDepthBits | uint32(depth)&reduceDepthMask)
}

// Accept is the distinguished action marking top-level acceptance.
const Accept Action = actionAccept

func (a Action) IsZero() bool {
	return a == ActionZero
}

func (a Action) IsAccept() bool {
	return a == actionAccept
}

func (a Action) IsShift() bool {
	return a < 0 && a != actionAccept
}

func (a Action) IsReduce() bool {
	return a > 0 && a != actionAccept
}

// ShiftTarget returns the target state of a shift action. The caller must
// have checked IsShift.
func (a Action) ShiftTarget() StateID {
	return StateID(-a)
}

// ReduceDepth returns the number of stack entries a reduce action consumes.
// The caller must have checked IsReduce.
func (a Action) ReduceDepth() int {
	return int(a) & reduceDepthMask
}

// ReduceTerm returns the resulting non-terminal of a reduce action. The
// caller must have checked IsReduce.
func (a Action) ReduceTerm() TermID {
	return TermID(uint32(a) >> reduceDepthBits)
}
