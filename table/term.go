// Package table holds the numeric encoding of terms and actions and the
// per-state tables that drive the parser and tokenizer interpreters.
package table

// TermID identifies a terminal or non-terminal symbol. The low bit marks
// whether the term is tagged, i.e. whether it appears as a node in the
// output tree.
type TermID uint32

// Tagged reports whether values of this term are entered into the syntax
// tree. Untagged terms exist only as stack bookkeeping.
func (t TermID) Tagged() bool {
	return t&1 != 0
}

// StateID identifies a ParseState within a Tables' State slice.
type StateID int32

// TokenizerID identifies a Tokenizer within a Tables' Tokenizers slice. -1
// means "none".
type TokenizerID int32

const NoTokenizer TokenizerID = -1

// TermInfo carries the static, table-supplied metadata for a term: its name
// (used for tree dumps and syntax-error messages) and its dialect gate.
// Whether a term is tagged comes from its TermID's low bit (TermID.Tagged),
// not from here. Entries are dense and indexed by TermID, per spec.md §9 (no
// string-keyed TagMap).
type TermInfo struct {
	Name string

	// DialectMask gates this term to a Dialect: the term may only be
	// accepted by the tokenizer interpreter when the active Dialect allows
	// it (spec.md §4.2). Zero means the term is unconditional.
	DialectMask uint32
}
