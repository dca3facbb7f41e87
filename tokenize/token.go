// Package tokenize executes the packed group-DFA tokenizer tables and host
// external-tokenizer hooks described in spec.md §4.2.
package tokenize

import "github.com/nihei9/glrcore/input"

// CachedToken is the outcome of tokenizing at some input position, kept
// around so the incremental layer can decide whether it survives an edit
// (spec.md §3). It wraps input.Token, whose fields it mirrors, plus the
// input position it starts at.
type CachedToken struct {
	Start     int
	Value     int32
	End       int
	Extended  bool
	LookAhead int
	Mask      uint32

	// Context is set only for tokens produced by a contextual tokenizer
	// run against a stack; such tokens are never placed in the cross-stack
	// cache (spec.md §4.2) and Context records the state of the stack head
	// that produced them, purely for diagnostics.
	Context int32
}

func fromInputToken(t *input.Token) CachedToken {
	return CachedToken{
		Start:     t.Start,
		Value:     t.Value,
		End:       t.End,
		Extended:  t.Extended,
		LookAhead: t.LookAhead,
		Mask:      t.Mask,
	}
}

// Accepted reports whether a token was actually recognized (as opposed to
// "no tokenizer matched anything here").
func (c CachedToken) Accepted() bool {
	return c.Value >= 0
}
