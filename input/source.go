// Package input implements the random-access character stream the
// tokenizer interpreter reads from: chunked caching over a host-provided
// Input, gap elision, and lookahead tracking for incremental reuse.
package input

// Input is the host-provided source of characters (spec.md §6). chunk must
// return a non-empty substring starting at from, up to the host's own
// chunking boundary; the caller (InputStream) copies it before the next
// call, since the returned string is only guaranteed valid until then.
type Input interface {
	// Length returns the total length of the input in the same coordinate
	// system as chunk/read.
	Length() int

	// Chunk returns a non-empty string starting at from. The returned
	// string must not be retained past the next call to Chunk.
	Chunk(from int) string

	// Read returns the exact substring [from, to).
	Read(from, to int) string
}

// Gap is a half-open range of the source to be treated as absent, e.g. for
// mixed-language embedding (spec.md Glossary).
type Gap struct {
	From, To int
}

// StringInput adapts a plain string to Input, for tests and simple callers.
type StringInput struct {
	s string
}

// NewStringInput wraps s as an Input.
func NewStringInput(s string) *StringInput {
	return &StringInput{s: s}
}

func (in *StringInput) Length() int {
	return len(in.s)
}

func (in *StringInput) Chunk(from int) string {
	if from >= len(in.s) {
		return ""
	}
	return in.s[from:]
}

func (in *StringInput) Read(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(in.s) {
		to = len(in.s)
	}
	if from >= to {
		return ""
	}
	return in.s[from:to]
}
