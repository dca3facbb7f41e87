package tokenize

import "github.com/nihei9/glrcore/input"

// Stack is the narrow view of a GLR stack head an external tokenizer needs:
// enough to make a contextual decision without tokenize depending on the
// parse or stack packages (spec.md §6: "a callback (stream, stack) -> void").
type Stack interface {
	// State returns the ParseState ID the stack head currently sits in.
	State() int32
}

// ExternalFunc is a host-provided tokenizer callback. It may call
// s.AcceptToken any number of times; the last call wins, matching
// input.Stream.AcceptToken's overwrite semantics.
type ExternalFunc func(s *input.Stream, stack Stack)

// Registry binds table.Tokenizer.ExternalName values (which the binary
// table blob carries, since callbacks cannot be serialized) to the actual
// Go functions the host links in alongside the compiled table.
type Registry struct {
	funcs map[string]ExternalFunc
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]ExternalFunc{}}
}

// Register binds name to fn. Registering the same name twice replaces the
// previous binding.
func (r *Registry) Register(name string, fn ExternalFunc) {
	r.funcs[name] = fn
}

// Lookup returns the bound function for name, if any.
func (r *Registry) Lookup(name string) (ExternalFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}
