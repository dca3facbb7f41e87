package parse

import "fmt"

// SyntaxError records one recoverable grammar error encountered during a
// parse: a position where no action applied and the parser had to skip or
// insert tokens to keep going (spec.md §4.5/§7). Unlike table.TableError,
// this is never fatal — it is collected, and the parse always finishes with
// a tree.
type SyntaxError struct {
	Pos     int
	State   int32
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse: syntax error at %d (state %d): %s", e.Pos, e.State, e.Message)
}
