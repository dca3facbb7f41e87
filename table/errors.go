package table

import "fmt"

// TableError reports a structural table inconsistency: an unknown state, an
// action out of range, or any other sign the table does not match the
// runtime's expectations. Per spec.md §7 these are fatal programming errors,
// never surfaced as recoverable parse errors.
type TableError struct {
	Op          string
	StateID     StateID
	Fingerprint string
	Message     string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table: %s: state %d: %s (table %s)", e.Op, e.StateID, e.Message, e.Fingerprint)
}
