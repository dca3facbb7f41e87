package table

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/cnf/structhash"
)

// Tables is the immutable, read-only binary blob a parser is built from
// (spec.md §6): states, actions, gotos, recoveries, tokenizer DFAs, term
// names and dialect masks. It is produced offline by the (out-of-scope)
// grammar generator and loaded here without mutation.
type Tables struct {
	Name string

	States []ParseState

	Tokenizers []Tokenizer

	Terms []TermInfo

	// EOFTerm and ErrTerm are the reserved terminal IDs described in
	// spec.md §3.
	EOFTerm TermID
	ErrTerm TermID

	InitialState StateID

	// StartTerm is the non-terminal the initial state reduces to on
	// acceptance.
	StartTerm TermID

	// Dialects names the optional-feature bits a Dialect value may set.
	Dialects []string
}

// Term returns the human-readable name of a term, for tree dumps and error
// messages. Term names are looked up by dense array index, not by a
// string-keyed map (spec.md §9).
func (t *Tables) Term(id TermID) string {
	i := int(id)
	if i < 0 || i >= len(t.Terms) {
		return fmt.Sprintf("<term:%d>", id)
	}
	return t.Terms[i].Name
}

// State returns the ParseState for the given ID, or a TableError if id is
// out of range. Structural table errors are fatal per spec.md §7: they are
// programming errors (a corrupt or mismatched table), never malformed-input
// errors.
func (t *Tables) State(id StateID) (*ParseState, error) {
	i := int(id)
	if i < 0 || i >= len(t.States) {
		return nil, &TableError{
			Op:          "State",
			StateID:     id,
			Fingerprint: t.Fingerprint(),
			Message:     fmt.Sprintf("state id %d out of range [0,%d)", id, len(t.States)),
		}
	}
	return &t.States[i], nil
}

// Load decodes a Tables value previously written by Save. The encoding is
// encoding/gob, the standard library's binary serialization, matching
// spec.md §6's "binary blob ... loadable without mutation" without inventing
// a bespoke wire format.
func Load(r io.Reader) (*Tables, error) {
	var t Tables
	if err := gob.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("table: decode: %w", err)
	}
	return &t, nil
}

// Save encodes t for later Load.
func (t *Tables) Save(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("table: encode: %w", err)
	}
	return nil
}

// Fingerprint returns a stable, short hash identifying this compiled table,
// computed with cnf/structhash. It is attached to TableError so a caller can
// tell which compiled table produced a structural error when several are
// loaded in the same process.
func (t *Tables) Fingerprint() string {
	h, err := structhash.Hash(t, 1)
	if err != nil {
		// structhash only fails on unhashable types (channels, funcs); Tables
		// contains none, so this path is unreachable in practice.
		return "unknown"
	}
	return h
}

// Bytes returns t's Save encoding as an in-memory byte slice, ready to be
// fed back to Load.
func (t *Tables) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
