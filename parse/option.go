package parse

import (
	"github.com/nihei9/glrcore/reuse"
	"github.com/nihei9/glrcore/table"
	"github.com/nihei9/glrcore/tokenize"
	"github.com/nihei9/glrcore/tree"
)

// defaultMaxHeads and defaultScoreGap bound the GLR frontier per spec.md
// §4.4's suggestion of "a small constant like 32 or a score gap threshold
// from the leader".
const (
	defaultMaxHeads = 32
	defaultScoreGap = 16
)

// Option configures a Parser, mirroring vartan's driver.ParserOption
// (driver/parser.go's MakeAST/MakeCST) generalized to this runtime's needs.
type Option func(*Parser)

// WithDialect selects which optional grammar features are active.
func WithDialect(d table.Dialect) Option {
	return func(p *Parser) { p.dialect = d }
}

// WithMaxHeads bounds the number of live GSS heads kept after each step.
func WithMaxHeads(n int) Option {
	return func(p *Parser) { p.maxHeads = n }
}

// WithScoreGap drops heads scoring more than n below the current leader,
// regardless of WithMaxHeads.
func WithScoreGap(n int) Option {
	return func(p *Parser) { p.scoreGap = n }
}

// WithRegistry supplies the external-tokenizer callbacks a table's
// KindExternal tokenizers name.
func WithRegistry(r *tokenize.Registry) Option {
	return func(p *Parser) { p.registry = r }
}

// WithTreeBuilder overrides the default tree.Builder (and so its
// TreeBuffer-packing threshold).
func WithTreeBuilder(b *tree.Builder) Option {
	return func(p *Parser) { p.builder = b }
}

// WithReuse supplies a reuse.Map built from a prior parse's tree and a list
// of edits, letting the parser shift whole unchanged subtrees instead of
// reparsing them (spec.md §4.7).
func WithReuse(m *reuse.Map) Option {
	return func(p *Parser) { p.reuseMap = m }
}

// WithCancel installs a cancellation check, polled between steps. When it
// returns true, the parse stops and wraps its unconsumed remainder in an
// ERR node (spec.md §5).
func WithCancel(fn func() bool) Option {
	return func(p *Parser) { p.cancel = fn }
}

// WithMaxRecoveryAttempts bounds how many tokenization attempts panic-mode
// recovery makes while skipping forward to a recovery terminal, before the
// stuck head falls back to the remaining strategies (spec.md §4.5: "a
// bounded attempt count").
func WithMaxRecoveryAttempts(n int) Option {
	return func(p *Parser) { p.maxRecoveryAttempts = n }
}
