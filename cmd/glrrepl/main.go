// Command glrrepl is an interactive REPL that feeds successive edits of a
// single buffer through the incremental-reuse pipeline (spec.md §4.7), so
// that pipeline has a hands-on exerciser the way vartan's own `vartan test`
// loop exercises a grammar (cmd/vartan/test.go) but for edits instead of
// fixture files. Each line the user enters replaces the whole buffer; the
// REPL diffs old against new, builds the single resulting reuse.ChangedRange,
// reparses with reuse.Map wired in, and reports how many subtrees were kept.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/nihei9/glrcore/input"
	"github.com/nihei9/glrcore/parse"
	"github.com/nihei9/glrcore/reuse"
	"github.com/nihei9/glrcore/table"
	"github.com/nihei9/glrcore/tree"
)

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{Text: "  >>", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: "  Error", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
}

func main() {
	tablePath := flag.String("table", "", "path to a compiled table file")
	flag.Parse()
	initDisplay()

	if *tablePath == "" {
		pterm.Error.Println("missing -table <path>")
		os.Exit(2)
	}
	f, err := os.Open(*tablePath)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tables, err := table.Load(f)
	f.Close()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}

	repl, err := readline.New("glrrepl> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	pterm.Info.Println("Welcome to glrrepl. Quit with <ctrl>D")
	(&session{tables: tables, repl: repl}).loop()
}

// session holds the REPL's running state: the last source text and the tree
// parsed from it, carried forward so the next line can be diffed against it.
type session struct {
	tables *table.Tables
	repl   *readline.Instance

	source string
	tree   *tree.Tree
}

func (s *session) loop() {
	for {
		line, err := s.repl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return
		}
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		s.apply(line)
	}
}

func (s *session) apply(next string) {
	var reuseMap *reuse.Map
	if s.tree != nil {
		rng := diffRange(s.source, next)
		reuseMap = reuse.Build(s.tree, []reuse.ChangedRange{rng})
	}

	var opts []parse.Option
	if reuseMap != nil {
		opts = append(opts, parse.WithReuse(reuseMap))
	}
	p := parse.New(s.tables, opts...)

	res, err := p.Parse(input.NewStringInput(next), nil, 0)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}

	s.source = next
	s.tree = res.Tree()

	pterm.Info.Println(s.tree.SExpr(s.tables))
	if reuseMap != nil {
		pterm.Printf("reused %v subtree(s)\n", reuseMap.Len())
	}
	if errs := res.Errors(); len(errs) > 0 {
		for _, e := range errs {
			pterm.Error.Println(e.Error())
		}
	}
}

// diffRange computes the single ChangedRange covering the smallest edit
// between old and next: the common prefix and suffix are trimmed off both
// ends, and everything between them is the change.
func diffRange(old, next string) reuse.ChangedRange {
	prefix := commonPrefixLen(old, next)
	maxSuffix := min(len(old)-prefix, len(next)-prefix)
	suffix := commonSuffixLen(old[prefix:], next[prefix:], maxSuffix)

	return reuse.ChangedRange{
		FromA: prefix, ToA: len(old) - suffix,
		FromB: prefix, ToB: len(next) - suffix,
	}
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffixLen(a, b string, max int) int {
	i := 0
	for i < max && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
