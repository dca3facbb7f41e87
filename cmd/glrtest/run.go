package main

import (
	"fmt"
	"os"

	"github.com/nihei9/glrcore/input"
	"github.com/nihei9/glrcore/parse"
	"github.com/nihei9/glrcore/table"
)

// Result is one fixture's outcome, printed in tester.TestResult's style.
type Result struct {
	Path string
	Err  error
	Want string
	Got  string
}

func (r *Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("FAIL %v\n    %v\n    expected: %v\n    actual:   %v", r.Path, r.Err, r.Want, r.Got)
	}
	return fmt.Sprintf("PASS %v", r.Path)
}

func runFixture(tables *table.Tables, c *Fixture) *Result {
	p := parse.New(tables)
	res, err := p.Parse(input.NewStringInput(c.Source), nil, 0)
	if err != nil {
		return &Result{Path: c.Path, Err: fmt.Errorf("parse failed: %w", err)}
	}
	got := res.Tree().SExpr(tables)
	if got != c.Expect {
		return &Result{Path: c.Path, Err: fmt.Errorf("tree mismatch"), Want: c.Expect, Got: got}
	}
	return &Result{Path: c.Path}
}

func loadTables(path string) (*table.Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return table.Load(f)
}
