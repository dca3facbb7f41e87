package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fixture is one source-text/expected-tree pair, the format's source and
// expectation split on a line containing only "---" (adapted from
// tspec.ParseTestCase's source/output split, without that package's
// grammar-DSL machinery).
type Fixture struct {
	Path   string
	Source string
	Expect string
	Err    error
}

// listFixtures walks path (a file or a directory) collecting Fixtures,
// mirroring tester.ListTestCases.
func listFixtures(path string) []*Fixture {
	fi, err := os.Stat(path)
	if err != nil {
		return []*Fixture{{Path: path, Err: err}}
	}
	if !fi.IsDir() {
		f := parseFixture(path)
		return []*Fixture{f}
	}

	es, err := os.ReadDir(path)
	if err != nil {
		return []*Fixture{{Path: path, Err: err}}
	}
	var out []*Fixture
	for _, e := range es {
		out = append(out, listFixtures(filepath.Join(path, e.Name()))...)
	}
	return out
}

func parseFixture(path string) *Fixture {
	b, err := os.ReadFile(path)
	if err != nil {
		return &Fixture{Path: path, Err: err}
	}

	lines := strings.Split(string(b), "\n")
	sep := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == "---" {
			sep = i
			break
		}
	}
	if sep < 0 {
		return &Fixture{Path: path, Err: fmt.Errorf("fixture has no --- separator between source and expected tree")}
	}

	return &Fixture{
		Path:   path,
		Source: strings.Join(lines[:sep], "\n"),
		Expect: strings.TrimSpace(strings.Join(lines[sep+1:], "\n")),
	}
}
