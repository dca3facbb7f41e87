// Command glrtest runs fixture files (input text plus an expected
// S-expression) against a compiled Tables blob. Adapted from vartan's
// tester package and cmd/vartan/test.go, generalized to run against this
// runtime's table/tree types instead of a grammar compiled in-process.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "glrtest <table file> <fixture file>|<fixture directory>",
	Short:         "Run fixture files against a compiled GLR parser table",
	Example:       `  glrtest grammar.tbl testdata`,
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	tables, err := loadTables(args[0])
	if err != nil {
		return fmt.Errorf("cannot read a table: %w", err)
	}

	cases := listFixtures(args[1])
	errOccurred := false
	for _, c := range cases {
		if c.Err != nil {
			fmt.Fprintf(os.Stderr, "failed to read a fixture: %v\n%v\n", c.Path, c.Err)
			errOccurred = true
		}
	}
	if errOccurred {
		return errors.New("cannot run test")
	}

	testFailed := false
	for _, c := range cases {
		r := runFixture(tables, c)
		fmt.Fprintln(os.Stdout, r)
		if r.Err != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("test failed")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
