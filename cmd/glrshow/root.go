// Command glrshow inspects a compiled Tables blob: per-state action/goto/
// recovery rows and a report of how much a row-displacement encoding would
// shrink it. Grammar compilation itself stays out of scope (spec.md §1); this
// tool only ever reads an already-compiled table, the way vartan's own
// `describe`/`show` subcommands read an already-compiled grammar report
// (cmd/vartan/describe.go, cmd/vartan/show.go).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "glrshow",
	Short:         "Inspect a compiled GLR parser table",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
