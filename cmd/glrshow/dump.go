package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nihei9/glrcore/table"
)

func init() {
	cmd := &cobra.Command{
		Use:     "dump <table file>",
		Short:   "Print every state's actions, gotos and recoveries",
		Example: `  glrshow dump grammar.tbl`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDump,
	}
	rootCmd.AddCommand(cmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	tables, err := loadTables(args[0])
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println(tables.Name)
	pterm.Printf("states: %v  tokenizers: %v  terms: %v  initial: %v\n",
		len(tables.States), len(tables.Tokenizers), len(tables.Terms), tables.InitialState)

	for i := range tables.States {
		s := &tables.States[i]
		pterm.DefaultSection.WithLevel(2).Printf("state %v", s.ID)

		rows := [][]string{{"term", "action"}}
		for _, a := range s.Actions {
			rows = append(rows, []string{tables.Term(a.Term), describeAction(a.Action)})
		}
		for _, g := range s.Goto {
			rows = append(rows, []string{tables.Term(g.Term), fmt.Sprintf("goto %v", g.State)})
		}
		for _, r := range s.Recover {
			rows = append(rows, []string{tables.Term(r.Term), fmt.Sprintf("recover %v", r.State)})
		}
		if s.HasAlwaysReduce {
			rows = append(rows, []string{"*", "always-reduce " + describeAction(s.AlwaysReduce)})
		}
		if s.HasDefaultReduce {
			rows = append(rows, []string{"*", "default-reduce " + describeAction(s.DefaultReduce)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}
	}
	return nil
}

func describeAction(a table.Action) string {
	switch {
	case a.IsAccept():
		return "accept"
	case a.IsShift():
		return fmt.Sprintf("shift %v", a.ShiftTarget())
	case a.IsReduce():
		return fmt.Sprintf("reduce %v (depth %v)", a.ReduceTerm(), a.ReduceDepth())
	default:
		return "-"
	}
}

func loadTables(path string) (*table.Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open table file %s: %w", path, err)
	}
	defer f.Close()
	return table.Load(f)
}
