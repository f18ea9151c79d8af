package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vareach/internal/ast"
	"vareach/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.js",
	Short: "Print the statement tree of a JavaScript file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("stats", false, "print node counts instead of the tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	stats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if err := printDiagnostics(result.Bag, result.FileSet, colorFlag, false); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if stats {
		for _, k := range []ast.NodeKind{ast.NodeBlock, ast.NodeVarDecl, ast.NodeLoop, ast.NodeBranch, ast.NodeStmt} {
			fmt.Fprintf(out, "%-8s %d\n", k, result.Program.CountKind(k))
		}
	} else if err := ast.Dump(out, result.Program); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("parse: %s has syntax errors", args[0])
	}
	return nil
}
