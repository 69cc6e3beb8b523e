package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keel/internal/diagfmt"
	"keel/internal/driver"
	"keel/internal/ui"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] path",
	Short: "Print the resolved scope tree",
	Long: `Symbols checks a file or directory and prints every scope with the
names bound in it. Shadowed and overloaded bindings are visible in the tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runSymbols,
}

func init() {
	symbolsCmd.Flags().String("format", "tree", "output format (tree|json)")
	symbolsCmd.Flags().Bool("prelude", false, "include builtin declarations")
	symbolsCmd.Flags().String("out", "", "write a msgpack snapshot to this path")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	results, err := checkTarget(cmd, args)
	if err != nil {
		return err
	}

	for _, res := range results {
		if res.Bag.HasErrors() {
			diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: true,
			})
		}
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := driver.WriteSnapshot(out, driver.BuildSnapshot(results)); err != nil {
			return err
		}
	}

	format, _ := cmd.Flags().GetString("format")
	showPrelude, _ := cmd.Flags().GetBool("prelude")
	for _, res := range results {
		if res.Sema == nil {
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(os.Stdout, "== %s\n", res.File.Path)
		}
		switch format {
		case "tree":
			if showPrelude {
				ui.RenderPrelude(os.Stdout, res.Sema, res.Builder)
			}
			ui.RenderScopeTree(os.Stdout, res.Sema, res.Builder)
		case "json":
			if err := diagfmt.SymbolsJSON(os.Stdout, res.Sema, res.Builder); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}
	return nil
}
