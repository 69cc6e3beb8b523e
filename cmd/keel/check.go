package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keel/internal/diagfmt"
	"keel/internal/driver"
	"keel/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Parse and resolve names in keel sources",
	Long: `Check runs the front end over a file or directory: it parses every
source and resolves all declared names, reporting duplicates and conflicts.
Without a path it checks the project's source directory from keel.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	results, err := checkTarget(cmd, args)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	failed := false
	for _, res := range results {
		if res.Bag.Len() == 0 {
			continue
		}
		switch format {
		case "pretty":
			diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: true,
			})
		case "json":
			if err := diagfmt.JSON(os.Stdout, res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		if res.Bag.HasErrors() {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("check failed")
	}
	return nil
}

// checkTarget runs the front end on the argument: a .kl file, a directory,
// or (without arguments) the manifest's source directory.
func checkTarget(cmd *cobra.Command, args []string) ([]*driver.CheckResult, error) {
	path, err := resolveTarget(args)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return driver.CheckDir(cmd.Context(), path, maxDiagnostics(cmd), jobs(cmd))
	}
	res, err := driver.Check(path, maxDiagnostics(cmd))
	if err != nil {
		return nil, err
	}
	return []*driver.CheckResult{res}, nil
}

func resolveTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	manifest, ok, err := project.Load(".")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no %s found; pass a file or directory explicitly", project.ManifestName)
	}
	return manifest.SourceDir(), nil
}
