package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"keel/internal/diag"
	"keel/internal/source"
)

// listSourceFiles returns every *.kl file under dir, sorted for a
// deterministic processing order.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".kl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir runs the front end over every *.kl file under dir, at most jobs
// files at a time (jobs <= 0 means GOMAXPROCS).
//
// Files are fully independent: each gets its own file set, AST arenas, and
// scope table, so no synchronization crosses file boundaries. Results come
// back in the same sorted order as the file list.
func CheckDir(ctx context.Context, dir string, maxDiagnostics, jobs int) ([]*CheckResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*CheckResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := Check(path, maxDiagnostics)
			if err != nil {
				// I/O failures become diagnostics so one unreadable file
				// does not abort the whole run.
				bag := diag.NewBag(maxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFile,
					Message:  "failed to load file: " + err.Error(),
				})
				fs := source.NewFileSet()
				res = &CheckResult{
					FileSet: fs,
					File:    fs.Get(fs.AddVirtual(path, nil)),
					Bag:     bag,
				}
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
