// Package driver wires the front-end phases together: load, tokenize,
// parse, resolve. Commands call into it instead of assembling phases
// themselves.
package driver

import (
	"keel/internal/ast"
	"keel/internal/diag"
	"keel/internal/parser"
	"keel/internal/sema"
	"keel/internal/source"
)

// CheckResult is the outcome of running the full front end on one file.
type CheckResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Sema    *sema.Result
	Bag     *diag.Bag
}

// Check loads a file and runs it through parsing and name resolution.
func Check(path string, maxDiagnostics int) (*CheckResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return checkLoaded(fs, fileID, maxDiagnostics), nil
}

// CheckVirtual runs the front end on in-memory content, for stdin and tests.
func CheckVirtual(name string, content []byte, maxDiagnostics int) *CheckResult {
	fs := source.NewFileSet()
	return checkLoaded(fs, fs.AddVirtual(name, content), maxDiagnostics)
}

func checkLoaded(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *CheckResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	builder := ast.NewBuilder(0, nil)
	astFile := parser.ParseFile(builder, file, parser.Options{Reporter: reporter})
	res := sema.Resolve(builder, astFile, sema.Options{Reporter: reporter})
	bag.Sort()

	return &CheckResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  astFile,
		Sema:    res,
		Bag:     bag,
	}
}
