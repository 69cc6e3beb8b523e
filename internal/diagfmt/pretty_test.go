package diagfmt

import (
	"strings"
	"testing"

	"keel/internal/ast"
	"keel/internal/diag"
	"keel/internal/parser"
	"keel/internal/sema"
	"keel/internal/source"
)

func collectDiags(t *testing.T, input string) (*ast.Builder, *sema.Result, *diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kl", []byte(input))
	astb := ast.NewBuilder(0, nil)
	bag := diag.NewBag(32)
	reporter := diag.BagReporter{Bag: bag}
	fileID := parser.ParseFile(astb, fs.Get(id), parser.Options{Reporter: reporter})
	res := sema.Resolve(astb, fileID, sema.Options{Reporter: reporter})
	bag.Sort()
	return astb, res, bag, fs
}

func TestPrettyHeadingAndUnderline(t *testing.T) {
	_, _, bag, fs := collectDiags(t, "let x: uint;\nlet x: uint;\n")
	if !bag.HasErrors() {
		t.Fatal("expected a duplicate diagnostic")
	}

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true})
	out := sb.String()

	if !strings.Contains(out, "test.kl:2:5: ERROR[K3001]: duplicate declaration of 'x'") {
		t.Fatalf("missing heading line in:\n%s", out)
	}
	if !strings.Contains(out, "previous declaration here") {
		t.Fatalf("missing note in:\n%s", out)
	}
	if !strings.Contains(out, "    let x: uint;\n        ^") {
		t.Fatalf("missing context underline in:\n%s", out)
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	_, _, bag, fs := collectDiags(t, "let x: uint;\nlet x: uint;\n")

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	if strings.Contains(sb.String(), "previous declaration here") {
		t.Fatal("notes must be suppressed by default")
	}
}

func TestJSONReport(t *testing.T) {
	_, _, bag, fs := collectDiags(t, "let x: uint;\nlet x: uint;\n")

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})
	if out.Count != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "K3001" || d.Severity != "ERROR" {
		t.Fatalf("unexpected code/severity: %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 5 {
		t.Fatalf("unexpected location: %+v", d.Location)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("expected one note, got %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	_, _, bag, fs := collectDiags(t, "let a: uint;\nlet a: uint;\nlet b: uint;\nlet b: uint;\n")
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("expected truncation to 1, got %d", out.Count)
	}
}

func TestBuildScopeTree(t *testing.T) {
	astb, res, bag, _ := collectDiags(t, `
contract Vault {
    let owner: address;
    fn deposit(amount: uint) { }
    fn deposit(amount: uint, memo: string) { }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	tree := BuildScopeTree(res, astb)
	if tree.Kind != "file" {
		t.Fatalf("expected file root, got %q", tree.Kind)
	}
	if len(tree.Symbols) != 1 || tree.Symbols[0].Name != "Vault" {
		t.Fatalf("expected only Vault in the file scope, got %+v", tree.Symbols)
	}

	if len(tree.Children) != 1 {
		t.Fatalf("expected one child scope, got %d", len(tree.Children))
	}
	body := tree.Children[0]
	if body.Kind != "contract" || body.Owner != "Vault" {
		t.Fatalf("unexpected contract scope: %+v", body)
	}
	for _, sym := range body.Symbols {
		if sym.Name == "deposit" && len(sym.Kinds) != 2 {
			t.Fatalf("expected deposit overloads grouped, got %+v", sym)
		}
	}
}
