package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"keel/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCheckVirtual(t *testing.T) {
	res := CheckVirtual("main.kl", []byte(`
contract Token {
    let supply: uint;
    fn mint(amount: uint) { }
}
`), 16)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if got := res.Sema.ResolveName(res.Sema.FileScope, "Token", false); len(got) != 1 {
		t.Fatalf("expected Token resolved, got %v", got)
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.kl", "let x = 1;\n")

	res, err := Tokenize(path, 16)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	last := res.Tokens[len(res.Tokens)-1]
	if last.Kind != token.EOF {
		t.Fatalf("expected EOF terminator, got %v", last.Kind)
	}
	if res.Tokens[0].Kind != token.KwLet {
		t.Fatalf("expected let keyword first, got %v", res.Tokens[0].Kind)
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.kl", "contract A { }\n")
	writeFile(t, dir, "dup.kl", "let x: uint;\nlet x: uint;\n")
	writeFile(t, dir, "notes.txt", "not a source file\n")

	results, err := CheckDir(context.Background(), dir, 16, 2)
	if err != nil {
		t.Fatalf("check dir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Sorted order: clean.kl before dup.kl.
	if results[0].Bag.HasErrors() {
		t.Fatalf("clean file must have no errors: %+v", results[0].Bag.Items())
	}
	if !results[1].Bag.HasErrors() {
		t.Fatal("expected the duplicate to be reported")
	}
}

func TestCheckDirEmpty(t *testing.T) {
	results, err := CheckDir(context.Background(), t.TempDir(), 16, 0)
	if err != nil {
		t.Fatalf("check dir: %v", err)
	}
	if results != nil {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.kl", "contract A { fn f() { } }\n")

	results, err := CheckDir(context.Background(), dir, 16, 1)
	if err != nil {
		t.Fatalf("check dir: %v", err)
	}

	out := filepath.Join(dir, "symbols.bin")
	if err := WriteSnapshot(out, BuildSnapshot(results)); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	snap, err := ReadSnapshot(out)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if snap.Version != SnapshotVersion || len(snap.Files) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Files[0].Scopes.Kind != "file" {
		t.Fatalf("expected a file scope root, got %q", snap.Files[0].Scopes.Kind)
	}
}
