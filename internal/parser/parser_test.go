package parser

import (
	"testing"

	"keel/internal/ast"
	"keel/internal/diag"
	"keel/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kl", []byte(input))
	astb := ast.NewBuilder(0, nil)
	bag := diag.NewBag(32)
	fileID := ParseFile(astb, fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return astb, fileID, bag
}

func declNames(astb *ast.Builder, ids []ast.DeclID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, _ := astb.Strings.Lookup(astb.Decl(id).Name)
		out = append(out, name)
	}
	return out
}

func TestParseContractMembers(t *testing.T) {
	astb, fileID, bag := parseSource(t, `
contract Vault {
    let owner: address;
    init(owner: address) { }
    fn deposit(amount: uint) { }
    fn deposit(amount: uint, memo: string) { }
    event Deposited(amount: uint);
    struct Entry { amount: uint; }
    type Shares = uint;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	file := astb.File(fileID)
	if len(file.Decls) != 1 {
		t.Fatalf("expected one top-level declaration, got %d", len(file.Decls))
	}
	contract := astb.Decl(file.Decls[0])
	if contract.Kind != ast.DeclContract {
		t.Fatalf("expected contract, got %v", contract.Kind)
	}
	if got, _ := astb.Strings.Lookup(contract.Name); got != "Vault" {
		t.Fatalf("expected contract name Vault, got %q", got)
	}
	if len(contract.Members) != 7 {
		t.Fatalf("expected 7 members, got %d: %v", len(contract.Members), declNames(astb, contract.Members))
	}

	ctor := astb.Decl(contract.Members[1])
	if ctor.Kind != ast.DeclConstructor {
		t.Fatalf("expected constructor, got %v", ctor.Kind)
	}
	if ctor.Name != contract.Name {
		t.Fatal("constructor must carry its contract's name")
	}
	if len(ctor.Params) != 1 {
		t.Fatalf("expected 1 constructor parameter, got %d", len(ctor.Params))
	}
}

func TestParseFunctionBodyBlocks(t *testing.T) {
	astb, fileID, bag := parseSource(t, `
fn main() {
    let a = 1;
    {
        let b = a + 1;
        call(b);
    }
    return a;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	file := astb.File(fileID)
	fn := astb.Decl(file.Decls[0])
	if fn.Kind != ast.DeclFunction || !fn.Body.IsValid() {
		t.Fatalf("expected function with body, got %+v", fn)
	}

	body := astb.Block(fn.Body)
	if len(body.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body.Stmts))
	}
	if body.Stmts[0].Kind != ast.StmtLocal {
		t.Fatalf("expected local declaration first, got %v", body.Stmts[0].Kind)
	}
	if body.Stmts[1].Kind != ast.StmtBlock {
		t.Fatalf("expected nested block second, got %v", body.Stmts[1].Kind)
	}
	nested := astb.Block(body.Stmts[1].Block)
	if len(nested.Stmts) != 2 || nested.Stmts[0].Kind != ast.StmtLocal {
		t.Fatalf("expected nested local declaration, got %+v", nested.Stmts)
	}
	if body.Stmts[2].Kind != ast.StmtOther {
		t.Fatalf("expected opaque statement last, got %v", body.Stmts[2].Kind)
	}
}

func TestParseImportAlias(t *testing.T) {
	astb, fileID, bag := parseSource(t, `
import "lib/math";
import "lib/strings" as str;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	file := astb.File(fileID)
	if len(file.Decls) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(file.Decls))
	}

	plain := astb.Decl(file.Decls[0])
	if got, _ := astb.Strings.Lookup(plain.Name); got != "math" {
		t.Fatalf("expected intrinsic name from path segment, got %q", got)
	}
	if plain.Alias.IsValid() {
		t.Fatal("plain import must have no alias")
	}

	aliased := astb.Decl(file.Decls[1])
	if got, _ := astb.Strings.Lookup(aliased.Alias); got != "str" {
		t.Fatalf("expected alias str, got %q", got)
	}
	if got := astb.NameOf(file.Decls[1]); got != aliased.Alias {
		t.Fatal("NameOf must prefer the alias for imports")
	}
}

func TestParseAnonymousParams(t *testing.T) {
	astb, fileID, bag := parseSource(t, `fn cb(_: uint, x: uint) { }`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	fn := astb.Decl(astb.File(fileID).Decls[0])
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
	if astb.Decl(fn.Params[0]).Name.IsValid() {
		t.Fatal("underscore parameter must be anonymous")
	}
	if got, _ := astb.Strings.Lookup(astb.Decl(fn.Params[1]).Name); got != "x" {
		t.Fatalf("expected second parameter x, got %q", got)
	}
}

func TestParseRecoversFromGarbage(t *testing.T) {
	astb, fileID, bag := parseSource(t, `
let ok: uint;
???;
fn still_parsed() { }
`)
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics for the garbage line")
	}
	file := astb.File(fileID)
	if len(file.Decls) != 2 {
		t.Fatalf("expected recovery to keep 2 declarations, got %d: %v",
			len(file.Decls), declNames(astb, file.Decls))
	}
	if astb.Decl(file.Decls[1]).Kind != ast.DeclFunction {
		t.Fatal("expected the function after the garbage to parse")
	}
}

func TestParseStrayCloserInBlock(t *testing.T) {
	astb, fileID, bag := parseSource(t, `
fn f() { ) }
fn g() { ] let x = 1; }
`)
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics for the stray closers")
	}

	file := astb.File(fileID)
	if len(file.Decls) != 2 {
		t.Fatalf("expected both functions to parse, got %d: %v",
			len(file.Decls), declNames(astb, file.Decls))
	}
	g := astb.Decl(file.Decls[1])
	if !g.Body.IsValid() {
		t.Fatal("expected a body after recovering from the stray closer")
	}
	body := astb.Block(g.Body)
	if len(body.Stmts) != 1 || body.Stmts[0].Kind != ast.StmtLocal {
		t.Fatalf("expected the local after the stray closer to survive, got %+v", body.Stmts)
	}
}

func TestParseFunctionSignatureOnly(t *testing.T) {
	astb, fileID, bag := parseSource(t, `fn declared(a: uint) -> uint;`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	fn := astb.Decl(astb.File(fileID).Decls[0])
	if fn.Body.IsValid() {
		t.Fatal("declaration without body must have no block")
	}
}
