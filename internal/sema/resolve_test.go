package sema

import (
	"testing"

	"keel/internal/ast"
	"keel/internal/diag"
	"keel/internal/parser"
	"keel/internal/source"
	"keel/internal/symbols"
)

func resolveSource(t *testing.T, input string) (*ast.Builder, *Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kl", []byte(input))
	astb := ast.NewBuilder(0, nil)
	bag := diag.NewBag(32)
	reporter := diag.BagReporter{Bag: bag}
	fileID := parser.ParseFile(astb, fs.Get(id), parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse diagnostics: %+v", bag.Items())
	}
	res := Resolve(astb, fileID, Options{Reporter: reporter})
	return astb, res, bag
}

func TestResolveContractAndMembers(t *testing.T) {
	astb, res, bag := resolveSource(t, `
contract Vault {
    let owner: address;
    fn deposit(amount: uint) { }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	contracts := res.ResolveName(res.FileScope, "Vault", false)
	if len(contracts) != 1 || astb.KindOf(contracts[0]) != ast.DeclContract {
		t.Fatalf("expected Vault bound in file scope, got %v", contracts)
	}

	body, ok := res.ScopeOf[contracts[0]]
	if !ok {
		t.Fatal("contract must have a body scope")
	}
	if got := res.ResolveName(body, "owner", false); len(got) != 1 {
		t.Fatalf("expected owner bound in contract scope, got %v", got)
	}
	// The contract's own name resolves through the enclosing scope.
	if got := res.ResolveName(body, "Vault", true); len(got) != 1 || got[0] != contracts[0] {
		t.Fatalf("expected Vault reachable from contract scope, got %v", got)
	}
	if got := res.ResolveName(body, "Vault", false); got != nil {
		t.Fatalf("Vault must not be bound in its own scope, got %v", got)
	}
}

func TestResolveConstructorIsInvisible(t *testing.T) {
	astb, res, bag := resolveSource(t, `
contract Vault {
    init(owner: address) { }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	contract := res.ResolveName(res.FileScope, "Vault", false)[0]
	body := res.ScopeOf[contract]

	// Inside the contract, its name still means the contract type: the
	// constructor's invisible binding never resolves.
	got := res.ResolveName(body, "Vault", true)
	if len(got) != 1 || astb.KindOf(got[0]) != ast.DeclContract {
		t.Fatalf("expected contract from recursive lookup, got %v", got)
	}
}

func TestResolveConstructorBlocksVisibleMember(t *testing.T) {
	_, _, bag := resolveSource(t, `
contract Vault {
    init() { }
    let Vault: uint;
}
`)
	if !bag.HasErrors() {
		t.Fatal("expected a duplicate-name diagnostic")
	}
	if bag.Items()[0].Code != diag.SemaDuplicateName {
		t.Fatalf("expected %v, got %v", diag.SemaDuplicateName, bag.Items()[0].Code)
	}
}

func TestResolveDuplicateReportsPrevious(t *testing.T) {
	_, _, bag := resolveSource(t, `
let total: uint;
let total: uint;
`)
	if !bag.HasErrors() {
		t.Fatal("expected a duplicate-name diagnostic")
	}
	d := bag.Items()[0]
	if d.Code != diag.SemaDuplicateName {
		t.Fatalf("expected %v, got %v", diag.SemaDuplicateName, d.Code)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "previous declaration here" {
		t.Fatalf("expected a previous-declaration note, got %+v", d.Notes)
	}
}

func TestResolveOverloadedFunctions(t *testing.T) {
	_, res, bag := resolveSource(t, `
fn get(k: uint) { }
fn get(k: uint, fallback: uint) { }
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if got := res.ResolveName(res.FileScope, "get", false); len(got) != 2 {
		t.Fatalf("expected 2 overloads, got %d", len(got))
	}
}

func TestResolveLocalShadowsField(t *testing.T) {
	astb, res, bag := resolveSource(t, `
contract C {
    let x: uint;
    fn f() {
        let x = 1;
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	contract := res.ResolveName(res.FileScope, "C", false)[0]
	body := res.ScopeOf[contract]
	field := res.ResolveName(body, "x", false)
	if len(field) != 1 || astb.KindOf(field[0]) != ast.DeclVar {
		t.Fatalf("expected x bound in contract scope, got %v", field)
	}

	fn := res.ResolveName(body, "f", false)[0]
	fnScope := res.ScopeOf[fn]
	local := res.ResolveName(fnScope, "x", true)
	if len(local) != 1 || astb.KindOf(local[0]) != ast.DeclVar {
		t.Fatalf("expected local x to shadow the field, got %v", local)
	}
	if local[0] == field[0] {
		t.Fatal("shadowed binding must not leak through")
	}
}

func TestResolveUserShadowsPrelude(t *testing.T) {
	astb, res, bag := resolveSource(t, `fn assert(cond: bool) { }`)
	if bag.HasErrors() {
		t.Fatalf("shadowing a builtin must not conflict: %+v", bag.Items())
	}
	got := res.ResolveName(res.FileScope, "assert", true)
	if len(got) != 1 || astb.KindOf(got[0]) != ast.DeclFunction {
		t.Fatalf("expected the user function to shadow the builtin, got %v", got)
	}
	builtin := res.ResolveName(res.Prelude, "require", false)
	if len(builtin) != 1 || astb.KindOf(builtin[0]) != ast.DeclBuiltin {
		t.Fatalf("expected builtin require in the prelude, got %v", builtin)
	}
}

func TestResolveImportRebindSamePath(t *testing.T) {
	astb, res, bag := resolveSource(t, `
import "lib/math";
import "lib/math";
`)
	if bag.HasErrors() {
		t.Fatalf("re-importing the same path must be silent: %+v", bag.Items())
	}
	got := res.ResolveName(res.FileScope, "math", false)
	if len(got) != 1 || astb.KindOf(got[0]) != ast.DeclImport {
		t.Fatalf("expected a single import binding, got %v", got)
	}
}

func TestResolveImportClashDifferentPath(t *testing.T) {
	_, _, bag := resolveSource(t, `
import "lib/math";
import "vendor/math";
`)
	if !bag.HasErrors() {
		t.Fatal("expected a conflict for colliding import names")
	}
}

func TestResolveImportAliasBindsAlias(t *testing.T) {
	_, res, bag := resolveSource(t, `import "lib/strings" as str;`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if got := res.ResolveName(res.FileScope, "str", false); len(got) != 1 {
		t.Fatalf("expected the alias bound, got %v", got)
	}
	if got := res.ResolveName(res.FileScope, "strings", false); got != nil {
		t.Fatalf("intrinsic name must not bind when aliased, got %v", got)
	}
}

func TestResolveAnonymousParamsNeverClash(t *testing.T) {
	_, _, bag := resolveSource(t, `fn cb(_: uint, _: uint) { }`)
	if bag.HasErrors() {
		t.Fatalf("anonymous parameters must not conflict: %+v", bag.Items())
	}
}

func TestResolveNestedBlockScopes(t *testing.T) {
	_, res, bag := resolveSource(t, `
fn f(a: uint) {
    let b = a;
    {
        let c = b;
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	fn := res.ResolveName(res.FileScope, "f", false)[0]
	fnScope := res.ScopeOf[fn]
	if got := res.ResolveName(fnScope, "c", false); got != nil {
		t.Fatalf("inner local must not be bound in the function scope, got %v", got)
	}

	var blockScope symbols.ScopeID
	for _, child := range res.Table.Get(fnScope).Children {
		blockScope = child
	}
	if !blockScope.IsValid() {
		t.Fatal("expected a child block scope")
	}
	if got := res.ResolveName(blockScope, "c", false); len(got) != 1 {
		t.Fatalf("expected c bound in the block scope, got %v", got)
	}
	if got := res.ResolveName(blockScope, "a", true); len(got) != 1 {
		t.Fatalf("expected a reachable from the block scope, got %v", got)
	}
}

func TestResolveStructFieldNamespace(t *testing.T) {
	_, res, bag := resolveSource(t, `
struct Point { x: uint; y: uint; }
let x: uint;
`)
	if bag.HasErrors() {
		t.Fatalf("struct fields must not clash with file-scope names: %+v", bag.Items())
	}
	point := res.ResolveName(res.FileScope, "Point", false)[0]
	fields := res.ScopeOf[point]
	if got := res.ResolveName(fields, "x", false); len(got) != 1 {
		t.Fatalf("expected field x in the struct scope, got %v", got)
	}
}
