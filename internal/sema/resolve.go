// Package sema builds the scope tree for a parsed file and registers every
// declaration in it, reporting name conflicts. The scope table itself lives
// in internal/symbols; this package owns the tree topology: which AST
// construct opens a scope and which scope each declaration lands in.
package sema

import (
	"fmt"

	"keel/internal/ast"
	"keel/internal/diag"
	"keel/internal/source"
	"keel/internal/symbols"
)

// Options configures the resolution pass.
type Options struct {
	Reporter diag.Reporter
	// NoPrelude skips installing builtin declarations, mostly for tests.
	NoPrelude bool
}

// Result is the finished scope tree for one file.
type Result struct {
	Table     *symbols.Table
	Prelude   symbols.ScopeID
	FileScope symbols.ScopeID
	// ScopeOf maps scope-opening declarations (contracts, functions,
	// constructors, structs) to the scope they introduced.
	ScopeOf map[ast.DeclID]symbols.ScopeID

	astb *ast.Builder
}

// Resolve walks one parsed file and produces its scope tree.
func Resolve(astb *ast.Builder, fileID ast.FileID, opts Options) *Result {
	table := symbols.NewTable(astb, 0)
	r := &resolver{
		astb:     astb,
		table:    table,
		reporter: opts.Reporter,
		scopeOf:  make(map[ast.DeclID]symbols.ScopeID),
	}

	prelude := table.NewScope(symbols.ScopePrelude, symbols.NoScopeID, ast.NodeRef{})
	if !opts.NoPrelude {
		r.installPrelude(prelude)
	}
	fileScope := table.NewScope(symbols.ScopeFile, prelude, ast.FileNode(fileID))

	file := astb.File(fileID)
	if file != nil {
		for _, declID := range file.Decls {
			r.topLevel(fileScope, declID)
		}
	}

	return &Result{
		Table:     table,
		Prelude:   prelude,
		FileScope: fileScope,
		ScopeOf:   r.scopeOf,
		astb:      astb,
	}
}

// ResolveName looks a spelled-out name up from the given scope outwards.
// Returns nil when the name was never interned or is unbound.
func (res *Result) ResolveName(scope symbols.ScopeID, name string, recursive bool) []ast.DeclID {
	id := res.astb.Strings.Intern(name)
	return res.Table.Resolve(scope, id, recursive)
}

type resolver struct {
	astb     *ast.Builder
	table    *symbols.Table
	reporter diag.Reporter
	scopeOf  map[ast.DeclID]symbols.ScopeID
}

func (r *resolver) installPrelude(scope symbols.ScopeID) {
	for _, name := range builtinPrelude() {
		decl := r.astb.NewDecl(ast.Decl{
			Kind: ast.DeclBuiltin,
			Name: r.astb.Strings.Intern(name),
		})
		r.table.Register(scope, decl, symbols.RegisterOptions{})
	}
}

func (r *resolver) topLevel(scope symbols.ScopeID, declID ast.DeclID) {
	decl := r.astb.Decl(declID)
	if decl == nil {
		return
	}
	switch decl.Kind {
	case ast.DeclImport:
		r.importDecl(scope, declID)
	case ast.DeclContract:
		r.contract(scope, declID)
	case ast.DeclFunction:
		r.function(scope, declID)
	case ast.DeclStruct:
		r.structType(scope, declID)
	default:
		r.declare(scope, declID, symbols.RegisterOptions{})
	}
}

// importDecl registers an import binding. Re-importing the same path under
// the same binding name rebinds in place instead of conflicting.
func (r *resolver) importDecl(scope symbols.ScopeID, declID ast.DeclID) {
	decl := r.astb.Decl(declID)
	name := r.astb.NameOf(declID)
	if name.IsValid() {
		if existing := r.table.Resolve(scope, name, false); len(existing) == 1 {
			prev := r.astb.Decl(existing[0])
			if prev != nil && prev.Kind == ast.DeclImport && prev.ImportPath == decl.ImportPath {
				r.table.Register(scope, declID, symbols.RegisterOptions{Update: true})
				return
			}
		}
	}
	r.declare(scope, declID, symbols.RegisterOptions{})
}

// contract registers the contract and populates its body scope. Members
// reach the contract's own name through recursive lookup into the enclosing
// scope; the body scope holds only members, so the invisible constructor
// binding never collides with a self-registration.
func (r *resolver) contract(scope symbols.ScopeID, declID ast.DeclID) {
	r.declare(scope, declID, symbols.RegisterOptions{})

	body := r.table.NewScope(symbols.ScopeContract, scope, ast.DeclNode(declID))
	r.scopeOf[declID] = body

	decl := r.astb.Decl(declID)
	for _, memberID := range decl.Members {
		member := r.astb.Decl(memberID)
		if member == nil {
			continue
		}
		switch member.Kind {
		case ast.DeclConstructor:
			// The constructor occupies the contract's name without being
			// callable by it: registered invisibly.
			r.declare(body, memberID, symbols.RegisterOptions{Invisible: true})
			r.functionBody(body, memberID)
		case ast.DeclFunction:
			r.function(body, memberID)
		case ast.DeclStruct:
			r.structType(body, memberID)
		default:
			r.declare(body, memberID, symbols.RegisterOptions{})
		}
	}
}

// function registers the function and builds its scope: parameters first,
// then body statements.
func (r *resolver) function(scope symbols.ScopeID, declID ast.DeclID) {
	r.declare(scope, declID, symbols.RegisterOptions{})
	r.functionBody(scope, declID)
}

func (r *resolver) functionBody(scope symbols.ScopeID, declID ast.DeclID) {
	body := r.table.NewScope(symbols.ScopeFunction, scope, ast.DeclNode(declID))
	r.scopeOf[declID] = body

	decl := r.astb.Decl(declID)
	for _, paramID := range decl.Params {
		// Anonymous parameters register as no-ops.
		r.declare(body, paramID, symbols.RegisterOptions{})
	}
	if decl.Body.IsValid() {
		r.blockStmts(body, decl.Body)
	}
}

// structType registers the struct and its fields in a dedicated namespace.
func (r *resolver) structType(scope symbols.ScopeID, declID ast.DeclID) {
	r.declare(scope, declID, symbols.RegisterOptions{})

	fields := r.table.NewScope(symbols.ScopeStruct, scope, ast.DeclNode(declID))
	r.scopeOf[declID] = fields

	decl := r.astb.Decl(declID)
	for _, fieldID := range decl.Members {
		r.declare(fields, fieldID, symbols.RegisterOptions{})
	}
}

// blockStmts registers statements of a block into the given scope and opens
// a child scope per nested block.
func (r *resolver) blockStmts(scope symbols.ScopeID, blockID ast.BlockID) {
	block := r.astb.Block(blockID)
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		switch stmt.Kind {
		case ast.StmtLocal:
			r.declare(scope, stmt.Decl, symbols.RegisterOptions{})
		case ast.StmtBlock:
			child := r.table.NewScope(symbols.ScopeBlock, scope, ast.BlockNode(stmt.Block))
			r.blockStmts(child, stmt.Block)
		}
	}
}

// declare registers a declaration and reports a conflict diagnostic when the
// registration fails.
func (r *resolver) declare(scope symbols.ScopeID, declID ast.DeclID, opts symbols.RegisterOptions) bool {
	if r.table.Register(scope, declID, opts) {
		return true
	}
	prev := r.table.Conflicting(scope, declID, opts.Name)
	r.reportDuplicate(declID, opts.Name, prev)
	return false
}

func (r *resolver) reportDuplicate(declID ast.DeclID, override source.StringID, prev ast.DeclID) {
	if r.reporter == nil {
		return
	}
	decl := r.astb.Decl(declID)
	name := override
	if !name.IsValid() {
		name = r.astb.NameOf(declID)
	}
	spelled := r.astb.Strings.MustLookup(name)

	builder := diag.ReportError(r.reporter, diag.SemaDuplicateName, decl.NameSpan,
		fmt.Sprintf("duplicate declaration of '%s'", spelled))
	if prevDecl := r.astb.Decl(prev); prevDecl != nil {
		noteMsg := "previous declaration here"
		if prevDecl.Kind == ast.DeclBuiltin {
			noteMsg = "built-in declaration"
		}
		if prevDecl.NameSpan != (source.Span{}) {
			builder.WithNote(prevDecl.NameSpan, noteMsg)
		}
	}
	builder.Emit()
}
