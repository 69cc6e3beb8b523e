package symbols

import (
	"keel/internal/ast"
	"keel/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopePrelude            // builtin declarations, parent of every file scope
	ScopeFile               // top-level declarations of one file
	ScopeContract           // contract body
	ScopeFunction           // function or constructor body, including parameters
	ScopeStruct             // struct field namespace
	ScopeBlock              // generic { } block
)

func (k ScopeKind) String() string {
	switch k {
	case ScopePrelude:
		return "prelude"
	case ScopeFile:
		return "file"
	case ScopeContract:
		return "contract"
	case ScopeFunction:
		return "function"
	case ScopeStruct:
		return "struct"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope maps names to binding sets within one lexical scope.
//
// Binding sets are insertion-ordered and never deduplicated by value; the
// registration protocol keeps them consistent. The invisible mapping is
// disjoint from the visible one: its entries occupy a name for conflict
// detection but are never returned by Resolve.
type Scope struct {
	Kind     ScopeKind
	Node     ast.NodeRef // enclosing AST construct, opaque to the table
	Parent   ScopeID
	Children []ScopeID

	visible   map[source.StringID][]ast.DeclID
	invisible map[source.StringID][]ast.DeclID
}
