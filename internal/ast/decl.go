package ast

import (
	"keel/internal/source"
)

// DeclKind classifies a named program entity.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclContract
	DeclFunction
	DeclConstructor
	DeclEvent
	DeclStruct
	DeclField
	DeclVar
	DeclParam
	DeclAlias
	DeclImport
	DeclBuiltin
)

func (k DeclKind) String() string {
	switch k {
	case DeclContract:
		return "contract"
	case DeclFunction:
		return "function"
	case DeclConstructor:
		return "constructor"
	case DeclEvent:
		return "event"
	case DeclStruct:
		return "struct"
	case DeclField:
		return "field"
	case DeclVar:
		return "variable"
	case DeclParam:
		return "parameter"
	case DeclAlias:
		return "type alias"
	case DeclImport:
		return "import"
	case DeclBuiltin:
		return "builtin"
	default:
		return "invalid"
	}
}

// Overloadable reports whether declarations of this kind may share a name
// with other overloadable declarations in one scope. Function-like kinds
// opt in; everything else claims its name exclusively.
func (k DeclKind) Overloadable() bool {
	switch k {
	case DeclFunction, DeclConstructor, DeclEvent:
		return true
	default:
		return false
	}
}

// TypeRef is an unresolved type annotation. Resolution is a later phase;
// the front end records only the spelling.
type TypeRef struct {
	Name    source.StringID
	Span    source.Span
	IsArray bool
}

// Decl is one named declaration. Payload fields are populated per kind;
// unused links stay at their zero sentinels.
type Decl struct {
	Kind     DeclKind
	Name     source.StringID
	Span     source.Span // whole declaration
	NameSpan source.Span // just the identifier
	File     FileID

	Type       TypeRef  // vars, params, fields, aliases
	Params     []DeclID // functions, constructors, events
	Members    []DeclID // contracts: members; structs: fields
	Body       BlockID  // functions and constructors
	ImportPath source.StringID
	Alias      source.StringID // imports: the local binding name
}
