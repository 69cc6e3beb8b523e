package ast

import (
	"keel/internal/source"
)

// StmtKind classifies statements as far as scope building cares: local
// declarations, nested blocks, and everything else.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtLocal
	StmtBlock
	StmtOther
)

// Stmt is one statement inside a block.
type Stmt struct {
	Kind  StmtKind
	Span  source.Span
	Decl  DeclID  // StmtLocal
	Block BlockID // StmtBlock
}

// Block is a lexical { } region with its statements in source order.
type Block struct {
	Span  source.Span
	Stmts []Stmt
}
