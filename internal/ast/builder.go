package ast

import (
	"keel/internal/source"
)

// Builder aggregates the per-file AST arenas and the shared string interner.
type Builder struct {
	Files   *Arena[File]
	Decls   *Arena[Decl]
	Blocks  *Arena[Block]
	Strings *source.Interner
}

// NewBuilder creates a builder with optional capacity hint. If strings is
// nil, a fresh interner is allocated.
func NewBuilder(capHint uint, strings *source.Interner) *Builder {
	if capHint == 0 {
		capHint = 1 << 6
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:   NewArena[File](1),
		Decls:   NewArena[Decl](capHint),
		Blocks:  NewArena[Block](capHint),
		Strings: strings,
	}
}

// NewFile allocates a file node and returns its ID.
func (b *Builder) NewFile(src source.FileID, span source.Span) FileID {
	return FileID(b.Files.Allocate(File{Source: src, Span: span}))
}

// NewDecl allocates a declaration and returns its ID.
func (b *Builder) NewDecl(d Decl) DeclID {
	return DeclID(b.Decls.Allocate(d))
}

// NewBlock allocates a block and returns its ID.
func (b *Builder) NewBlock(span source.Span) BlockID {
	return BlockID(b.Blocks.Allocate(Block{Span: span}))
}

// File returns the file node, or nil for an invalid ID.
func (b *Builder) File(id FileID) *File {
	return b.Files.Get(uint32(id))
}

// Decl returns the declaration, or nil for an invalid ID.
func (b *Builder) Decl(id DeclID) *Decl {
	return b.Decls.Get(uint32(id))
}

// Block returns the block, or nil for an invalid ID.
func (b *Builder) Block(id BlockID) *Block {
	return b.Blocks.Get(uint32(id))
}

// NameOf returns a declaration's intrinsic name, NoStringID for invalid IDs.
// Imports bind through their alias when one is present.
func (b *Builder) NameOf(id DeclID) source.StringID {
	d := b.Decl(id)
	if d == nil {
		return source.NoStringID
	}
	if d.Kind == DeclImport && d.Alias.IsValid() {
		return d.Alias
	}
	return d.Name
}

// KindOf returns a declaration's kind, DeclInvalid for invalid IDs.
func (b *Builder) KindOf(id DeclID) DeclKind {
	d := b.Decl(id)
	if d == nil {
		return DeclInvalid
	}
	return d.Kind
}
