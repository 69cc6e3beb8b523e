package ast

import (
	"keel/internal/source"
)

// File is one parsed source file: its top-level declarations in order.
type File struct {
	Source source.FileID
	Span   source.Span
	Decls  []DeclID
}
