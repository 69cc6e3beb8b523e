package ast

type (
	// FileID identifies a parsed file within a Builder.
	FileID uint32
	// DeclID identifies a declaration within a Builder.
	DeclID uint32
	// BlockID identifies a lexical block within a Builder.
	BlockID uint32
)

const (
	NoFileID  FileID  = 0
	NoDeclID  DeclID  = 0
	NoBlockID BlockID = 0
)

func (id FileID) IsValid() bool  { return id != NoFileID }
func (id DeclID) IsValid() bool  { return id != NoDeclID }
func (id BlockID) IsValid() bool { return id != NoBlockID }
