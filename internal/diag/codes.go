package diag

import (
	"fmt"
)

// Code is a compact stable identifier for a diagnostic kind.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadEscape          Code = 1003

	// Syntax
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectSemicolon  Code = 2003
	SynUnclosedBrace    Code = 2004
	SynUnclosedParen    Code = 2005
	SynExpectType       Code = 2006
	SynExpectItem       Code = 2007
	SynExpectMember     Code = 2008

	// Semantic
	SemaDuplicateName Code = 3001

	// Driver I/O
	IOLoadFile Code = 4001
)

func (c Code) String() string {
	return fmt.Sprintf("K%04d", uint16(c))
}
