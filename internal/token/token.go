package token

import (
	"keel/internal/source"
)

// Kind enumerates keel token kinds.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	Ident
	Underscore
	IntLit
	StringLit

	// Keywords
	KwContract
	KwFn
	KwInit
	KwEvent
	KwStruct
	KwLet
	KwType
	KwImport
	KwAs
	KwReturn

	// Punctuation and operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
	Dot
	Assign
	Arrow
	Plus
	Minus
	Star
	Slash
	Percent
	Lt
	Gt
	LtEq
	GtEq
	EqEq
	Bang
	BangEq
	Amp
	Pipe
	AndAnd
	OrOr
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwContract, KwFn, KwInit, KwEvent, KwStruct, KwLet, KwType, KwImport, KwAs, KwReturn:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

var keywords = map[string]Kind{
	"contract": KwContract,
	"fn":       KwFn,
	"init":     KwInit,
	"event":    KwEvent,
	"struct":   KwStruct,
	"let":      KwLet,
	"type":     KwType,
	"import":   KwImport,
	"as":       KwAs,
	"return":   KwReturn,
}

// LookupKeyword maps an identifier spelling to its keyword kind, if any.
// Keywords are case-sensitive and lowercase.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Underscore:
		return "Underscore"
	case IntLit:
		return "IntLit"
	case StringLit:
		return "StringLit"
	case KwContract:
		return "contract"
	case KwFn:
		return "fn"
	case KwInit:
		return "init"
	case KwEvent:
		return "event"
	case KwStruct:
		return "struct"
	case KwLet:
		return "let"
	case KwType:
		return "type"
	case KwImport:
		return "import"
	case KwAs:
		return "as"
	case KwReturn:
		return "return"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Dot:
		return "."
	case Assign:
		return "="
	case Arrow:
		return "->"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Percent:
		return "%"
	case Lt:
		return "<"
	case Gt:
		return ">"
	case LtEq:
		return "<="
	case GtEq:
		return ">="
	case EqEq:
		return "=="
	case Bang:
		return "!"
	case BangEq:
		return "!="
	case Amp:
		return "&"
	case Pipe:
		return "|"
	case AndAnd:
		return "&&"
	case OrOr:
		return "||"
	default:
		return "Invalid"
	}
}
