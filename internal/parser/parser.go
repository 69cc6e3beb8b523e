package parser

import (
	"fmt"

	"keel/internal/ast"
	"keel/internal/diag"
	"keel/internal/lexer"
	"keel/internal/source"
	"keel/internal/token"
)

// Options configures parser construction.
type Options struct {
	Reporter diag.Reporter
}

// Parser holds per-file parsing state.
type Parser struct {
	lx       *lexer.Lexer
	astb     *ast.Builder
	file     ast.FileID
	src      source.FileID
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses one source file into the builder and returns the file ID.
func ParseFile(astb *ast.Builder, file *source.File, opts Options) ast.FileID {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		lx:   lx,
		astb: astb,
		src:  file.ID,
		opts: opts,
	}
	span := source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))} //nolint:gosec // file size fits the span type
	p.file = astb.NewFile(file.ID, span)

	p.parseTopLevel()
	return p.file
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) next() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// expect consumes a token of the given kind or reports and returns false
// without consuming.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	tok := p.lx.Peek()
	if tok.Kind != k {
		p.report(code, tok.Span, fmt.Sprintf("expected %q, found %q", k.String(), tok.Text))
		return tok, false
	}
	return p.next(), true
}

func (p *Parser) report(code diag.Code, span source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	diag.ReportError(p.opts.Reporter, code, span, msg).Emit()
}

// syncTo skips tokens until one of the given kinds or EOF. The sync token
// itself is not consumed.
func (p *Parser) syncTo(kinds ...token.Kind) {
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			return
		}
		for _, k := range kinds {
			if tok.Kind == k {
				return
			}
		}
		p.next()
	}
}

// skipExpr consumes tokens up to a top-level ';', tracking bracket nesting so
// semicolons inside parentheses do not terminate early. The front end keeps
// no expression tree; initializer bodies only matter for spans.
func (p *Parser) skipExpr() {
	depth := 0
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket:
			if depth == 0 {
				return
			}
			depth--
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				return
			}
		}
		p.next()
	}
}
