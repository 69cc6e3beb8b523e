package parser

import (
	"strings"

	"keel/internal/ast"
	"keel/internal/diag"
	"keel/internal/source"
	"keel/internal/token"
)

func (p *Parser) parseTopLevel() {
	for !p.at(token.EOF) {
		var id ast.DeclID
		switch p.lx.Peek().Kind {
		case token.KwImport:
			id = p.parseImport()
		case token.KwContract:
			id = p.parseContract()
		case token.KwFn:
			id = p.parseFn(source.NoStringID)
		case token.KwLet:
			id = p.parseLet()
		case token.KwEvent:
			id = p.parseEvent()
		case token.KwStruct:
			id = p.parseStruct()
		case token.KwType:
			id = p.parseAlias()
		default:
			tok := p.lx.Peek()
			p.report(diag.SynExpectItem, tok.Span, "expected a top-level declaration, found "+quoted(tok))
			p.next()
			p.syncTo(token.Semicolon, token.KwImport, token.KwContract, token.KwFn,
				token.KwLet, token.KwEvent, token.KwStruct, token.KwType)
			if p.at(token.Semicolon) {
				p.next()
			}
			continue
		}
		if id.IsValid() {
			f := p.astb.File(p.file)
			f.Decls = append(f.Decls, id)
		}
	}
}

// parseImport parses `import "path" (as alias)? ;`. The intrinsic name is
// the last path segment; an alias becomes the binding name.
func (p *Parser) parseImport() ast.DeclID {
	kw := p.next()

	pathTok, ok := p.expect(token.StringLit, diag.SynUnexpectedToken)
	if !ok {
		p.syncTo(token.Semicolon)
		if p.at(token.Semicolon) {
			p.next()
		}
		return ast.NoDeclID
	}
	path := unquote(pathTok.Text)

	var alias source.StringID
	aliasSpan := pathTok.Span
	if p.at(token.KwAs) {
		p.next()
		aliasTok, aliasOK := p.expect(token.Ident, diag.SynExpectIdentifier)
		if aliasOK {
			alias = p.astb.Strings.Intern(aliasTok.Text)
			aliasSpan = aliasTok.Span
		}
	}
	p.expectSemicolon()

	seg := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		seg = path[i+1:]
	}
	return p.astb.NewDecl(ast.Decl{
		Kind:       ast.DeclImport,
		Name:       p.astb.Strings.Intern(seg),
		Span:       kw.Span.Cover(p.lastSpan),
		NameSpan:   aliasSpan,
		File:       p.file,
		ImportPath: p.astb.Strings.Intern(path),
		Alias:      alias,
	})
}

// parseLet parses `let name (: type)? (= expr)? ;`.
func (p *Parser) parseLet() ast.DeclID {
	kw := p.next()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.Semicolon)
		if p.at(token.Semicolon) {
			p.next()
		}
		return ast.NoDeclID
	}

	var typ ast.TypeRef
	if p.at(token.Colon) {
		p.next()
		typ = p.parseType()
	}
	if p.at(token.Assign) {
		p.next()
		p.skipExpr()
	}
	p.expectSemicolon()

	return p.astb.NewDecl(ast.Decl{
		Kind:     ast.DeclVar,
		Name:     p.astb.Strings.Intern(nameTok.Text),
		Span:     kw.Span.Cover(p.lastSpan),
		NameSpan: nameTok.Span,
		File:     p.file,
		Type:     typ,
	})
}

// parseEvent parses `event Name(params) ;`.
func (p *Parser) parseEvent() ast.DeclID {
	kw := p.next()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.Semicolon)
		if p.at(token.Semicolon) {
			p.next()
		}
		return ast.NoDeclID
	}
	params := p.parseParams()
	p.expectSemicolon()

	return p.astb.NewDecl(ast.Decl{
		Kind:     ast.DeclEvent,
		Name:     p.astb.Strings.Intern(nameTok.Text),
		Span:     kw.Span.Cover(p.lastSpan),
		NameSpan: nameTok.Span,
		File:     p.file,
		Params:   params,
	})
}

// parseStruct parses `struct Name { (field: type ;)* }`.
func (p *Parser) parseStruct() ast.DeclID {
	kw := p.next()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.Semicolon, token.LBrace)
	}
	if _, braceOK := p.expect(token.LBrace, diag.SynUnclosedBrace); !braceOK {
		return ast.NoDeclID
	}

	var fields []ast.DeclID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldTok, fieldOK := p.expect(token.Ident, diag.SynExpectMember)
		if !fieldOK {
			p.next()
			continue
		}
		var typ ast.TypeRef
		if _, colonOK := p.expect(token.Colon, diag.SynUnexpectedToken); colonOK {
			typ = p.parseType()
		}
		p.expectSemicolon()
		fields = append(fields, p.astb.NewDecl(ast.Decl{
			Kind:     ast.DeclField,
			Name:     p.astb.Strings.Intern(fieldTok.Text),
			Span:     fieldTok.Span.Cover(p.lastSpan),
			NameSpan: fieldTok.Span,
			File:     p.file,
			Type:     typ,
		}))
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace)

	if !ok {
		return ast.NoDeclID
	}
	return p.astb.NewDecl(ast.Decl{
		Kind:     ast.DeclStruct,
		Name:     p.astb.Strings.Intern(nameTok.Text),
		Span:     kw.Span.Cover(p.lastSpan),
		NameSpan: nameTok.Span,
		File:     p.file,
		Members:  fields,
	})
}

// parseAlias parses `type Name = type ;`.
func (p *Parser) parseAlias() ast.DeclID {
	kw := p.next()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.Semicolon)
		if p.at(token.Semicolon) {
			p.next()
		}
		return ast.NoDeclID
	}
	var typ ast.TypeRef
	if _, eqOK := p.expect(token.Assign, diag.SynUnexpectedToken); eqOK {
		typ = p.parseType()
	}
	p.expectSemicolon()

	return p.astb.NewDecl(ast.Decl{
		Kind:     ast.DeclAlias,
		Name:     p.astb.Strings.Intern(nameTok.Text),
		Span:     kw.Span.Cover(p.lastSpan),
		NameSpan: nameTok.Span,
		File:     p.file,
		Type:     typ,
	})
}

// parseType parses `ident ([])?`.
func (p *Parser) parseType() ast.TypeRef {
	tok, ok := p.expect(token.Ident, diag.SynExpectType)
	if !ok {
		return ast.TypeRef{}
	}
	ref := ast.TypeRef{
		Name: p.astb.Strings.Intern(tok.Text),
		Span: tok.Span,
	}
	if p.at(token.LBracket) {
		p.next()
		p.expect(token.RBracket, diag.SynUnexpectedToken)
		ref.IsArray = true
		ref.Span = ref.Span.Cover(p.lastSpan)
	}
	return ref
}

func (p *Parser) expectSemicolon() {
	if p.at(token.Semicolon) {
		p.next()
		return
	}
	tok := p.lx.Peek()
	p.report(diag.SynExpectSemicolon, tok.Span, "expected ';' after declaration")
}

func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text[1 : len(text)-1]
	}
	return text
}

func quoted(tok token.Token) string {
	if tok.Text == "" {
		return tok.Kind.String()
	}
	return "'" + tok.Text + "'"
}
