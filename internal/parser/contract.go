package parser

import (
	"keel/internal/ast"
	"keel/internal/diag"
	"keel/internal/source"
	"keel/internal/token"
)

// parseContract parses `contract Name { member* }`.
func (p *Parser) parseContract() ast.DeclID {
	kw := p.next()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.syncTo(token.LBrace, token.Semicolon)
	}
	if _, braceOK := p.expect(token.LBrace, diag.SynUnclosedBrace); !braceOK {
		return ast.NoDeclID
	}

	contractName := source.NoStringID
	if ok {
		contractName = p.astb.Strings.Intern(nameTok.Text)
	}

	var members []ast.DeclID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		var id ast.DeclID
		switch p.lx.Peek().Kind {
		case token.KwFn:
			id = p.parseFn(source.NoStringID)
		case token.KwInit:
			id = p.parseInit(contractName)
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
			p.report(diag.SynExpectMember, tok.Span, "expected a contract member, found "+quoted(tok))
			p.next()
			p.syncTo(token.Semicolon, token.RBrace, token.KwFn, token.KwInit,
				token.KwLet, token.KwEvent, token.KwStruct, token.KwType)
			if p.at(token.Semicolon) {
				p.next()
			}
			continue
		}
		if id.IsValid() {
			members = append(members, id)
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace)

	if !ok {
		return ast.NoDeclID
	}
	return p.astb.NewDecl(ast.Decl{
		Kind:     ast.DeclContract,
		Name:     contractName,
		Span:     kw.Span.Cover(p.lastSpan),
		NameSpan: nameTok.Span,
		File:     p.file,
		Members:  members,
	})
}

// parseFn parses `fn name(params) (-> type)? (block | ;)`. A lone `_` as the
// function name declares an anonymous function.
func (p *Parser) parseFn(forcedName source.StringID) ast.DeclID {
	kw := p.next()

	name := forcedName
	nameSpan := kw.Span
	switch {
	case p.at(token.Ident):
		tok := p.next()
		name = p.astb.Strings.Intern(tok.Text)
		nameSpan = tok.Span
	case p.at(token.Underscore):
		tok := p.next()
		nameSpan = tok.Span
	default:
		tok := p.lx.Peek()
		p.report(diag.SynExpectIdentifier, tok.Span, "expected function name, found "+quoted(tok))
		p.syncTo(token.Semicolon, token.RBrace)
		if p.at(token.Semicolon) {
			p.next()
		}
		return ast.NoDeclID
	}

	params := p.parseParams()

	if p.at(token.Arrow) {
		p.next()
		p.parseType()
	}

	body := ast.NoBlockID
	if p.at(token.LBrace) {
		body = p.parseBlock()
	} else {
		p.expectSemicolon()
	}

	return p.astb.NewDecl(ast.Decl{
		Kind:     ast.DeclFunction,
		Name:     name,
		Span:     kw.Span.Cover(p.lastSpan),
		NameSpan: nameSpan,
		File:     p.file,
		Params:   params,
		Body:     body,
	})
}

// parseInit parses `init(params) block`. The constructor carries its
// contract's name; name lookup never returns it (the registration pass binds
// it invisibly).
func (p *Parser) parseInit(contractName source.StringID) ast.DeclID {
	kw := p.next()

	params := p.parseParams()
	body := ast.NoBlockID
	if p.at(token.LBrace) {
		body = p.parseBlock()
	} else {
		p.expectSemicolon()
	}

	return p.astb.NewDecl(ast.Decl{
		Kind:     ast.DeclConstructor,
		Name:     contractName,
		Span:     kw.Span.Cover(p.lastSpan),
		NameSpan: kw.Span,
		File:     p.file,
		Params:   params,
		Body:     body,
	})
}

// parseParams parses `( (name: type (, name: type)*)? )`. `_` declares an
// anonymous parameter.
func (p *Parser) parseParams() []ast.DeclID {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen); !ok {
		return nil
	}

	var params []ast.DeclID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		var name source.StringID
		var nameSpan source.Span
		switch {
		case p.at(token.Ident):
			tok := p.next()
			name = p.astb.Strings.Intern(tok.Text)
			nameSpan = tok.Span
		case p.at(token.Underscore):
			tok := p.next()
			nameSpan = tok.Span
		default:
			tok := p.lx.Peek()
			p.report(diag.SynExpectIdentifier, tok.Span, "expected parameter name, found "+quoted(tok))
			p.syncTo(token.Comma, token.RParen)
			if p.at(token.Comma) {
				p.next()
			}
			continue
		}

		var typ ast.TypeRef
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); ok {
			typ = p.parseType()
		}
		params = append(params, p.astb.NewDecl(ast.Decl{
			Kind:     ast.DeclParam,
			Name:     name,
			Span:     nameSpan.Cover(p.lastSpan),
			NameSpan: nameSpan,
			File:     p.file,
			Type:     typ,
		}))

		if p.at(token.Comma) {
			p.next()
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen)
	return params
}

// parseBlock parses `{ stmt* }` keeping only what scope building needs:
// local declarations and nested blocks. Anything else is skipped to ';'.
func (p *Parser) parseBlock() ast.BlockID {
	open, _ := p.expect(token.LBrace, diag.SynUnclosedBrace)
	id := p.astb.NewBlock(open.Span)

	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.KwLet:
			decl := p.parseLet()
			if decl.IsValid() {
				stmts = append(stmts, ast.Stmt{
					Kind: ast.StmtLocal,
					Span: p.astb.Decl(decl).Span,
					Decl: decl,
				})
			}
		case token.LBrace:
			nested := p.parseBlock()
			stmts = append(stmts, ast.Stmt{
				Kind:  ast.StmtBlock,
				Span:  p.astb.Block(nested).Span,
				Block: nested,
			})
		default:
			start := p.lx.Peek().Span
			p.skipExpr()
			if p.at(token.Semicolon) {
				p.next()
			} else if tok := p.lx.Peek(); tok.Span == start {
				// skipExpr stops in front of unmatched closers without
				// consuming anything; drop the token or the loop never
				// advances.
				p.next()
				p.report(diag.SynUnexpectedToken, tok.Span, "unexpected "+quoted(tok))
				continue
			}
			stmts = append(stmts, ast.Stmt{
				Kind: ast.StmtOther,
				Span: start.Cover(p.lastSpan),
			})
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace)

	blk := p.astb.Block(id)
	blk.Stmts = stmts
	blk.Span = open.Span.Cover(p.lastSpan)
	return id
}
