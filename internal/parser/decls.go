package parser

import (
	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/token"
)

func (p *Parser) parseDecl() (ast.Decl, error) {
	switch p.cur.Type {
	case token.KW_VAR:
		return p.parseVarDecl(false)
	case token.KW_CONST:
		return p.parseConstDecl(false)
	case token.KW_FUNC:
		return p.parseFuncDecl(false)
	case token.KW_EXTERN:
		p.next()
		switch p.cur.Type {
		case token.KW_VAR:
			return p.parseVarDecl(true)
		case token.KW_FUNC:
			return p.parseFuncDecl(true)
		default:
			return nil, p.errorf("expected var or func after extern, found %s", p.cur.Type)
		}
	case token.KW_STRUCT:
		return p.parseStructDecl()
	case token.KW_ALIAS:
		return p.parseAliasDecl()
	case token.KW_EXTEND:
		return p.parseExtendDecl()
	case token.KW_IMPORT:
		return p.parseImport()
	default:
		return nil, p.errorf("expected a top-level declaration, found %s %q", p.cur.Type, p.cur.Lexeme)
	}
}

func (p *Parser) parseVarDecl(isExtern bool) (*ast.VarDecl, error) {
	tok := p.cur
	p.next() // `var`
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Token: tok, Name: name, IsExtern: isExtern}
	if p.curIs(token.COLON) {
		p.next()
		ts, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		decl.TypeSpec = ts
	}
	if p.curIs(token.ASSIGN) {
		p.next()
		init, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseConstDecl(isExtern bool) (*ast.ConstDecl, error) {
	_ = isExtern
	tok := p.cur
	p.next() // `const`
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	decl := &ast.ConstDecl{Token: tok, Name: name}
	if p.curIs(token.COLON) {
		p.next()
		ts, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		decl.TypeSpec = ts
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	init, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	decl.Init = init
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseTemplateParams() ([]ast.TemplateParam, error) {
	if !p.curIs(token.LTEMPLATE) {
		return nil, nil
	}
	p.next()
	var params []ast.TemplateParam
	for !p.curIs(token.RTEMPLATE) {
		id, err := p.identifier()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.TemplateParam{Token: id.Token, Name: id.Name})
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RTEMPLATE); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFuncDecl(isExtern bool) (*ast.FuncDecl, error) {
	tok := p.cur
	p.next() // `func`
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	tparams, err := p.parseTemplateParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.Param
	for !p.curIs(token.RPAREN) {
		ptok := p.cur
		pname, err := p.identifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		ts, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Param{Token: ptok, Name: pname, TypeSpec: ts})
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	var ret ast.TypeSpec
	if !p.curIs(token.LBRACE) && !p.curIs(token.SEMICOLON) {
		r, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		ret = r
	}

	decl := &ast.FuncDecl{
		Token: tok, Name: name, TemplateParams: tparams,
		Params: params, Return: ret, IsExtern: isExtern,
	}
	if isExtern {
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return decl, nil
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl.Body = body
	return decl, nil
}

func (p *Parser) parseStructDecl() (*ast.StructDecl, error) {
	tok := p.cur
	p.next() // `struct`
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	tparams, err := p.parseTemplateParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	decl := &ast.StructDecl{Token: tok, Name: name, TemplateParams: tparams}
	for !p.curIs(token.RBRACE) {
		m, err := p.parseStructMember()
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, m)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseStructMember() (ast.StructMember, error) {
	switch p.cur.Type {
	case token.KW_VAR:
		tok := p.cur
		p.next()
		name, err := p.identifier()
		if err != nil {
			return ast.StructMember{}, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return ast.StructMember{}, err
		}
		ts, err := p.parseTypeSpec()
		if err != nil {
			return ast.StructMember{}, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return ast.StructMember{}, err
		}
		return ast.StructMember{Var: &ast.StructVarMember{Token: tok, Name: name, TypeSpec: ts}}, nil
	case token.KW_CONST:
		c, err := p.parseConstDecl(false)
		if err != nil {
			return ast.StructMember{}, err
		}
		return ast.StructMember{Const: c}, nil
	case token.KW_FUNC:
		f, err := p.parseFuncDecl(false)
		if err != nil {
			return ast.StructMember{}, err
		}
		return ast.StructMember{Func: f}, nil
	default:
		return ast.StructMember{}, p.errorf("expected struct member, found %s", p.cur.Type)
	}
}

func (p *Parser) parseAliasDecl() (*ast.AliasDecl, error) {
	tok := p.cur
	p.next() // `alias`
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	ts, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.AliasDecl{Token: tok, Name: name, TypeSpec: ts}, nil
}

func (p *Parser) parseExtendDecl() (*ast.ExtendDecl, error) {
	tok := p.cur
	p.next() // `extend`
	target, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	decl := &ast.ExtendDecl{Token: tok, Target: target}
	switch p.cur.Type {
	case token.KW_CONST:
		c, err := p.parseConstDecl(false)
		if err != nil {
			return nil, err
		}
		decl.Const = c
	case token.KW_FUNC:
		f, err := p.parseFuncDecl(false)
		if err != nil {
			return nil, err
		}
		decl.Func = f
	default:
		return nil, p.errorf("expected const or func in extend body, found %s", p.cur.Type)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return decl, nil
}
