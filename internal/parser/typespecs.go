package parser

import (
	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/token"
)

// parseTypeSpec parses any of §3's typespec forms: named/path (with
// optional template args), `*T`, `[]T`, `[N]T`, `func(P...) R`,
// `typeof(expr)`.
func (p *Parser) parseTypeSpec() (ast.TypeSpec, error) {
	switch p.cur.Type {
	case token.STAR:
		tok := p.cur
		p.next()
		base, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		return &ast.PointerType{Token: tok, Base: base}, nil
	case token.LBRACKET:
		tok := p.cur
		p.next()
		if p.curIs(token.RBRACKET) {
			p.next()
			base, err := p.parseTypeSpec()
			if err != nil {
				return nil, err
			}
			return &ast.SliceType{Token: tok, Base: base}, nil
		}
		count, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		base, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Token: tok, Count: count, Base: base}, nil
	case token.KW_FUNC:
		return p.parseFuncType()
	case token.KW_TYPEOF:
		tok := p.cur
		p.next()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.TypeOfType{Token: tok, Expr: e}, nil
	default:
		path, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		return &ast.NamedType{Token: path.Token, Path: path}, nil
	}
}

func (p *Parser) parseFuncType() (*ast.FuncType, error) {
	tok := p.cur
	p.next() // `func`
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.TypeSpec
	for !p.curIs(token.RPAREN) {
		ts, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		params = append(params, ts)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	var ret ast.TypeSpec
	if !p.curIs(token.SEMICOLON) && !p.curIs(token.RPAREN) && !p.curIs(token.COMMA) &&
		!p.curIs(token.RBRACE) && !p.curIs(token.LBRACE) {
		r, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		ret = r
	}
	return &ast.FuncType{Token: tok, Params: params, Return: ret}, nil
}

// parsePath parses a "::"-separated path, e.g. `foo`, `a::b`, `::a::b`,
// `box[[u64]]`, `a::box[[u64]]::inner`.
func (p *Parser) parsePath() (*ast.Path, error) {
	tok := p.cur
	path := &ast.Path{Token: tok}
	if p.curIs(token.COLONCOLON) {
		path.Rooted = true
		p.next()
	}
	el, err := p.parsePathElement()
	if err != nil {
		return nil, err
	}
	path.Elements = append(path.Elements, el)
	for p.curIs(token.COLONCOLON) {
		p.next()
		el, err := p.parsePathElement()
		if err != nil {
			return nil, err
		}
		path.Elements = append(path.Elements, el)
	}
	return path, nil
}

func (p *Parser) parsePathElement() (ast.PathElement, error) {
	// The builtin type names lex as keywords but resolve like any other
	// named type.
	switch p.cur.Type {
	case token.KW_VOID, token.KW_BOOL, token.KW_BYTE, token.KW_ANY:
		name := p.cur.Lexeme
		p.next()
		return ast.PathElement{Name: name}, nil
	}
	id, err := p.identifier()
	if err != nil {
		return ast.PathElement{}, err
	}
	el := ast.PathElement{Name: id.Name}
	if p.curIs(token.LTEMPLATE) {
		el.HasArgs = true
		el.ArgsTok = p.cur
		p.next()
		for !p.curIs(token.RTEMPLATE) {
			ts, err := p.parseTypeSpec()
			if err != nil {
				return ast.PathElement{}, err
			}
			el.Args = append(el.Args, ts)
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
		if _, err := p.expect(token.RTEMPLATE); err != nil {
			return ast.PathElement{}, err
		}
	}
	return el, nil
}
