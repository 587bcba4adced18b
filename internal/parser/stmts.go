package parser

import (
	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/token"
)

func (p *Parser) parseBlock() (*ast.Block, error) {
	tok, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Token: tok}
	for !p.curIs(token.RBRACE) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur.Type {
	case token.KW_VAR:
		return p.parseVarDecl(false)
	case token.KW_CONST:
		return p.parseConstDecl(false)
	case token.KW_IF:
		return p.parseIfStmt()
	case token.KW_FOR:
		return p.parseForStmt()
	case token.KW_RETURN:
		return p.parseReturnStmt()
	case token.KW_BREAK:
		tok := p.cur
		p.next()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Token: tok}, nil
	case token.KW_CONTINUE:
		tok := p.cur
		p.next()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Token: tok}, nil
	case token.KW_DEFER:
		tok := p.cur
		p.next()
		inner, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		return &ast.DeferStmt{Token: tok, Stmt: inner}, nil
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseAssignOrExprStmt()
	}
}

func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	tok := p.cur
	stmt := &ast.IfStmt{Token: tok}

	p.next() // `if`
	cond, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt.Branches = append(stmt.Branches, ast.IfBranch{Token: tok, Cond: cond, Body: body})

	for p.curIs(token.KW_ELIF) {
		etok := p.cur
		p.next()
		cond, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, ast.IfBranch{Token: etok, Cond: cond, Body: body})
	}

	if p.curIs(token.KW_ELSE) {
		etok := p.cur
		p.next()
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, ast.IfBranch{Token: etok, Cond: nil, Body: body})
	}

	return stmt, nil
}

// parseForStmt disambiguates `for i in begin:end { }` (range) from
// `for cond { }` (expr) by looking one identifier ahead for `in`.
func (p *Parser) parseForStmt() (ast.Stmt, error) {
	tok := p.cur
	p.next() // `for`

	if p.curIs(token.IDENT) && p.peekIs(token.KW_IN) {
		v, err := p.identifier()
		if err != nil {
			return nil, err
		}
		p.next() // `in`
		begin, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		end, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.ForRangeStmt{Token: tok, Var: v, Begin: begin, End: end, Body: body}, nil
	}

	cond, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForExprStmt{Token: tok, Cond: cond, Body: body}, nil
}

func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, error) {
	tok := p.cur
	p.next() // `return`
	stmt := &ast.ReturnStmt{Token: tok}
	if !p.curIs(token.SEMICOLON) {
		v, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Value = v
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseAssignOrExprStmt() (ast.Stmt, error) {
	tok := p.cur
	e, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if p.curIs(token.ASSIGN) {
		p.next()
		rhs, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Token: tok, LHS: e, RHS: rhs}, nil
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Token: tok, Expr: e}, nil
}
