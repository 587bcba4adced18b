package parser

import (
	"math/big"

	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/lexer"
	"github.com/sunder-lang/sunderc/internal/token"
)

// Precedence levels, lowest to highest. §4.4 lists the binary operator set
// without a precedence table; this repository adopts the conventional
// C-family ordering (or < and < equality < relational < bitwise-or <
// bitwise-xor < bitwise-and < additive < multiplicative), recorded as a
// resolved open question in DESIGN.md.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precRelational
	precBitOr
	precBitXor
	precBitAnd
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

var binPrecedence = map[token.Type]int{
	token.KW_OR:  precOr,
	token.KW_AND: precAnd,
	token.EQ:     precEquality,
	token.NE:     precEquality,
	token.LT:     precRelational,
	token.LE:     precRelational,
	token.GT:     precRelational,
	token.GE:     precRelational,
	token.PIPE:   precBitOr,
	token.CARET:  precBitXor,
	token.AMP:    precBitAnd,
	token.PLUS:   precAdditive,
	token.MINUS:  precAdditive,
	token.STAR:   precMultiplicative,
	token.SLASH:  precMultiplicative,
}

var binOps = map[token.Type]ast.BinaryOp{
	token.KW_OR:  ast.BinOr,
	token.KW_AND: ast.BinAnd,
	token.EQ:     ast.BinEq,
	token.NE:     ast.BinNe,
	token.LT:     ast.BinLt,
	token.LE:     ast.BinLe,
	token.GT:     ast.BinGt,
	token.GE:     ast.BinGe,
	token.PIPE:   ast.BinBitOr,
	token.CARET:  ast.BinBitXor,
	token.AMP:    ast.BinBitAnd,
	token.PLUS:   ast.BinAdd,
	token.MINUS:  ast.BinSub,
	token.STAR:   ast.BinMul,
	token.SLASH:  ast.BinDiv,
}

func (p *Parser) parseExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binPrecedence[p.cur.Type]
		if !ok || prec < minPrec {
			return left, nil
		}
		op := binOps[p.cur.Type]
		tok := p.cur
		p.next()
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Token: tok, Op: op, Left: left, Right: right}
	}
}

var unaryOps = map[token.Type]ast.UnaryOp{
	token.BANG:  ast.UnaryNot,
	token.PLUS:  ast.UnaryPos,
	token.MINUS: ast.UnaryNeg,
	token.TILDE: ast.UnaryBitNot,
	token.AMP:   ast.UnaryAddr,
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if op, ok := unaryOps[p.cur.Type]; ok {
		tok := p.cur
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: tok, Op: op, Value: v}, nil
	}
	if p.curIs(token.KW_COUNTOF) {
		tok := p.cur
		p.next()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		v, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: tok, Op: ast.UnaryCountof, Value: v}, nil
	}
	if p.curIs(token.STAR) {
		tok := p.cur
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.DerefExpr{Token: tok, Value: v}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case token.LPAREN:
			tok := p.cur
			p.next()
			var args []ast.Expr
			for !p.curIs(token.RPAREN) {
				arg, err := p.parseExpr(precLowest)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.curIs(token.COMMA) {
					p.next()
				}
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			e = &ast.CallExpr{Token: tok, Callee: e, Args: args}
		case token.DOT:
			tok := p.cur
			p.next()
			name, err := p.identifier()
			if err != nil {
				return nil, err
			}
			e = &ast.MemberAccessExpr{Token: tok, Base: e, Name: name}
		case token.LBRACKET:
			tok := p.cur
			p.next()
			first, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			if p.curIs(token.COLON) {
				p.next()
				end, err := p.parseExpr(precLowest)
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(token.RBRACKET); err != nil {
					return nil, err
				}
				e = &ast.SliceAccessExpr{Token: tok, Base: e, Begin: first, End: end}
				continue
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			e = &ast.IndexExpr{Token: tok, Base: e, Index: first}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur.Type {
	case token.KW_TRUE, token.KW_FALSE:
		tok := p.cur
		p.next()
		return &ast.BoolLit{Token: tok, Value: tok.Type == token.KW_TRUE}, nil
	case token.INTEGER:
		tok := p.cur
		p.next()
		n, suffix := lexer.IntegerValue(tok.Lexeme)
		return &ast.IntegerLit{Token: tok, Value: n, Suffix: suffix}, nil
	case token.CHAR:
		tok := p.cur
		p.next()
		r := []rune(tok.Lexeme)[0]
		return &ast.CharLit{Token: tok, Value: big.NewInt(int64(r))}, nil
	case token.BYTES:
		tok := p.cur
		p.next()
		return &ast.BytesLit{Token: tok, Value: []byte(tok.Lexeme)}, nil
	case token.KW_SIZEOF:
		return p.parseSizeofOrAlignof(false)
	case token.KW_ALIGNOF:
		return p.parseSizeofOrAlignof(true)
	case token.KW_SYSCALL:
		return p.parseSyscall()
	case token.IDENT, token.COLONCOLON:
		return p.parsePath()
	case token.LPAREN:
		return p.parseParenOrCastOrLiteral()
	default:
		return nil, p.errorf("unexpected token %s %q in expression", p.cur.Type, p.cur.Lexeme)
	}
}

func (p *Parser) parseSizeofOrAlignof(alignof bool) (ast.Expr, error) {
	tok := p.cur
	p.next()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	ts, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if alignof {
		return &ast.AlignofExpr{Token: tok, TypeSpec: ts}, nil
	}
	return &ast.SizeofExpr{Token: tok, TypeSpec: ts}, nil
}

func (p *Parser) parseSyscall() (ast.Expr, error) {
	tok := p.cur
	p.next()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.curIs(token.RPAREN) {
		arg, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.SyscallExpr{Token: tok, Args: args}, nil
}

// parseParenOrCastOrLiteral disambiguates `(expr)`, `(:T)expr`,
// `(:[N]T)[elems]`, `(:[]T)[elems]`, and `(:T){fields}` — all four share
// the `(` `:` prefix except plain parenthesization.
func (p *Parser) parseParenOrCastOrLiteral() (ast.Expr, error) {
	tok := p.cur
	p.next() // `(`
	if !p.curIs(token.COLON) {
		e, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	}
	p.next() // `:`
	ts, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	switch p.cur.Type {
	case token.LBRACKET:
		return p.parseArrayOrSliceLit(tok, ts)
	case token.LBRACE:
		return p.parseStructLit(tok, ts)
	default:
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{Token: tok, TypeSpec: ts, Value: v}, nil
	}
}

func (p *Parser) parseArrayOrSliceLit(tok token.Token, ts ast.TypeSpec) (ast.Expr, error) {
	p.next() // `[`
	_, isSlice := ts.(*ast.SliceType)

	if isSlice {
		lit := &ast.SliceLit{Token: tok, TypeSpec: ts}
		for !p.curIs(token.RBRACKET) {
			e, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			lit.Elements = append(lit.Elements, e)
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return lit, nil
	}

	lit := &ast.ArrayLit{Token: tok, TypeSpec: ts}
	for !p.curIs(token.RBRACKET) {
		isEllipsis := false
		if p.curIs(token.ELLIPSIS) {
			isEllipsis = true
			p.next()
		}
		e, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, ast.ArrayLitElement{Value: e, IsEllipsis: isEllipsis})
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseStructLit(tok token.Token, ts ast.TypeSpec) (ast.Expr, error) {
	p.next() // `{`
	lit := &ast.StructLit{Token: tok, TypeSpec: ts}
	for !p.curIs(token.RBRACE) {
		if _, err := p.expect(token.DOT); err != nil {
			return nil, err
		}
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ASSIGN); err != nil {
			return nil, err
		}
		v, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		lit.Fields = append(lit.Fields, ast.StructLitField{Name: name, Value: v})
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return lit, nil
}
