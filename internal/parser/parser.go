// Package parser implements the recursive-descent parser that builds the
// CST (internal/ast) from internal/lexer's token stream (§1 "the
// lexer/parser... deliberately out of scope", implemented here only to the
// extent needed to drive the resolver end-to-end).
package parser

import (
	"fmt"

	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/lexer"
	"github.com/sunder-lang/sunderc/internal/token"
)

// Error is a located parse failure.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// Parser holds a two-token lookahead window over a Lexer's token stream,
// grounded on the teacher's curToken/peekToken Pratt-parser shape
// (internal/parser/expressions_core.go), simplified since Sunder has no
// significant-newline continuation rule to special-case.
type Parser struct {
	path string
	lex  *lexer.Lexer

	cur  token.Token
	peek token.Token
}

// New returns a Parser over src, reporting positions under path.
func New(path, src string) *Parser {
	p := &Parser{path: path, lex: lexer.New(path, src)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) errorf(format string, args ...interface{}) *Error {
	return &Error{Pos: p.cur.Pos, Msg: fmt.Sprintf(format, args...)}
}

// expect advances past cur if it has type t, else returns an error without
// advancing (so the caller's position is still meaningful in diagnostics).
func (p *Parser) expect(t token.Type) (token.Token, error) {
	if !p.curIs(t) {
		return token.Token{}, p.errorf("expected %s, found %s %q", t, p.cur.Type, p.cur.Lexeme)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

func (p *Parser) identifier() (*ast.Identifier, error) {
	tok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Token: tok, Name: tok.Lexeme}, nil
}

// ParseProgram parses one complete source file.
func ParseProgram(path, src string) (*ast.Program, error) {
	p := New(path, src)
	prog := &ast.Program{File: path}

	if p.curIs(token.KW_NAMESPACE) {
		ns, err := p.parseNamespaceDecl()
		if err != nil {
			return nil, err
		}
		prog.Namespace = ns.Parts
	}

	for p.curIs(token.KW_IMPORT) {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		prog.Imports = append(prog.Imports, imp)
	}

	for !p.curIs(token.EOF) {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		prog.Declarations = append(prog.Declarations, decl)
	}

	return prog, nil
}

func (p *Parser) parseNamespaceDecl() (*ast.NamespaceDecl, error) {
	tok := p.cur
	p.next() // `namespace`
	decl := &ast.NamespaceDecl{Token: tok}
	id, err := p.identifier()
	if err != nil {
		return nil, err
	}
	decl.Parts = append(decl.Parts, id.Name)
	for p.curIs(token.COLONCOLON) {
		p.next()
		id, err := p.identifier()
		if err != nil {
			return nil, err
		}
		decl.Parts = append(decl.Parts, id.Name)
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseImport() (*ast.Import, error) {
	tok := p.cur
	p.next() // `import`
	path, err := p.expect(token.BYTES)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Import{Token: tok, Path: path.Lexeme}, nil
}
