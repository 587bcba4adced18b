// Package ast defines the concrete syntax tree (CST) produced by the parser
// and consumed, read-only, by the resolver. Nodes are never mutated after
// construction.
package ast

import (
	"math/big"

	"github.com/sunder-lang/sunderc/internal/token"
)

// Node is the base interface every CST node implements.
type Node interface {
	Pos() token.Position
}

// Decl is a top-level or struct-member declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// TypeSpec is a syntactic type reference (resolved to a types.Type by the
// resolver).
type TypeSpec interface {
	Node
	typeSpecNode()
}

// Identifier is a bare name reference, used both as an expression and as
// the name-part of declarations.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) Pos() token.Position { return i.Token.Pos }
func (*Identifier) exprNode()             {}

// Path is a "::"-separated sequence of elements, optionally rooted at the
// module root ("::a::b"), optionally carrying template arguments on any
// element ("a::b[[u64]]").
type Path struct {
	Token    token.Token
	Rooted   bool
	Elements []PathElement
}

func (p *Path) Pos() token.Position { return p.Token.Pos }
func (*Path) exprNode()             {}
func (*Path) typeSpecNode()         {}

type PathElement struct {
	Name     string
	Args     []TypeSpec // non-nil when this element is a template instantiation
	ArgsTok  token.Token
	HasArgs  bool
}

// Program is one parsed source file.
type Program struct {
	File         string
	Namespace    []string // e.g. ["a", "b", "c"] for `namespace a::b::c;`
	Imports      []*Import
	Declarations []Decl
}

func (p *Program) Pos() token.Position {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Pos()
	}
	return token.Position{Path: p.File, Line: 1, Column: 1}
}

// Import is a single `import "path";` declaration.
type Import struct {
	Token token.Token
	Path  string
}

func (i *Import) Pos() token.Position { return i.Token.Pos }
func (*Import) declNode()             {}

// ---- Typespecs ----

// NamedType is a simple or path-qualified type name, optionally with
// template arguments: `u32`, `Foo`, `ns::Bar[[u64]]`.
type NamedType struct {
	Token token.Token
	Path  *Path
}

func (n *NamedType) Pos() token.Position { return n.Token.Pos }
func (*NamedType) typeSpecNode()         {}

// PointerType is `*T`.
type PointerType struct {
	Token token.Token
	Base  TypeSpec
}

func (p *PointerType) Pos() token.Position { return p.Token.Pos }
func (*PointerType) typeSpecNode()         {}

// SliceType is `[]T`.
type SliceType struct {
	Token token.Token
	Base  TypeSpec
}

func (s *SliceType) Pos() token.Position { return s.Token.Pos }
func (*SliceType) typeSpecNode()         {}

// ArrayType is `[N]T`, where N is evaluated at compile time.
type ArrayType struct {
	Token token.Token
	Count Expr
	Base  TypeSpec
}

func (a *ArrayType) Pos() token.Position { return a.Token.Pos }
func (*ArrayType) typeSpecNode()         {}

// FuncType is `func(P1, P2) R`.
type FuncType struct {
	Token   token.Token
	Params  []TypeSpec
	Return  TypeSpec // nil means void
}

func (f *FuncType) Pos() token.Position { return f.Token.Pos }
func (*FuncType) typeSpecNode()         {}

// TypeOfType is `typeof(expr)`.
type TypeOfType struct {
	Token token.Token
	Expr  Expr
}

func (t *TypeOfType) Pos() token.Position { return t.Token.Pos }
func (*TypeOfType) typeSpecNode()         {}

var _ = big.NewInt // math/big is used by literal nodes in ast_exprs.go
