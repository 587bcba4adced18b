package ast

import (
	"math/big"

	"github.com/sunder-lang/sunderc/internal/token"
)

// BoolLit is `true`/`false`.
type BoolLit struct {
	Token token.Token
	Value bool
}

func (b *BoolLit) Pos() token.Position { return b.Token.Pos }
func (*BoolLit) exprNode()             {}

// IntegerLit is an integer literal with an optional type suffix, e.g.
// `123`, `123u8`. A leading `-` is parsed as a separate UnaryExpr; the
// resolver absorbs it into the literal's value when the operand is
// directly a literal (§4.4 "Expression resolution").
type IntegerLit struct {
	Token  token.Token
	Value  *big.Int
	Suffix string // "", "y", "u8", "s8", "u16", "s16", "u32", "s32", "u64", "s64", "u", "s"
}

func (i *IntegerLit) Pos() token.Position { return i.Token.Pos }
func (*IntegerLit) exprNode()             {}

// CharLit is `'x'`, lexed to the rune's code point and represented exactly
// like an untyped IntegerLit per §4.4.
type CharLit struct {
	Token token.Token
	Value *big.Int
}

func (c *CharLit) Pos() token.Position { return c.Token.Pos }
func (*CharLit) exprNode()             {}

// BytesLit is `"..."` (without the implicit NUL, which the resolver adds
// when it allocates the backing array per §4.4).
type BytesLit struct {
	Token token.Token
	Value []byte
}

func (b *BytesLit) Pos() token.Position { return b.Token.Pos }
func (*BytesLit) exprNode()             {}

// ArrayLitElement is one element of an ArrayLit; IsEllipsis marks the
// trailing `...expr` fill element.
type ArrayLitElement struct {
	Value     Expr
	IsEllipsis bool
}

// ArrayLit is `(:[N]T)[e1, e2, ...]`.
type ArrayLit struct {
	Token    token.Token
	TypeSpec TypeSpec
	Elements []ArrayLitElement
}

func (a *ArrayLit) Pos() token.Position { return a.Token.Pos }
func (*ArrayLit) exprNode()             {}

// SliceLit is `(:[]T)[e1, e2, e3]`.
type SliceLit struct {
	Token    token.Token
	TypeSpec TypeSpec
	Elements []Expr
}

func (s *SliceLit) Pos() token.Position { return s.Token.Pos }
func (*SliceLit) exprNode()             {}

// StructLitField is one `name = value` initializer.
type StructLitField struct {
	Name  *Identifier
	Value Expr
}

// StructLit is `(:T){ .name = value, ... }`.
type StructLit struct {
	Token    token.Token
	TypeSpec TypeSpec
	Fields   []StructLitField
}

func (s *StructLit) Pos() token.Position { return s.Token.Pos }
func (*StructLit) exprNode()             {}

// CastExpr is `(:T)expr`.
type CastExpr struct {
	Token    token.Token
	TypeSpec TypeSpec
	Value    Expr
}

func (c *CastExpr) Pos() token.Position { return c.Token.Pos }
func (*CastExpr) exprNode()             {}

// CallExpr is `callee(args)`.
type CallExpr struct {
	Token  token.Token
	Callee Expr
	Args   []Expr
}

func (c *CallExpr) Pos() token.Position { return c.Token.Pos }
func (*CallExpr) exprNode()             {}

// SyscallExpr is `syscall(args)`.
type SyscallExpr struct {
	Token token.Token
	Args  []Expr
}

func (s *SyscallExpr) Pos() token.Position { return s.Token.Pos }
func (*SyscallExpr) exprNode()             {}

// IndexExpr is `base[index]`.
type IndexExpr struct {
	Token token.Token
	Base  Expr
	Index Expr
}

func (i *IndexExpr) Pos() token.Position { return i.Token.Pos }
func (*IndexExpr) exprNode()             {}

// SliceAccessExpr is `base[begin:end]`.
type SliceAccessExpr struct {
	Token token.Token
	Base  Expr
	Begin Expr
	End   Expr
}

func (s *SliceAccessExpr) Pos() token.Position { return s.Token.Pos }
func (*SliceAccessExpr) exprNode()             {}

// SizeofExpr is `sizeof(T)`.
type SizeofExpr struct {
	Token    token.Token
	TypeSpec TypeSpec
}

func (s *SizeofExpr) Pos() token.Position { return s.Token.Pos }
func (*SizeofExpr) exprNode()             {}

// AlignofExpr is `alignof(T)`.
type AlignofExpr struct {
	Token    token.Token
	TypeSpec TypeSpec
}

func (a *AlignofExpr) Pos() token.Position { return a.Token.Pos }
func (*AlignofExpr) exprNode()             {}

// UnaryOp enumerates supported prefix operators.
type UnaryOp int

const (
	UnaryNot    UnaryOp = iota // !
	UnaryPos                   // +
	UnaryNeg                   // -
	UnaryBitNot                // ~
	UnaryAddr                  // &
	UnaryCountof
)

// UnaryExpr is a prefix-operator expression.
type UnaryExpr struct {
	Token token.Token
	Op    UnaryOp
	Value Expr
}

func (u *UnaryExpr) Pos() token.Position { return u.Token.Pos }
func (*UnaryExpr) exprNode()             {}

// BinaryOp enumerates supported infix operators.
type BinaryOp int

const (
	BinOr BinaryOp = iota
	BinAnd
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinBitOr
	BinBitXor
	BinBitAnd
)

// BinaryExpr is an infix-operator expression.
type BinaryExpr struct {
	Token token.Token
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) Pos() token.Position { return b.Token.Pos }
func (*BinaryExpr) exprNode()             {}

// MemberAccessExpr is `base.name`.
type MemberAccessExpr struct {
	Token token.Token
	Base  Expr
	Name  *Identifier
}

func (m *MemberAccessExpr) Pos() token.Position { return m.Token.Pos }
func (*MemberAccessExpr) exprNode()             {}

// DerefExpr is `*expr` used as a value-position dereference (distinct from
// PointerType, which appears only in typespec position).
type DerefExpr struct {
	Token token.Token
	Value Expr
}

func (d *DerefExpr) Pos() token.Position { return d.Token.Pos }
func (*DerefExpr) exprNode()             {}
