// Package tir defines the typed intermediate representation the resolver
// produces from a CST (§3 "TIR expression node", §6 "Back-end contract").
// Every node is immutable after construction and carries a source location
// plus — for expressions — a result Type. Statements form blocks; blocks
// own their lexical symbol table.
package tir

import (
	"math/big"

	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/token"
	"github.com/sunder-lang/sunderc/internal/types"
)

// Node is the common interface of every TIR node.
type Node interface {
	Pos() token.Position
}

// Expr is a TIR expression: immutable, carrying its resolved result Type.
type Expr interface {
	Node
	Type() *types.Type
	exprNode()
}

// Stmt is a TIR statement.
type Stmt interface {
	Node
	stmtNode()
}

type exprBase struct {
	pos token.Position
	typ *types.Type
}

func (e exprBase) Pos() token.Position { return e.pos }
func (e exprBase) Type() *types.Type   { return e.typ }
func (exprBase) exprNode()             {}

// Identifier denotes a resolved reference to a Constant or Function symbol
// (§4.3: "only Constant and Function symbols" are legal r-values here) or,
// in an l-value or runtime-expression context, a Variable symbol.
type Identifier struct {
	exprBase
	Sym *symbols.Symbol
}

func NewIdentifier(pos token.Position, sym *symbols.Symbol) *Identifier {
	return &Identifier{exprBase: exprBase{pos: pos, typ: sym.Type}, Sym: sym}
}

// BoolLit is a resolved boolean literal.
type BoolLit struct {
	exprBase
	Value bool
}

func NewBoolLit(pos token.Position, t *types.Type, v bool) *BoolLit {
	return &BoolLit{exprBase{pos, t}, v}
}

// IntegerLit is a resolved integer literal, typed or unsized depending on
// its suffix (§4.4 "Integer literal suffix -> type mapping").
type IntegerLit struct {
	exprBase
	Value *big.Int
}

func NewIntegerLit(pos token.Position, t *types.Type, v *big.Int) *IntegerLit {
	return &IntegerLit{exprBase{pos, t}, new(big.Int).Set(v)}
}

// BytesLit references the static backing array symbol a bytes literal was
// registered under (§4.4: "allocates a new static array constant of type
// [N+1]byte with a NUL byte appended"). Type is always a slice of byte.
type BytesLit struct {
	exprBase
	Backing *symbols.Symbol
	Length  uint64
}

func NewBytesLit(pos token.Position, sliceType *types.Type, backing *symbols.Symbol, length uint64) *BytesLit {
	return &BytesLit{exprBase{pos, sliceType}, backing, length}
}

// ArrayLitElement mirrors ast.ArrayLitElement after resolution.
type ArrayLitElement struct {
	Value      Expr
	IsEllipsis bool
}

// ArrayLit is a resolved array literal.
type ArrayLit struct {
	exprBase
	Elements []ArrayLitElement
}

func NewArrayLit(pos token.Position, t *types.Type, elems []ArrayLitElement) *ArrayLit {
	return &ArrayLit{exprBase{pos, t}, elems}
}

// SliceLit is a resolved slice literal; Backing is the array symbol whose
// address backs the slice's pointer component. Backing is always a static
// constant, also for a slice literal inside a function body; no local
// array variable is allocated for it.
type SliceLit struct {
	exprBase
	Elements []Expr
	Backing  *symbols.Symbol
}

func NewSliceLit(pos token.Position, t *types.Type, elems []Expr, backing *symbols.Symbol) *SliceLit {
	return &SliceLit{exprBase{pos, t}, elems, backing}
}

// Cast is an explicit `(:T)expr` cast (§4.3).
type Cast struct {
	exprBase
	Value Expr
}

func NewCast(pos token.Position, t *types.Type, v Expr) *Cast {
	return &Cast{exprBase{pos, t}, v}
}

// Call is a resolved function call. SelfArg is non-nil when the callee was
// rewritten from `instance.method(args)` to an implicit `&instance` first
// argument (§4.4 "Call").
type Call struct {
	exprBase
	Callee  Expr
	Args    []Expr
	SelfArg Expr
}

func NewCall(pos token.Position, t *types.Type, callee Expr, args []Expr, selfArg Expr) *Call {
	return &Call{exprBase{pos, t}, callee, args, selfArg}
}

// Syscall is a raw syscall expression. Legal in runtime code; fatal under
// constant evaluation (§4.3).
type Syscall struct {
	exprBase
	Args []Expr
}

func NewSyscall(pos token.Position, t *types.Type, args []Expr) *Syscall {
	return &Syscall{exprBase{pos, t}, args}
}

// Index is array/slice indexing.
type Index struct {
	exprBase
	Base, Idx Expr
}

func NewIndex(pos token.Position, t *types.Type, base, idx Expr) *Index {
	return &Index{exprBase{pos, t}, base, idx}
}

// SliceAccess is `base[begin:end]`.
type SliceAccess struct {
	exprBase
	Base, Begin, End Expr
}

func NewSliceAccess(pos token.Position, t *types.Type, base, begin, end Expr) *SliceAccess {
	return &SliceAccess{exprBase{pos, t}, base, begin, end}
}

// Sizeof/Alignof resolve a typespec to its size/alignment (§4.3 "sizeof(T):
// the usize value of T.size").
type Sizeof struct {
	exprBase
	Operand *types.Type
}

func NewSizeof(pos token.Position, usize *types.Type, operand *types.Type) *Sizeof {
	return &Sizeof{exprBase{pos, usize}, operand}
}

type Alignof struct {
	exprBase
	Operand *types.Type
}

func NewAlignof(pos token.Position, usize *types.Type, operand *types.Type) *Alignof {
	return &Alignof{exprBase{pos, usize}, operand}
}

// UnaryOp mirrors ast.UnaryOp after resolution, plus the Countof case
// merged in (distinct from ast since `&` and `countof` compile to
// different IR shapes than arithmetic unary ops, but sharing the node
// keeps dispatch in one switch in the evaluator, matching ast's own
// single-enum approach).
type UnaryOp = ast.UnaryOp

const (
	UnaryNot     = ast.UnaryNot
	UnaryPos     = ast.UnaryPos
	UnaryNeg     = ast.UnaryNeg
	UnaryBitNot  = ast.UnaryBitNot
	UnaryAddr    = ast.UnaryAddr
	UnaryCountof = ast.UnaryCountof
)

type Unary struct {
	exprBase
	Op    UnaryOp
	Value Expr
}

func NewUnary(pos token.Position, t *types.Type, op UnaryOp, v Expr) *Unary {
	return &Unary{exprBase{pos, t}, op, v}
}

// BinaryOp mirrors ast.BinaryOp after resolution.
type BinaryOp = ast.BinaryOp

const (
	BinOr     = ast.BinOr
	BinAnd    = ast.BinAnd
	BinEq     = ast.BinEq
	BinNe     = ast.BinNe
	BinLt     = ast.BinLt
	BinLe     = ast.BinLe
	BinGt     = ast.BinGt
	BinGe     = ast.BinGe
	BinAdd    = ast.BinAdd
	BinSub    = ast.BinSub
	BinMul    = ast.BinMul
	BinDiv    = ast.BinDiv
	BinBitOr  = ast.BinBitOr
	BinBitXor = ast.BinBitXor
	BinBitAnd = ast.BinBitAnd
)

type Binary struct {
	exprBase
	Op          BinaryOp
	Left, Right Expr
}

func NewBinary(pos token.Position, t *types.Type, op BinaryOp, l, r Expr) *Binary {
	return &Binary{exprBase{pos, t}, op, l, r}
}

// StructLitField pairs a resolved member index with its value expression.
type StructLitField struct {
	MemberIndex int
	Value       Expr
}

// StructLit is a resolved struct literal, one entry per member variable in
// declaration order (§4.4: "missing or duplicate struct-literal
// initializer" is a structural error caught before this node exists).
type StructLit struct {
	exprBase
	Fields []StructLitField
}

func NewStructLit(pos token.Position, t *types.Type, fields []StructLitField) *StructLit {
	return &StructLit{exprBase{pos, t}, fields}
}

// MemberAccess is `base.Name`, resolved to a member index when Base's type
// is a completed struct.
type MemberAccess struct {
	exprBase
	Base        Expr
	MemberIndex int
	MemberName  string
}

func NewMemberAccess(pos token.Position, t *types.Type, base Expr, idx int, name string) *MemberAccess {
	return &MemberAccess{exprBase{pos, t}, base, idx, name}
}

// Deref is the value-position `*expr` (always fatal as an r-value at
// compile time per §4.3, but legal in runtime-generated code).
type Deref struct {
	exprBase
	Value Expr
}

func NewDeref(pos token.Position, t *types.Type, v Expr) *Deref {
	return &Deref{exprBase{pos, t}, v}
}
