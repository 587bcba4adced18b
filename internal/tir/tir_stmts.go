package tir

import (
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/token"
)

type stmtBase struct {
	pos token.Position
}

func (s stmtBase) Pos() token.Position { return s.pos }
func (stmtBase) stmtNode()             {}

// DeferLink is one node of the singly-linked defer chain (§9 "Defer chains
// as linked lists"): each `defer` statement pushes a link; `return`/
// `break`/`continue` capture the chain head in effect at the jump so code
// generation can emit the correct unwinding sequence.
type DeferLink struct {
	Stmt Stmt
	Next *DeferLink
}

// Block is a sequence of statements owning its own lexical symbol table,
// frozen when the block is fully resolved (§4.2, §4.4 "Else/elif bodies
// each get their own symbol table frozen upon block exit").
type Block struct {
	pos   token.Position
	Stmts []Stmt
	Table *symbols.SymbolTable
}

func NewBlock(pos token.Position, table *symbols.SymbolTable, stmts []Stmt) *Block {
	return &Block{pos: pos, Table: table, Stmts: stmts}
}

func (b *Block) Pos() token.Position { return b.pos }

// VarDecl declares a variable. Locals defer initializer evaluation to
// runtime (Value stays nil on the symbol); globals freeze a Value at
// resolution time (§4.4 "Variable/constant resolution").
type VarDecl struct {
	stmtBase
	Sym  *symbols.Symbol
	Init Expr
}

func NewVarDecl(pos token.Position, sym *symbols.Symbol, init Expr) *VarDecl {
	return &VarDecl{stmtBase{pos}, sym, init}
}

// ConstDecl declares a constant; its symbol always carries a frozen Value.
type ConstDecl struct {
	stmtBase
	Sym *symbols.Symbol
}

func NewConstDecl(pos token.Position, sym *symbols.Symbol) *ConstDecl {
	return &ConstDecl{stmtBase{pos}, sym}
}

// Assign is `LHS = RHS`, where LHS has already been confirmed to be a
// legal l-value form (§4.4 "Assignment").
type Assign struct {
	stmtBase
	LHS, RHS Expr
}

func NewAssign(pos token.Position, lhs, rhs Expr) *Assign {
	return &Assign{stmtBase{pos}, lhs, rhs}
}

// ExprStmt evaluates an expression for its side effects (calls, in
// practice) and discards the result.
type ExprStmt struct {
	stmtBase
	Expr Expr
}

func NewExprStmt(pos token.Position, e Expr) *ExprStmt {
	return &ExprStmt{stmtBase{pos}, e}
}

// IfBranch is one arm of an If; Cond is nil for the trailing else arm.
type IfBranch struct {
	Cond Expr
	Body *Block
}

type If struct {
	stmtBase
	Branches []IfBranch
}

func NewIf(pos token.Position, branches []IfBranch) *If {
	return &If{stmtBase{pos}, branches}
}

// ForRange is `for i in begin:end { ... }` (§4.4: both endpoints usize).
type ForRange struct {
	stmtBase
	Var        *symbols.Symbol
	Begin, End Expr
	Body       *Block
}

func NewForRange(pos token.Position, v *symbols.Symbol, begin, end Expr, body *Block) *ForRange {
	return &ForRange{stmtBase{pos}, v, begin, end, body}
}

// ForExpr is `for cond { ... }`.
type ForExpr struct {
	stmtBase
	Cond Expr
	Body *Block
}

func NewForExpr(pos token.Position, cond Expr, body *Block) *ForExpr {
	return &ForExpr{stmtBase{pos}, cond, body}
}

// Return captures the defer-chain head in effect at the jump (§4.4, §9).
// Value is nil for a bare return, only legal in a void function.
type Return struct {
	stmtBase
	Value     Expr
	DeferHead *DeferLink
}

func NewReturn(pos token.Position, v Expr, deferHead *DeferLink) *Return {
	return &Return{stmtBase{pos}, v, deferHead}
}

// Break/Continue must be lexically within a loop; both capture the current
// defer-chain head and the loop's own defer-chain anchor (the chain head
// at loop entry), so codegen can unwind exactly the defers pushed inside
// the loop body.
type Break struct {
	stmtBase
	DeferHead, LoopAnchor *DeferLink
}

func NewBreak(pos token.Position, deferHead, loopAnchor *DeferLink) *Break {
	return &Break{stmtBase{pos}, deferHead, loopAnchor}
}

type Continue struct {
	stmtBase
	DeferHead, LoopAnchor *DeferLink
}

func NewContinue(pos token.Position, deferHead, loopAnchor *DeferLink) *Continue {
	return &Continue{stmtBase{pos}, deferHead, loopAnchor}
}

// Defer wraps the deferred statement; the resolver links it onto the
// current defer chain as it's produced.
type Defer struct {
	stmtBase
	Stmt Stmt
	Link *DeferLink
}

func NewDefer(pos token.Position, stmt Stmt, link *DeferLink) *Defer {
	return &Defer{stmtBase{pos}, stmt, link}
}
