package resolver

import (
	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/tir"
)

// resolveBlock resolves a nested block, allocating a fresh child scope
// (§4.4 "Else/elif bodies each get their own symbol table frozen upon
// block exit").
func (r *Resolver) resolveBlock(parent *symbols.SymbolTable, b *ast.Block) *tir.Block {
	return r.resolveBlockWithTable(symbols.New(parent), b)
}

// resolveBlockWithTable resolves b's statements directly into an
// already-created table (used by for-range, whose loop variable and body
// share one scope) instead of allocating a further nested child.
func (r *Resolver) resolveBlockWithTable(table *symbols.SymbolTable, b *ast.Block) *tir.Block {
	stmts := make([]tir.Stmt, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		stmts = append(stmts, r.resolveStmt(table, s))
	}
	table.Freeze()
	return tir.NewBlock(b.Pos(), table, stmts)
}

func (r *Resolver) resolveStmt(table *symbols.SymbolTable, s ast.Stmt) tir.Stmt {
	switch n := s.(type) {
	case *ast.VarDecl:
		return r.resolveLocalVarDecl(table, n)
	case *ast.ConstDecl:
		return r.resolveLocalConstDecl(table, n)
	case *ast.IfStmt:
		return r.resolveIf(table, n)
	case *ast.ForRangeStmt:
		return r.resolveForRange(table, n)
	case *ast.ForExprStmt:
		return r.resolveForExpr(table, n)
	case *ast.ReturnStmt:
		return r.resolveReturn(table, n)
	case *ast.BreakStmt:
		return r.resolveBreak(n)
	case *ast.ContinueStmt:
		return r.resolveContinue(n)
	case *ast.DeferStmt:
		return r.resolveDefer(table, n)
	case *ast.AssignStmt:
		return r.resolveAssign(table, n)
	case *ast.ExprStmt:
		return r.resolveExprStmt(table, n)
	case *ast.Block:
		r.Sink.Fatal(n.Pos(), "a bare block is only legal as an if/for body")
		return nil
	default:
		panic("resolver: unhandled statement node")
	}
}

func (r *Resolver) resolveIf(table *symbols.SymbolTable, s *ast.IfStmt) *tir.If {
	branches := make([]tir.IfBranch, len(s.Branches))
	for i, b := range s.Branches {
		var cond tir.Expr
		if b.Cond != nil {
			cond = r.resolveExpr(table, b.Cond)
			if !cond.Type().IsBool() {
				r.Sink.Fatal(b.Cond.Pos(), "if condition must be bool, got %s", cond.Type())
			}
		}
		body := r.resolveBlock(table, b.Body)
		branches[i] = tir.IfBranch{Cond: cond, Body: body}
	}
	return tir.NewIf(s.Pos(), branches)
}

func (r *Resolver) resolveForRange(table *symbols.SymbolTable, s *ast.ForRangeStmt) *tir.ForRange {
	usizeT := r.Reg.IntegerType("usize")
	begin := r.resolveExpr(table, s.Begin)
	begin = r.mustImplicitCast(begin, usizeT, "for-range begin")
	end := r.resolveExpr(table, s.End)
	end = r.mustImplicitCast(end, usizeT, "for-range end")

	loopTable := symbols.New(table)
	addr := r.allocateLocal(usizeT)
	sym := &symbols.Symbol{Name: s.Var.Name, Kind: symbols.KindVariable, Pos: s.Var.Pos(), Type: usizeT, Addr: &addr}
	if err := loopTable.Insert(sym, true); err != nil {
		r.Sink.Fatal(s.Var.Pos(), "%s", err)
	}

	r.cur.loopAnchor = append(r.cur.loopAnchor, r.cur.deferHead)
	body := r.resolveBlockWithTable(loopTable, s.Body)
	r.cur.loopAnchor = r.cur.loopAnchor[:len(r.cur.loopAnchor)-1]

	return tir.NewForRange(s.Pos(), sym, begin, end, body)
}

func (r *Resolver) resolveForExpr(table *symbols.SymbolTable, s *ast.ForExprStmt) *tir.ForExpr {
	cond := r.resolveExpr(table, s.Cond)
	if !cond.Type().IsBool() {
		r.Sink.Fatal(s.Cond.Pos(), "for condition must be bool, got %s", cond.Type())
	}
	r.cur.loopAnchor = append(r.cur.loopAnchor, r.cur.deferHead)
	body := r.resolveBlock(table, s.Body)
	r.cur.loopAnchor = r.cur.loopAnchor[:len(r.cur.loopAnchor)-1]
	return tir.NewForExpr(s.Pos(), cond, body)
}

func (r *Resolver) resolveReturn(table *symbols.SymbolTable, s *ast.ReturnStmt) *tir.Return {
	var val tir.Expr
	if s.Value != nil {
		if r.cur.retType.IsVoid() {
			r.Sink.Fatal(s.Pos(), "void function must not return a value")
		}
		val = r.resolveExpr(table, s.Value)
		val = r.mustImplicitCast(val, r.cur.retType, "return value")
	} else if !r.cur.retType.IsVoid() {
		r.Sink.Fatal(s.Pos(), "function must return a value of type %s", r.cur.retType)
	}
	return tir.NewReturn(s.Pos(), val, r.cur.deferHead)
}

func (r *Resolver) resolveBreak(s *ast.BreakStmt) *tir.Break {
	if len(r.cur.loopAnchor) == 0 {
		r.Sink.Fatal(s.Pos(), "break outside a loop")
	}
	anchor := r.cur.loopAnchor[len(r.cur.loopAnchor)-1]
	return tir.NewBreak(s.Pos(), r.cur.deferHead, anchor)
}

func (r *Resolver) resolveContinue(s *ast.ContinueStmt) *tir.Continue {
	if len(r.cur.loopAnchor) == 0 {
		r.Sink.Fatal(s.Pos(), "continue outside a loop")
	}
	anchor := r.cur.loopAnchor[len(r.cur.loopAnchor)-1]
	return tir.NewContinue(s.Pos(), r.cur.deferHead, anchor)
}

func (r *Resolver) resolveDefer(table *symbols.SymbolTable, s *ast.DeferStmt) *tir.Defer {
	inner := r.resolveStmt(table, s.Stmt)
	link := &tir.DeferLink{Stmt: inner, Next: r.cur.deferHead}
	r.cur.deferHead = link
	return tir.NewDefer(s.Pos(), inner, link)
}

// isAssignableLValue implements §4.4 "Assignment": only an identifier
// denoting a Variable, an index into a slice, an array index or member
// access whose base is itself assignable, or a pointer dereference are
// legal assignment targets.
func isAssignableLValue(e tir.Expr) bool {
	switch n := e.(type) {
	case *tir.Identifier:
		return n.Sym.Kind == symbols.KindVariable
	case *tir.Index:
		if n.Base.Type().IsSlice() {
			return true
		}
		return isAssignableLValue(n.Base)
	case *tir.MemberAccess:
		return isAssignableLValue(n.Base)
	case *tir.Deref:
		return true
	default:
		return false
	}
}

func (r *Resolver) resolveAssign(table *symbols.SymbolTable, s *ast.AssignStmt) *tir.Assign {
	lhs := r.resolveExpr(table, s.LHS)
	if !isAssignableLValue(lhs) {
		r.Sink.Fatal(s.LHS.Pos(), "expression is not assignable")
	}
	rhs := r.resolveExpr(table, s.RHS)
	rhs = r.mustImplicitCast(rhs, lhs.Type(), "assignment")
	return tir.NewAssign(s.Pos(), lhs, rhs)
}

func (r *Resolver) resolveExprStmt(table *symbols.SymbolTable, s *ast.ExprStmt) *tir.ExprStmt {
	e := r.resolveExpr(table, s.Expr)
	return tir.NewExprStmt(s.Pos(), e)
}

// blockAlwaysReturns implements the terminal-return requirement for
// non-void functions (§4.4 "Function body resolution"): a block
// definitely returns if its last statement is a return, or an if/elif/
// else chain whose every branch (including a trailing else) definitely
// returns.
func blockAlwaysReturns(b *tir.Block) bool {
	if len(b.Stmts) == 0 {
		return false
	}
	switch last := b.Stmts[len(b.Stmts)-1].(type) {
	case *tir.Return:
		return true
	case *tir.If:
		if len(last.Branches) == 0 {
			return false
		}
		hasElse := false
		for _, br := range last.Branches {
			if br.Cond == nil {
				hasElse = true
			}
			if !blockAlwaysReturns(br.Body) {
				return false
			}
		}
		return hasElse
	default:
		return false
	}
}
