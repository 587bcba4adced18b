package resolver

import (
	"github.com/sunder-lang/sunderc/internal/address"
	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/types"
)

// resolveDeclType resolves an optional declared type and an optional
// initializer expression, applying the implicit cast described by §4.4
// "Variable/constant resolution" when both are present, and deriving the
// symbol's type from whichever one is present when only one is.
func (r *Resolver) resolveDeclType(table *symbols.SymbolTable, ts ast.TypeSpec, init ast.Expr, pos ast.Node, context string) (*types.Type, tir.Expr) {
	var declType *types.Type
	if ts != nil {
		declType = r.resolveTypeSpec(table, ts)
	}
	var initExpr tir.Expr
	if init != nil {
		initExpr = r.resolveExpr(table, init)
		if declType != nil {
			initExpr = r.mustImplicitCast(initExpr, declType, context)
		}
	}
	var finalType *types.Type
	switch {
	case declType != nil:
		finalType = declType
	case initExpr != nil:
		finalType = initExpr.Type()
	default:
		r.Sink.Fatal(pos.Pos(), "%s: needs either a type or an initializer", context)
		return nil, nil
	}
	if finalType.IsUnsized() {
		r.Sink.Fatal(pos.Pos(), "%s has unsized type %s", context, finalType)
	}
	return finalType, initExpr
}

// resolveGlobalVarDecl implements §4.4 "Variable/constant resolution" for
// a module-level (or struct/extend-scope) `var`: non-extern globals always
// freeze a Value, via the evaluator, at resolution time.
func (r *Resolver) resolveGlobalVarDecl(d *ast.VarDecl, table *symbols.SymbolTable, prefix string) error {
	if d.IsExtern {
		if d.TypeSpec == nil {
			r.Sink.Fatal(d.Pos(), "extern var %q needs an explicit type", d.Name.Name)
		}
		t := r.resolveTypeSpec(table, d.TypeSpec)
		label := r.reserveLabel(prefix, d.Name.Name)
		addr := address.NewStatic(label, 0)
		sym := &symbols.Symbol{Name: d.Name.Name, Kind: symbols.KindVariable, Pos: d.Pos(), Type: t, Addr: &addr}
		if err := table.Insert(sym, false); err != nil {
			r.Sink.Fatal(d.Pos(), "%s", err)
		}
		r.statics = append(r.statics, &tir.StaticSymbol{Label: label, Type: t})
		return nil
	}

	finalType, initExpr := r.resolveDeclType(table, d.TypeSpec, d.Init, d, "variable "+d.Name.Name)
	if initExpr == nil {
		r.Sink.Fatal(d.Pos(), "global variable %q needs an initializer", d.Name.Name)
	}
	v, err := r.Eval.EvalRValue(initExpr)
	if err != nil {
		r.Sink.Fatal(d.Pos(), "variable %q initializer must be a constant expression: %s", d.Name.Name, err)
	}

	label := r.reserveLabel(prefix, d.Name.Name)
	addr := address.NewStatic(label, 0)
	sym := &symbols.Symbol{Name: d.Name.Name, Kind: symbols.KindVariable, Pos: d.Pos(), Type: finalType, Addr: &addr, Value: &v}
	if err := table.Insert(sym, false); err != nil {
		r.Sink.Fatal(d.Pos(), "%s", err)
	}
	r.statics = append(r.statics, &tir.StaticSymbol{Label: label, Type: finalType, Value: &v})
	return nil
}

// resolveGlobalConstDecl implements constant resolution: a constant's
// Value is always frozen, at module scope, struct-member scope, or
// extend scope alike — all three call into this one function.
func (r *Resolver) resolveGlobalConstDecl(d *ast.ConstDecl, table *symbols.SymbolTable, prefix string) {
	finalType, initExpr := r.resolveDeclType(table, d.TypeSpec, d.Init, d, "constant "+d.Name.Name)
	v, err := r.Eval.EvalRValue(initExpr)
	if err != nil {
		r.Sink.Fatal(d.Pos(), "constant %q initializer must be a constant expression: %s", d.Name.Name, err)
	}

	label := r.reserveLabel(prefix, d.Name.Name)
	addr := address.NewStatic(label, 0)
	sym := &symbols.Symbol{Name: d.Name.Name, Kind: symbols.KindConstant, Pos: d.Pos(), Type: finalType, Addr: &addr, Value: &v}
	if err := table.Insert(sym, false); err != nil {
		r.Sink.Fatal(d.Pos(), "%s", err)
	}
	r.statics = append(r.statics, &tir.StaticSymbol{Label: label, Type: finalType, Value: &v})
}

// allocateLocal reserves t's storage in the current function's stack
// frame, extending the low-water mark (§4.4: "subtracts the type's
// 8-byte-rounded size from the current rbp offset, extending the
// enclosing function's low-water mark").
func (r *Resolver) allocateLocal(t *types.Type) address.Address {
	size := int32(roundUp8(t.Size()))
	r.cur.rbp -= size
	return address.NewLocal(r.cur.rbp)
}

// resolveLocalVarDecl resolves a `var` statement inside a function body.
// Locals never carry a frozen Value — their initializer, if any, runs at
// runtime.
func (r *Resolver) resolveLocalVarDecl(table *symbols.SymbolTable, d *ast.VarDecl) *tir.VarDecl {
	if d.IsExtern {
		r.Sink.Fatal(d.Pos(), "extern var %q is only legal at module scope", d.Name.Name)
	}
	finalType, initExpr := r.resolveDeclType(table, d.TypeSpec, d.Init, d, "variable "+d.Name.Name)
	addr := r.allocateLocal(finalType)
	sym := &symbols.Symbol{Name: d.Name.Name, Kind: symbols.KindVariable, Pos: d.Pos(), Type: finalType, Addr: &addr}
	if err := table.Insert(sym, true); err != nil {
		r.Sink.Fatal(d.Pos(), "%s", err)
	}
	return tir.NewVarDecl(d.Pos(), sym, initExpr)
}

// resolveLocalConstDecl resolves a `const` statement inside a function
// body; like every constant, its Value is frozen via the evaluator.
func (r *Resolver) resolveLocalConstDecl(table *symbols.SymbolTable, d *ast.ConstDecl) *tir.ConstDecl {
	finalType, initExpr := r.resolveDeclType(table, d.TypeSpec, d.Init, d, "constant "+d.Name.Name)
	v, err := r.Eval.EvalRValue(initExpr)
	if err != nil {
		r.Sink.Fatal(d.Pos(), "constant %q initializer must be a constant expression: %s", d.Name.Name, err)
	}
	addr := r.allocateLocal(finalType)
	sym := &symbols.Symbol{Name: d.Name.Name, Kind: symbols.KindConstant, Pos: d.Pos(), Type: finalType, Addr: &addr, Value: &v}
	if err := table.Insert(sym, true); err != nil {
		r.Sink.Fatal(d.Pos(), "%s", err)
	}
	return tir.NewConstDecl(d.Pos(), sym)
}
