package resolver

import (
	"github.com/sunder-lang/sunderc/internal/address"
	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/types"
	"github.com/sunder-lang/sunderc/internal/value"
)

// buildFuncSymbol resolves cst's signature to a types.Type, reserves a
// static label, and builds the self-referencing Function symbol §4.4
// describes ("create a Function symbol whose Value points back to
// itself"). It does not insert the symbol into any table — callers decide
// whether and where (module scope for a plain declaration, nowhere but a
// template's memo for an instantiation).
func (r *Resolver) buildFuncSymbol(cst *ast.FuncDecl, table *symbols.SymbolTable, prefix, localName string) *symbols.Symbol {
	params := make([]*types.Type, len(cst.Params))
	for i, p := range cst.Params {
		t := r.resolveTypeSpec(table, p.TypeSpec)
		if t.IsUnsized() {
			r.Sink.Fatal(p.Pos(), "parameter %q has unsized type %s", p.Name.Name, t)
		}
		params[i] = t
	}
	ret := r.Reg.VoidType()
	if cst.Return != nil {
		ret = r.resolveTypeSpec(table, cst.Return)
		if ret.IsUnsized() {
			r.Sink.Fatal(cst.Pos(), "function %q has unsized return type %s", cst.Name.Name, ret)
		}
	}
	funcType := r.Reg.UniqueFunction(params, ret)

	label := r.reserveLabel(prefix, localName)
	sym := &symbols.Symbol{
		Name: localName,
		Kind: symbols.KindFunction,
		Pos:  cst.Pos(),
		Type: funcType,
	}
	addr := address.NewStatic(label, 0)
	sym.Addr = &addr
	v := value.NewFunction(funcType, sym)
	sym.Value = &v
	return sym
}

// buildParamTable inserts cst's parameters, right-to-left, into a fresh
// table parented on declTable, at stack offsets starting +0x10 above rbp
// (§4.4 "parameter symbols ... in right-to-left stack order starting at
// +0x10, each rounded up to 8 bytes").
func (r *Resolver) buildParamTable(cst *ast.FuncDecl, declTable *symbols.SymbolTable) (*symbols.SymbolTable, []*symbols.Symbol) {
	fnTable := symbols.New(declTable)
	syms := make([]*symbols.Symbol, len(cst.Params))

	offset := int32(0x10)
	for i := len(cst.Params) - 1; i >= 0; i-- {
		p := cst.Params[i]
		t := r.resolveTypeSpec(declTable, p.TypeSpec)
		addr := address.NewLocal(offset)
		sym := &symbols.Symbol{Name: p.Name.Name, Kind: symbols.KindVariable, Pos: p.Pos(), Type: t, Addr: &addr}
		if err := fnTable.Insert(sym, false); err != nil {
			r.Sink.Fatal(p.Pos(), "%s", err)
		}
		syms[i] = sym
		offset += int32(roundUp8(t.Size()))
	}
	return fnTable, syms
}

// declareFunc handles a plain (non-template) top-level func declaration:
// the signature and self-referencing symbol are built and inserted
// immediately (so forward/mutual recursion sees it); the body is queued
// for the module's deferred body-resolution pass (§4.4 "Declaration
// order").
func (r *Resolver) declareFunc(d *ast.FuncDecl, table *symbols.SymbolTable, prefix string) error {
	sym := r.buildFuncSymbol(d, table, prefix, d.Name.Name)
	if err := table.Insert(sym, false); err != nil {
		r.Sink.Fatal(d.Pos(), "%s", err)
	}
	fnTable, params := r.buildParamTable(d, table)
	r.pendingFuncs = append(r.pendingFuncs, &pendingFunc{sym: sym, cst: d, table: fnTable, prefix: prefix})
	r.pendingFuncParams[d] = params
	return nil
}

// declareFuncSymbol is the template-instantiation counterpart of
// declareFunc: it builds the symbol and a pendingFunc but does not insert
// into declTable (the instantiation is reachable only through its
// template's memo) and does not defer the body — callers resolve it
// immediately.
func (r *Resolver) declareFuncSymbol(d *ast.FuncDecl, declTable *symbols.SymbolTable, prefix, localName string) (*symbols.Symbol, *pendingFunc) {
	sym := r.buildFuncSymbol(d, declTable, prefix, localName)
	fnTable, params := r.buildParamTable(d, declTable)
	pf := &pendingFunc{sym: sym, cst: d, table: fnTable, prefix: prefix}
	r.pendingFuncParams[d] = params
	return sym, pf
}

// resolveFuncBody walks a pending function's body, the final step of
// §4.4's function resolution. It is also called directly (not via the
// module's deferred pass) for template instantiations.
func (r *Resolver) resolveFuncBody(pf *pendingFunc) {
	params := r.pendingFuncParams[pf.cst]
	delete(r.pendingFuncParams, pf.cst)

	funcType := pf.sym.Type
	fn := &tir.Function{
		Sym:    pf.sym,
		Params: params,
		Return: funcType.Return(),
		Table:  pf.table,
	}

	prevCur := r.cur
	r.cur = &funcState{fn: fn, retType: funcType.Return()}

	if pf.cst.Body != nil {
		fn.Body = r.resolveBlock(pf.table, pf.cst.Body)
		if !funcType.Return().IsVoid() && !blockAlwaysReturns(fn.Body) {
			r.Sink.Fatal(pf.cst.Pos(), "function %q does not return a value on all paths", pf.cst.Name.Name)
		}
	}

	fn.LocalStackLowWater = r.cur.rbp
	r.cur = prevCur

	pf.table.Freeze()
	r.functions = append(r.functions, fn)
}
