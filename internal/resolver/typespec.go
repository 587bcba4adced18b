package resolver

import (
	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/types"
	"github.com/sunder-lang/sunderc/internal/value"
)

// resolveTypeSpec implements §4.4 "Typespec resolution": each syntactic
// form maps onto the registry's canonicalization API.
func (r *Resolver) resolveTypeSpec(table *symbols.SymbolTable, ts ast.TypeSpec) *types.Type {
	switch t := ts.(type) {
	case *ast.NamedType:
		sym := r.walkPath(table, t.Path)
		if sym.Kind != symbols.KindType {
			r.Sink.Fatal(t.Pos(), "%q does not name a type", pathString(t.Path))
		}
		return sym.Type

	case *ast.PointerType:
		base := r.resolveTypeSpec(table, t.Base)
		return r.Reg.UniquePointer(base)

	case *ast.SliceType:
		base := r.resolveTypeSpec(table, t.Base)
		return r.Reg.UniqueSlice(base)

	case *ast.ArrayType:
		base := r.resolveTypeSpec(table, t.Base)
		countExpr := r.resolveExpr(table, t.Count)
		v, err := r.Eval.EvalRValue(countExpr)
		if err != nil {
			r.Sink.Fatal(t.Count.Pos(), "array count must be a constant expression: %s", err)
		}
		if v.Kind() != value.Integer {
			r.Sink.Fatal(t.Count.Pos(), "array count must be an integer")
		}
		n := v.Int()
		if n.Sign() < 0 {
			r.Sink.Fatal(t.Count.Pos(), "array count must not be negative")
		}
		return r.Reg.UniqueArray(n.Uint64(), base)

	case *ast.FuncType:
		params := make([]*types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = r.resolveTypeSpec(table, p)
		}
		ret := r.Reg.VoidType()
		if t.Return != nil {
			ret = r.resolveTypeSpec(table, t.Return)
		}
		return r.Reg.UniqueFunction(params, ret)

	case *ast.TypeOfType:
		e := r.resolveExpr(table, t.Expr)
		return e.Type()

	default:
		panic("resolver: unhandled typespec node")
	}
}
