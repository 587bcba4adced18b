package evaluator

import (
	"github.com/sunder-lang/sunderc/internal/address"
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/value"
)

// EvalLValue resolves expr's compile-time address, for `&expr` and for the
// base of a slice-access (§4.3 "l-value rules"). Only a Variable/Constant
// identifier with a static address, an array index into such an l-value,
// and a member access into such an l-value are legal; dereferencing a
// pointer as an l-value is always fatal at compile time.
func (e *Evaluator) EvalLValue(expr tir.Expr) (value.Value, error) {
	switch n := expr.(type) {
	case *tir.Identifier:
		return e.lvalueIdentifier(n)
	case *tir.Index:
		return e.lvalueIndex(n)
	case *tir.MemberAccess:
		return e.lvalueMemberAccess(n)
	case *tir.Deref:
		return value.Value{}, errf(n.Pos(), "constant expression takes the address of a dereference")
	default:
		return value.Value{}, errf(expr.Pos(), "expression is not addressable in a constant expression")
	}
}

func (e *Evaluator) lvalueIdentifier(n *tir.Identifier) (value.Value, error) {
	sym := n.Sym
	if sym.Addr == nil || sym.Addr.Kind != address.Static {
		return value.Value{}, errf(n.Pos(), "%q has no static address in a constant expression", sym.Name)
	}
	ptrType := e.Reg.UniquePointer(sym.Type)
	return value.NewPointer(ptrType, *sym.Addr), nil
}

func (e *Evaluator) lvalueIndex(n *tir.Index) (value.Value, error) {
	baseType := n.Base.Type()
	if !baseType.IsArray() {
		return value.Value{}, errf(n.Pos(), "index base is not addressable in a constant expression")
	}
	basePtr, err := e.EvalLValue(n.Base)
	if err != nil {
		return value.Value{}, err
	}
	idx, err := e.EvalRValue(n.Idx)
	if err != nil {
		return value.Value{}, err
	}
	i := idx.Int()
	count := baseType.Count()
	if i.Sign() < 0 || i.Cmp(bigFromUint64(count)) >= 0 {
		return value.Value{}, errf(n.Pos(), "index %s out of bounds for array of count %d", i, count)
	}
	elemSize := baseType.Base().Size()
	addr := basePtr.Addr().Rebase(i.Uint64() * elemSize)
	elemPtrType := e.Reg.UniquePointer(baseType.Base())
	return value.NewPointer(elemPtrType, addr), nil
}

func (e *Evaluator) lvalueMemberAccess(n *tir.MemberAccess) (value.Value, error) {
	basePtr, err := e.EvalLValue(n.Base)
	if err != nil {
		return value.Value{}, err
	}
	baseType := n.Base.Type()
	member := baseType.Members()[n.MemberIndex]
	addr := basePtr.Addr().Rebase(member.Offset)
	elemPtrType := e.Reg.UniquePointer(n.Type())
	return value.NewPointer(elemPtrType, addr), nil
}
