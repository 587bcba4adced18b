package evaluator

import (
	"math/big"

	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/value"
)

// evalBinary implements §4.3 "Binary": short-circuit is not observable at
// compile time so `or`/`and` simply evaluate both operands; equality uses
// value.Equal, ordering uses value.Compare, arithmetic is big.Int with a
// result-range check, division by zero is fatal, and the bitwise operators
// delegate to the internal/value helpers built on the same
// bit-reinterpretation primitive casts use.
func (e *Evaluator) evalBinary(n *tir.Binary) (value.Value, error) {
	l, err := e.EvalRValue(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	r, err := e.EvalRValue(n.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Op {
	case tir.BinOr:
		return value.NewBool(n.Type(), l.Bool() || r.Bool()), nil
	case tir.BinAnd:
		return value.NewBool(n.Type(), l.Bool() && r.Bool()), nil
	case tir.BinEq:
		return value.NewBool(n.Type(), value.Equal(l, r)), nil
	case tir.BinNe:
		return value.NewBool(n.Type(), !value.Equal(l, r)), nil
	case tir.BinLt, tir.BinLe, tir.BinGt, tir.BinGe:
		return e.evalOrdering(n, l, r)
	case tir.BinAdd, tir.BinSub, tir.BinMul:
		return e.evalArith(n, l, r)
	case tir.BinDiv:
		return e.evalDiv(n, l, r)
	case tir.BinBitOr:
		return value.NewInteger(n.Type(), value.BitwiseOr(l.Int(), r.Int(), n.Type().IntWidth(), n.Type().IsSigned())), nil
	case tir.BinBitXor:
		return value.NewInteger(n.Type(), value.BitwiseXor(l.Int(), r.Int(), n.Type().IntWidth(), n.Type().IsSigned())), nil
	case tir.BinBitAnd:
		return value.NewInteger(n.Type(), value.BitwiseAnd(l.Int(), r.Int(), n.Type().IntWidth(), n.Type().IsSigned())), nil
	default:
		panic("evaluator: unhandled binary operator")
	}
}

func (e *Evaluator) evalOrdering(n *tir.Binary, l, r value.Value) (value.Value, error) {
	cmp, err := value.Compare(l, r)
	if err != nil {
		return value.Value{}, errf(n.Pos(), "%s", err)
	}
	var result bool
	switch n.Op {
	case tir.BinLt:
		result = cmp < 0
	case tir.BinLe:
		result = cmp <= 0
	case tir.BinGt:
		result = cmp > 0
	case tir.BinGe:
		result = cmp >= 0
	}
	return value.NewBool(n.Type(), result), nil
}

func (e *Evaluator) evalArith(n *tir.Binary, l, r value.Value) (value.Value, error) {
	var result *big.Int
	switch n.Op {
	case tir.BinAdd:
		result = new(big.Int).Add(l.Int(), r.Int())
	case tir.BinSub:
		result = new(big.Int).Sub(l.Int(), r.Int())
	case tir.BinMul:
		result = new(big.Int).Mul(l.Int(), r.Int())
	}
	t := n.Type()
	if !t.IsUnsized() && (result.Cmp(t.IntMin()) < 0 || result.Cmp(t.IntMax()) > 0) {
		return value.Value{}, errf(n.Pos(), "arithmetic result %s overflows type %s", result, t)
	}
	return value.NewInteger(t, result), nil
}

// floorDiv returns floor(a/b), per §4.3 "bigint floor-division." big.Int's
// own Quo truncates toward zero and Div is Euclidean (remainder always
// non-negative); neither matches floor semantics when the operands have
// opposite signs and the division isn't exact, so truncated quotient and
// remainder are adjusted by hand.
func floorDiv(a, b *big.Int) *big.Int {
	q, m := new(big.Int).QuoRem(a, b, new(big.Int))
	if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

func (e *Evaluator) evalDiv(n *tir.Binary, l, r value.Value) (value.Value, error) {
	if r.Int().Sign() == 0 {
		return value.Value{}, errf(n.Pos(), "division by zero")
	}
	result := floorDiv(l.Int(), r.Int())
	t := n.Type()
	if !t.IsUnsized() && (result.Cmp(t.IntMin()) < 0 || result.Cmp(t.IntMax()) > 0) {
		return value.Value{}, errf(n.Pos(), "division result %s overflows type %s", result, t)
	}
	return value.NewInteger(t, result), nil
}
