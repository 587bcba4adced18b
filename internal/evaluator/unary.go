package evaluator

import (
	"math/big"

	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/value"
)

// evalUnary implements §4.3 "Unary": `!` on bool, `+`/`-`/`~` on integer
// (with a range check on negation), `~` on byte, `&` delegates to
// EvalLValue, and `countof` yields the array's declared count or a
// slice's own count component.
func (e *Evaluator) evalUnary(n *tir.Unary) (value.Value, error) {
	if n.Op == tir.UnaryAddr {
		return e.EvalLValue(n.Value)
	}
	if n.Op == tir.UnaryCountof {
		return e.evalCountof(n)
	}

	v, err := e.EvalRValue(n.Value)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Op {
	case tir.UnaryNot:
		return value.NewBool(n.Type(), !v.Bool()), nil
	case tir.UnaryPos:
		return value.NewInteger(n.Type(), v.Int()), nil
	case tir.UnaryNeg:
		neg := new(big.Int).Neg(v.Int())
		t := n.Type()
		if !t.IsUnsized() && (neg.Cmp(t.IntMin()) < 0 || neg.Cmp(t.IntMax()) > 0) {
			return value.Value{}, errf(n.Pos(), "negation of %s overflows type %s", v.Int(), t)
		}
		return value.NewInteger(t, neg), nil
	case tir.UnaryBitNot:
		if n.Type().IsByte() {
			return value.NewByte(n.Type(), ^v.ByteVal()), nil
		}
		t := n.Type()
		raw := value.BitwiseNot(v.Int(), t.IntWidth(), t.IsSigned())
		return value.NewInteger(t, raw), nil
	default:
		panic("evaluator: unhandled unary operator")
	}
}

func (e *Evaluator) evalCountof(n *tir.Unary) (value.Value, error) {
	operandType := n.Value.Type()
	if operandType.IsArray() {
		return value.NewInteger(n.Type(), bigFromUint64(operandType.Count())), nil
	}
	v, err := e.EvalRValue(n.Value)
	if err != nil {
		return value.Value{}, err
	}
	return v.SliceCount(), nil
}
