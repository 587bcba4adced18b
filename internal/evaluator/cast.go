package evaluator

import (
	"math/big"

	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/types"
	"github.com/sunder-lang/sunderc/internal/value"
)

// evalCast implements §4.3 "Cast". Pointer source/destination is always
// fatal; bool/byte/any fixed-width integer destinations all reduce to the
// same bit-reinterpretation rule, parameterized by destination width and
// signedness.
func (e *Evaluator) evalCast(n *tir.Cast) (value.Value, error) {
	src, err := e.EvalRValue(n.Value)
	if err != nil {
		return value.Value{}, err
	}

	srcType := n.Value.Type()
	dstType := n.Type()

	if srcType.IsPointer() || dstType.IsPointer() {
		return value.Value{}, errf(n.Pos(), "constant expression contains cast %s -> %s through a pointer type", srcType, dstType)
	}

	srcBits, srcWidth, srcSigned := rawBitsOf(src, srcType)

	switch {
	case dstType.IsBool():
		return value.NewBool(dstType, srcBits.Sign() != 0), nil
	case dstType.IsByte():
		raw := value.ReinterpretWidth(srcBits, srcWidth, srcSigned, 8, false)
		return value.NewByte(dstType, byte(raw.Uint64())), nil
	case dstType.IsInteger():
		raw := value.ReinterpretWidth(srcBits, srcWidth, srcSigned, dstType.IntWidth(), dstType.IsSigned())
		return value.NewInteger(dstType, raw), nil
	default:
		panic("evaluator: cast to an unsupported destination kind reached the evaluator")
	}
}

// rawBitsOf returns v's numeric magnitude together with its own type's bit
// width and signedness, as the common input the bit-reinterpretation
// helpers in internal/value need. Bool values serialize as a single
// unsigned bit; byte values as 8 unsigned bits.
func rawBitsOf(v value.Value, t *types.Type) (*big.Int, uint64, bool) {
	switch {
	case t.IsBool():
		if v.Bool() {
			return big.NewInt(1), 1, false
		}
		return big.NewInt(0), 1, false
	case t.IsByte():
		return big.NewInt(int64(v.ByteVal())), 8, false
	default:
		return v.Int(), t.IntWidth(), t.IsSigned()
	}
}
