package evaluator

import (
	"math/big"

	"github.com/sunder-lang/sunderc/internal/address"
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/value"
)

// evalIndex implements §4.3 "Index": array indexing deep-clones the
// selected element after bounds checking; slice indexing is a pointer
// dereference and is fatal at compile time.
func (e *Evaluator) evalIndex(n *tir.Index) (value.Value, error) {
	baseType := n.Base.Type()
	if baseType.IsSlice() {
		return value.Value{}, errf(n.Pos(), "slice indexing is not supported in compile-time expressions")
	}

	base, err := e.EvalRValue(n.Base)
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
	return base.Elements()[i.Uint64()].Clone(), nil
}

// evalSliceAccess implements §4.3 "Slice access": an array l-value is
// rebased by begin*element_size and retyped to a pointer to the element
// type, paired with count = end - begin. Slice-access on a slice value is
// fatal.
func (e *Evaluator) evalSliceAccess(n *tir.SliceAccess) (value.Value, error) {
	baseType := n.Base.Type()
	if baseType.IsSlice() {
		return value.Value{}, errf(n.Pos(), "slice access is not supported in compile-time expressions")
	}

	basePtr, err := e.EvalLValue(n.Base)
	if err != nil {
		return value.Value{}, err
	}

	begin, err := e.EvalRValue(n.Begin)
	if err != nil {
		return value.Value{}, err
	}
	end, err := e.EvalRValue(n.End)
	if err != nil {
		return value.Value{}, err
	}

	count := baseType.Count()
	b, en := begin.Int(), end.Int()
	countBig := bigFromUint64(count)
	if b.Sign() < 0 || b.Cmp(countBig) >= 0 {
		return value.Value{}, errf(n.Pos(), "slice begin %s out of bounds for array of count %d", b, count)
	}
	if en.Cmp(countBig) > 0 {
		return value.Value{}, errf(n.Pos(), "slice end %s out of bounds for array of count %d", en, count)
	}
	// end < begin yields a negative-length slice via the algebraic
	// subtraction result (§9 open question, resolved as "accept the
	// algebraic result").
	elemSize := baseType.Base().Size()
	delta := new(big.Int).Mul(b, bigFromUint64(elemSize))
	if basePtr.Addr().Kind != address.Static {
		return value.Value{}, errf(n.Pos(), "slice access of a non-static array is not supported in compile-time expressions")
	}
	addr := basePtr.Addr().Rebase(delta.Uint64())

	elemPtrType := e.Reg.UniquePointer(baseType.Base())
	ptr := value.NewPointer(elemPtrType, addr)

	length := new(big.Int).Sub(en, b)
	sliceType := e.Reg.UniqueSlice(baseType.Base())
	cnt := value.NewInteger(e.usize(), length)
	return value.NewSlice(sliceType, ptr, cnt), nil
}
