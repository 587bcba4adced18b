package evaluator

import (
	"math/big"
	"testing"

	"github.com/sunder-lang/sunderc/internal/address"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/token"
	"github.com/sunder-lang/sunderc/internal/types"
	"github.com/sunder-lang/sunderc/internal/value"
)

func pos() token.Position { return token.Position{Path: "t.sunder", Line: 1, Column: 1} }

func newEval() (*Evaluator, *types.Registry) {
	reg := types.NewRegistry()
	return New(reg), reg
}

func bigI(n int64) *big.Int { return big.NewInt(n) }

func TestEvalRValueIntegerLiteral(t *testing.T) {
	e, reg := newEval()
	u8 := reg.IntegerType("u8")
	lit := tir.NewIntegerLit(pos(), u8, bigI(42))
	v, err := e.EvalRValue(lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int().Cmp(bigI(42)) != 0 {
		t.Fatalf("got %s, want 42", v.Int())
	}
}

func TestEvalCastTruncatesAndSignExtends(t *testing.T) {
	e, reg := newEval()
	s32 := reg.IntegerType("s32")
	s8 := reg.IntegerType("s8")

	src := tir.NewIntegerLit(pos(), s32, bigI(-1))
	cast := tir.NewCast(pos(), s8, src)
	v, err := e.EvalRValue(cast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int().Cmp(bigI(-1)) != 0 {
		t.Fatalf("got %s, want -1 (sign preserved)", v.Int())
	}

	u32 := reg.IntegerType("u32")
	u8 := reg.IntegerType("u8")
	src2 := tir.NewIntegerLit(pos(), u32, bigI(0x1FF))
	cast2 := tir.NewCast(pos(), u8, src2)
	v2, err := e.EvalRValue(cast2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2.Int().Cmp(bigI(0xFF)) != 0 {
		t.Fatalf("got %s, want 0xFF (truncated)", v2.Int())
	}
}

func TestEvalBinaryAddOverflowIsFatal(t *testing.T) {
	e, reg := newEval()
	u8 := reg.IntegerType("u8")
	l := tir.NewIntegerLit(pos(), u8, bigI(200))
	r := tir.NewIntegerLit(pos(), u8, bigI(200))
	bin := tir.NewBinary(pos(), u8, tir.BinAdd, l, r)
	_, err := e.EvalRValue(bin)
	if err == nil {
		t.Fatal("expected overflow error, got none")
	}
}

func TestEvalBinaryDivisionByZeroIsFatal(t *testing.T) {
	e, reg := newEval()
	s32 := reg.IntegerType("s32")
	l := tir.NewIntegerLit(pos(), s32, bigI(10))
	r := tir.NewIntegerLit(pos(), s32, bigI(0))
	bin := tir.NewBinary(pos(), s32, tir.BinDiv, l, r)
	_, err := e.EvalRValue(bin)
	if err == nil {
		t.Fatal("expected division-by-zero error, got none")
	}
}

func TestEvalUnaryBitNotIsInvolution(t *testing.T) {
	e, reg := newEval()
	u16 := reg.IntegerType("u16")
	lit := tir.NewIntegerLit(pos(), u16, bigI(0x00FF))
	once := tir.NewUnary(pos(), u16, tir.UnaryBitNot, lit)
	twice := tir.NewUnary(pos(), u16, tir.UnaryBitNot, once)
	v, err := e.EvalRValue(twice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int().Cmp(bigI(0x00FF)) != 0 {
		t.Fatalf("double bitwise-not should be the identity, got %s", v.Int())
	}
}

func TestEvalUnaryNegateOverflowIsFatal(t *testing.T) {
	e, reg := newEval()
	s8 := reg.IntegerType("s8")
	lit := tir.NewIntegerLit(pos(), s8, bigI(-128))
	neg := tir.NewUnary(pos(), s8, tir.UnaryNeg, lit)
	_, err := e.EvalRValue(neg)
	if err == nil {
		t.Fatal("expected overflow error negating s8 minimum, got none")
	}
}

func TestEvalIndexOutOfRangeIsFatal(t *testing.T) {
	e, reg := newEval()
	u8 := reg.IntegerType("u8")
	arrType := reg.UniqueArray(2, u8)
	lit := tir.NewArrayLit(pos(), arrType, []tir.ArrayLitElement{
		{Value: tir.NewIntegerLit(pos(), u8, bigI(1))},
		{Value: tir.NewIntegerLit(pos(), u8, bigI(2))},
	})
	idx := tir.NewIndex(pos(), u8, lit, tir.NewIntegerLit(pos(), reg.IntegerType("usize"), bigI(5)))
	_, err := e.EvalRValue(idx)
	if err == nil {
		t.Fatal("expected out-of-bounds error, got none")
	}
}

func TestEvalIndexOnSliceIsFatal(t *testing.T) {
	e, reg := newEval()
	u8 := reg.IntegerType("u8")
	sliceType := reg.UniqueSlice(u8)
	sym := &symbols.Symbol{Name: "s", Kind: symbols.KindConstant, Type: sliceType}
	id := tir.NewIdentifier(pos(), sym)
	idx := tir.NewIndex(pos(), u8, id, tir.NewIntegerLit(pos(), reg.IntegerType("usize"), bigI(0)))
	_, err := e.EvalRValue(idx)
	if err == nil {
		t.Fatal("expected slice-indexing-is-fatal error, got none")
	}
}

func TestEvalSliceAccessRebasesStaticAddress(t *testing.T) {
	e, reg := newEval()
	u8 := reg.IntegerType("u8")
	arrType := reg.UniqueArray(4, u8)
	addr := address.NewStatic("arr", 0)
	sym := &symbols.Symbol{Name: "arr", Kind: symbols.KindConstant, Type: arrType, Addr: &addr}
	id := tir.NewIdentifier(pos(), sym)

	usize := reg.IntegerType("usize")
	begin := tir.NewIntegerLit(pos(), usize, bigI(1))
	end := tir.NewIntegerLit(pos(), usize, bigI(3))
	sliceType := reg.UniqueSlice(u8)
	sa := tir.NewSliceAccess(pos(), sliceType, id, begin, end)

	v, err := e.EvalRValue(sa)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.SliceCount().Int().Cmp(bigI(2)) != 0 {
		t.Fatalf("got count %s, want 2", v.SliceCount().Int())
	}
	if v.SlicePointer().Addr().Offset != 1 {
		t.Fatalf("got offset %d, want 1", v.SlicePointer().Addr().Offset)
	}
}

func TestEvalIdentifierRejectsNonConstant(t *testing.T) {
	e, _ := newEval()
	sym := &symbols.Symbol{Name: "x", Kind: symbols.KindVariable}
	id := tir.NewIdentifier(pos(), sym)
	_, err := e.EvalRValue(id)
	if err == nil {
		t.Fatal("expected error evaluating a variable identifier as a constant, got none")
	}
}

func TestEvalCallIsAlwaysFatal(t *testing.T) {
	e, reg := newEval()
	call := tir.NewCall(pos(), reg.VoidType(), nil, nil, nil)
	_, err := e.EvalRValue(call)
	if err == nil {
		t.Fatal("expected call-in-constant-expression error, got none")
	}
}

func TestEvalBinaryEqualityStructural(t *testing.T) {
	e, reg := newEval()
	u8 := reg.IntegerType("u8")
	boolT := reg.BoolType()
	l := tir.NewIntegerLit(pos(), u8, bigI(7))
	r := tir.NewIntegerLit(pos(), u8, bigI(7))
	bin := tir.NewBinary(pos(), boolT, tir.BinEq, l, r)
	v, err := e.EvalRValue(bin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Bool() {
		t.Fatal("expected 7 == 7 to be true")
	}
}

func TestEvalCountofArrayUsesDeclaredCount(t *testing.T) {
	e, reg := newEval()
	u8 := reg.IntegerType("u8")
	arrType := reg.UniqueArray(3, u8)
	lit := tir.NewArrayLit(pos(), arrType, []tir.ArrayLitElement{
		{Value: tir.NewIntegerLit(pos(), u8, bigI(1))},
		{Value: tir.NewIntegerLit(pos(), u8, bigI(2))},
		{Value: tir.NewIntegerLit(pos(), u8, bigI(3))},
	})
	usize := reg.IntegerType("usize")
	co := tir.NewUnary(pos(), usize, tir.UnaryCountof, lit)
	v, err := e.EvalRValue(co)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int().Cmp(bigI(3)) != 0 {
		t.Fatalf("got %s, want 3", v.Int())
	}
}

func TestEvalDerefAsRValueIsFatal(t *testing.T) {
	e, reg := newEval()
	u8 := reg.IntegerType("u8")
	ptrT := reg.UniquePointer(u8)
	sym := &symbols.Symbol{Name: "p", Kind: symbols.KindConstant, Type: ptrT}
	id := tir.NewIdentifier(pos(), sym)
	deref := tir.NewDeref(pos(), u8, id)
	_, err := e.EvalRValue(deref)
	if err == nil {
		t.Fatal("expected dereference-in-constant-expression error, got none")
	}
}

func TestEvalLValueOfPlainIdentifierAddressesStatic(t *testing.T) {
	e, reg := newEval()
	u8 := reg.IntegerType("u8")
	addr := address.NewStatic("g", 0)
	sym := &symbols.Symbol{Name: "g", Kind: symbols.KindConstant, Type: u8, Addr: &addr}
	id := tir.NewIdentifier(pos(), sym)
	v, err := e.EvalLValue(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != value.Pointer {
		t.Fatalf("got kind %v, want Pointer", v.Kind())
	}
}
