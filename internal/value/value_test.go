package value

import (
	"math/big"
	"testing"

	"github.com/sunder-lang/sunderc/internal/address"
	"github.com/sunder-lang/sunderc/internal/types"
)

func TestNewIntegerRejectsOutOfRange(t *testing.T) {
	r := types.NewRegistry()
	u8 := r.IntegerType("u8")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic constructing u8 value of 256")
		}
	}()
	NewInteger(u8, big.NewInt(256))
}

func TestCloneIsDeep(t *testing.T) {
	r := types.NewRegistry()
	u32 := r.IntegerType("u32")
	arrT := r.UniqueArray(2, u32)

	orig := NewArray(arrT, []Value{
		NewInteger(u32, big.NewInt(1)),
		NewInteger(u32, big.NewInt(2)),
	})
	clone := orig.Clone()

	clone.elems[0].i.SetInt64(99)
	if orig.elems[0].i.Int64() == 99 {
		t.Fatalf("mutating clone's element mutated the original")
	}
}

func TestEqualStructural(t *testing.T) {
	r := types.NewRegistry()
	u32 := r.IntegerType("u32")

	a := NewInteger(u32, big.NewInt(42))
	b := NewInteger(u32, big.NewInt(42))
	c := NewInteger(u32, big.NewInt(7))

	if !Equal(a, b) {
		t.Errorf("expected equal integer values to compare equal")
	}
	if Equal(a, c) {
		t.Errorf("expected distinct integer values to compare unequal")
	}

	ptrT := r.UniquePointer(u32)
	p1 := NewPointer(ptrT, address.NewStatic("x", 0))
	p2 := NewPointer(ptrT, address.NewStatic("x", 0))
	p3 := NewPointer(ptrT, address.NewStatic("x", 4))
	if !Equal(p1, p2) {
		t.Errorf("expected pointers with equal addresses to compare equal")
	}
	if Equal(p1, p3) {
		t.Errorf("expected pointers with distinct addresses to compare unequal")
	}
}

func TestCompareOrdering(t *testing.T) {
	r := types.NewRegistry()
	s32 := r.IntegerType("s32")

	lo := NewInteger(s32, big.NewInt(-5))
	hi := NewInteger(s32, big.NewInt(5))

	cmp, err := Compare(lo, hi)
	if err != nil || cmp >= 0 {
		t.Fatalf("expected lo < hi, got cmp=%d err=%v", cmp, err)
	}

	ptrT := r.UniquePointer(s32)
	p1 := NewPointer(ptrT, address.NewStatic("x", 0))
	p2 := NewPointer(ptrT, address.NewStatic("x", 4))
	if _, err := Compare(p1, p2); err != ErrNotOrdered {
		t.Fatalf("expected ordered comparison of pointers to be rejected, got err=%v", err)
	}
}

func TestReinterpretWidthSignExtendsNegative(t *testing.T) {
	// s8(-1) widened to s32 must remain -1 (all-ones sign extension).
	n := big.NewInt(-1)
	got := ReinterpretWidth(n, 8, true, 32, true)
	if got.Cmp(big.NewInt(-1)) != 0 {
		t.Errorf("sign-extend -1 s8->s32 = %s, want -1", got)
	}
}

func TestReinterpretWidthZeroExtendsUnsigned(t *testing.T) {
	// u8(255) widened to u32 must be 255, not -1.
	n := big.NewInt(255)
	got := ReinterpretWidth(n, 8, false, 32, false)
	if got.Cmp(big.NewInt(255)) != 0 {
		t.Errorf("zero-extend 255 u8->u32 = %s, want 255", got)
	}
}

func TestReinterpretWidthTruncates(t *testing.T) {
	// s32(-1) truncated to u8 must be 255 (low byte of all-ones).
	n := big.NewInt(-1)
	got := ReinterpretWidth(n, 32, true, 8, false)
	if got.Cmp(big.NewInt(255)) != 0 {
		t.Errorf("truncate -1 s32->u8 = %s, want 255", got)
	}
}

func TestBitwiseNotWithinWidth(t *testing.T) {
	// ~u8(0) == 255.
	got := BitwiseNot(big.NewInt(0), 8, false)
	if got.Cmp(big.NewInt(255)) != 0 {
		t.Errorf("~u8(0) = %s, want 255", got)
	}
	// ~s8(0) == -1.
	got = BitwiseNot(big.NewInt(0), 8, true)
	if got.Cmp(big.NewInt(-1)) != 0 {
		t.Errorf("~s8(0) = %s, want -1", got)
	}
}

func TestNewStructEqualityIsMemberwise(t *testing.T) {
	r := types.NewRegistry()
	u32 := r.IntegerType("u32")
	structT := r.DeclareStruct("pkg.Point")
	r.CompleteStruct(structT, []types.Member{
		{Name: "x", Type: u32, Offset: 0},
		{Name: "y", Type: u32, Offset: 4},
	}, 8, 4, nil)

	a := NewStruct(structT, []Value{NewInteger(u32, big.NewInt(1)), NewInteger(u32, big.NewInt(2))})
	b := NewStruct(structT, []Value{NewInteger(u32, big.NewInt(1)), NewInteger(u32, big.NewInt(2))})
	c := NewStruct(structT, []Value{NewInteger(u32, big.NewInt(1)), NewInteger(u32, big.NewInt(3))})

	if !Equal(a, b) {
		t.Errorf("expected structurally identical structs to compare equal")
	}
	if Equal(a, c) {
		t.Errorf("expected structs differing in a member to compare unequal")
	}
}

func TestBitwiseAndOrXor(t *testing.T) {
	a := big.NewInt(0b1100)
	b := big.NewInt(0b1010)

	if got := BitwiseAnd(a, b, 8, false); got.Cmp(big.NewInt(0b1000)) != 0 {
		t.Errorf("AND = %s, want 8", got)
	}
	if got := BitwiseOr(a, b, 8, false); got.Cmp(big.NewInt(0b1110)) != 0 {
		t.Errorf("OR = %s, want 14", got)
	}
	if got := BitwiseXor(a, b, 8, false); got.Cmp(big.NewInt(0b0110)) != 0 {
		t.Errorf("XOR = %s, want 6", got)
	}
}
