// Package value implements the compile-time Value model (§3): an
// interpretable mirror of the Type lattice, produced and consumed by the
// evaluator. Values are distinct from runtime values — they exist only
// during compilation and are not interned. The package has no release
// operation: a transient Value is reclaimed by the garbage collector once
// nothing references it.
package value

import (
	"fmt"
	"math/big"

	"github.com/sunder-lang/sunderc/internal/address"
	"github.com/sunder-lang/sunderc/internal/types"
)

// Kind tags which Value variant a Value is.
type Kind int

const (
	Boolean Kind = iota
	Byte
	Integer
	Function
	Pointer
	Array
	Slice
	Struct
)

// FunctionRef is the opaque handle a Function value carries back to the
// resolved function it denotes. Declared as an interface, rather than
// importing internal/symbols directly, to avoid a value<->symbols import
// cycle (symbols.Symbol embeds a Value). internal/symbols supplies the
// concrete implementation.
type FunctionRef interface {
	FunctionRefMarker()
}

// Value is a tagged union over the variants in §3. Construct with the
// New* functions below; do not build a Value struct literal directly
// outside this package, so invariants (e.g. array length matching the
// type's declared count) are always checked at construction.
type Value struct {
	kind Kind
	typ  *types.Type

	b   bool    // Boolean
	by  byte    // Byte
	i   *big.Int // Integer

	fn FunctionRef // Function

	ptrAddr address.Address // Pointer

	elems []Value // Array

	slicePtr   *Value // Slice: always a Pointer value
	sliceCount *Value // Slice: always a usize Integer value
}

func (v Value) Kind() Kind        { return v.kind }
func (v Value) Type() *types.Type { return v.typ }

func (v Value) Bool() bool             { return v.b }
func (v Value) ByteVal() byte          { return v.by }
func (v Value) Int() *big.Int          { return v.i }
func (v Value) Func() FunctionRef      { return v.fn }
func (v Value) Addr() address.Address  { return v.ptrAddr }
func (v Value) Elements() []Value      { return v.elems }
func (v Value) SlicePointer() Value    { return *v.slicePtr }
func (v Value) SliceCount() Value      { return *v.sliceCount }

// NewBool constructs a Boolean value.
func NewBool(t *types.Type, b bool) Value {
	return Value{kind: Boolean, typ: t, b: b}
}

// NewByte constructs a Byte value.
func NewByte(t *types.Type, b byte) Value {
	return Value{kind: Byte, typ: t, by: b}
}

// NewInteger constructs an Integer value. Panics if n falls outside
// [t.IntMin(), t.IntMax()] for a sized integer type — §8's invariant "for
// any Value of a sized integer type T, T.min <= value <= T.max" is enforced
// at construction so it can never be violated later. Unsized integer types
// have no bound and are never checked.
func NewInteger(t *types.Type, n *big.Int) Value {
	if !t.IsUnsized() {
		if n.Cmp(t.IntMin()) < 0 || n.Cmp(t.IntMax()) > 0 {
			panic(fmt.Sprintf("value: integer %s out of range for type %s [%s, %s]", n, t, t.IntMin(), t.IntMax()))
		}
	}
	return Value{kind: Integer, typ: t, i: new(big.Int).Set(n)}
}

// NewFunction constructs a Function value referencing fn.
func NewFunction(t *types.Type, fn FunctionRef) Value {
	return Value{kind: Function, typ: t, fn: fn}
}

// NewPointer constructs a Pointer value. §4.3 requires that every
// compile-time Pointer value have a Static address — taking the address of
// a non-static object at compile time is a fatal evaluator error, enforced
// by the evaluator before calling this constructor, not here (this package
// has no diagnostics dependency).
func NewPointer(t *types.Type, addr address.Address) Value {
	return Value{kind: Pointer, typ: t, ptrAddr: addr}
}

// NewArray constructs an Array value. Panics if len(elements) does not
// match t.Count() — §8's array-literal invariant.
func NewArray(t *types.Type, elements []Value) Value {
	if uint64(len(elements)) != t.Count() {
		panic(fmt.Sprintf("value: array literal has %d elements, type %s declares %d", len(elements), t, t.Count()))
	}
	return Value{kind: Array, typ: t, elems: append([]Value(nil), elements...)}
}

// NewStruct constructs a Struct value, one Value per member variable in
// declaration order. Panics if len(elements) does not match the number of
// member variables t declares.
func NewStruct(t *types.Type, elements []Value) Value {
	if len(elements) != len(t.Members()) {
		panic(fmt.Sprintf("value: struct literal has %d fields, type %s declares %d", len(elements), t, len(t.Members())))
	}
	return Value{kind: Struct, typ: t, elems: append([]Value(nil), elements...)}
}

// NewSlice constructs a Slice value pairing a Pointer value with a usize
// Integer count value.
func NewSlice(t *types.Type, pointer, count Value) Value {
	if pointer.kind != Pointer {
		panic("value: slice pointer component is not a Pointer value")
	}
	if count.kind != Integer {
		panic("value: slice count component is not an Integer value")
	}
	p, c := pointer, count
	return Value{kind: Slice, typ: t, slicePtr: &p, sliceCount: &c}
}

// Clone returns a deep copy, used wherever the spec calls for a
// "deep-cloned" value (array indexing, ellipsis fill in array literals).
func (v Value) Clone() Value {
	cl := v
	if v.i != nil {
		cl.i = new(big.Int).Set(v.i)
	}
	if v.elems != nil {
		cl.elems = make([]Value, len(v.elems))
		for i, e := range v.elems {
			cl.elems[i] = e.Clone()
		}
	}
	if v.slicePtr != nil {
		p := v.slicePtr.Clone()
		cl.slicePtr = &p
	}
	if v.sliceCount != nil {
		c := v.sliceCount.Clone()
		cl.sliceCount = &c
	}
	return cl
}

// Equal implements structural "==" for the subset of Value variants the
// evaluator's `==`/`!=` operators accept (§4.3: booleans, bytes, integers,
// and — per §9 — the structural fallback for Pointer equality via Address).
// Arrays/slices compare element-wise; Function values compare by whether
// they denote the same underlying function.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Boolean:
		return a.b == b.b
	case Byte:
		return a.by == b.by
	case Integer:
		return a.i.Cmp(b.i) == 0
	case Pointer:
		return a.ptrAddr.Equal(b.ptrAddr)
	case Function:
		return a.fn == b.fn
	case Array, Struct:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case Slice:
		return Equal(*a.slicePtr, *b.slicePtr) && Equal(*a.sliceCount, *b.sliceCount)
	default:
		return false
	}
}

// ErrNotOrdered is returned by Compare when the operands' kind does not
// support ordered comparison at compile time (§9: "ordered comparison of
// Pointer values [is] a fatal error"; the same holds for aggregates).
var ErrNotOrdered = fmt.Errorf("value: operands do not support ordered comparison")

// Compare implements "<"/"<="/">"/">=" for bool, byte, and integer values
// (§4.3). false < true for booleans (the only ordering that makes `<` a
// total order on bool meaningful for range-style generated code).
func Compare(a, b Value) (int, error) {
	if a.kind != b.kind {
		return 0, ErrNotOrdered
	}
	switch a.kind {
	case Boolean:
		if a.b == b.b {
			return 0, nil
		}
		if !a.b && b.b {
			return -1, nil
		}
		return 1, nil
	case Byte:
		switch {
		case a.by < b.by:
			return -1, nil
		case a.by > b.by:
			return 1, nil
		default:
			return 0, nil
		}
	case Integer:
		return a.i.Cmp(b.i), nil
	default:
		return 0, ErrNotOrdered
	}
}
