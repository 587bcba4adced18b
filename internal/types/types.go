// Package types implements the canonical (interned) Type representation and
// registry (spec §3, §4.1). Every Type is constructed through a
// type_unique_* function; two types with the same canonical name are
// always the same *Type pointer, so type equality reduces to pointer
// equality — the invariant the rest of the front-end relies on.
package types

import (
	"fmt"
	"math/big"
	"strings"
	"sync"
)

// Kind tags which variant a Type is.
type Kind int

const (
	Void Kind = iota
	Bool
	Byte
	Integer
	Pointer
	Slice
	Array
	Function
	Struct
	Any
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "Void"
	case Bool:
		return "Bool"
	case Byte:
		return "Byte"
	case Integer:
		return "Integer"
	case Pointer:
		return "Pointer"
	case Slice:
		return "Slice"
	case Array:
		return "Array"
	case Function:
		return "Function"
	case Struct:
		return "Struct"
	case Any:
		return "Any"
	default:
		return "Unknown"
	}
}

// UnsizedWidth marks the distinguished unsized-integer variant (§3).
const UnsizedWidth = ^uint64(0)

// Member is one ordered (name, type, byte-offset) entry in a completed
// struct's member-variable list (§3 "Struct").
type Member struct {
	Name   string
	Type   *Type
	Offset uint64
}

// MemberTable is the opaque handle to a struct's inner symbol table (for
// member constants/functions/templates). It is declared as an interface
// here, rather than importing internal/symbols directly, to avoid a
// types<->symbols import cycle — internal/symbols already needs to embed
// *Type in every Symbol. internal/symbols supplies the concrete
// implementation and the accessor that type-asserts it back.
type MemberTable interface {
	// MemberTableMarker exists solely so MemberTable cannot be satisfied
	// by accident by an unrelated type.
	MemberTableMarker()
}

// Type is a tagged record over the variants listed in §3. All fields not
// relevant to Kind are zero. Construct instances only through the
// Registry's type_unique_* methods — never with a struct literal outside
// this package — so canonicalization cannot be bypassed.
type Type struct {
	kind      Kind
	name      string // canonical name; the registry key
	size      uint64
	align     uint64

	// Integer
	intMin    *big.Int
	intMax    *big.Int
	intSigned bool
	intWidth  uint64 // 8, 16, 32, 64, or pointer-width; UnsizedWidth for unsized

	// Pointer / Slice
	base *Type

	// Array
	count uint64

	// Function
	params []*Type
	ret    *Type

	// Struct
	structName string
	members    []Member
	complete   bool
	memberTbl  MemberTable
}

func (t *Type) Kind() Kind        { return t.kind }
func (t *Type) String() string    { return t.name }
func (t *Type) Size() uint64      { return t.size }
func (t *Type) Align() uint64     { return t.align }

// --- Integer accessors ---

func (t *Type) IntMin() *big.Int   { return t.intMin }
func (t *Type) IntMax() *big.Int   { return t.intMax }
func (t *Type) IsSigned() bool     { return t.intSigned }
func (t *Type) IntWidth() uint64   { return t.intWidth }
func (t *Type) IsUnsized() bool    { return t.kind == Integer && t.intWidth == UnsizedWidth }

// --- Pointer / Slice / Array accessors ---

func (t *Type) Base() *Type  { return t.base }
func (t *Type) Count() uint64 { return t.count }

// --- Function accessors ---

func (t *Type) Params() []*Type { return t.params }
func (t *Type) Return() *Type   { return t.ret }

// --- Struct accessors ---

func (t *Type) StructName() string    { return t.structName }
func (t *Type) Members() []Member     { return t.members }
func (t *Type) IsComplete() bool      { return t.kind != Struct || t.complete }
func (t *Type) MemberTable() MemberTable { return t.memberTbl }

// FindMember returns the member variable with the given name, if any.
func (t *Type) FindMember(name string) (Member, bool) {
	for _, m := range t.members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// IsInteger, IsScalar etc. are convenience predicates used throughout the
// resolver/evaluator.
func (t *Type) IsInteger() bool { return t.kind == Integer }
func (t *Type) IsPointer() bool { return t.kind == Pointer }
func (t *Type) IsSlice() bool   { return t.kind == Slice }
func (t *Type) IsArray() bool   { return t.kind == Array }
func (t *Type) IsStruct() bool  { return t.kind == Struct }
func (t *Type) IsFunction() bool { return t.kind == Function }
func (t *Type) IsAny() bool     { return t.kind == Any }
func (t *Type) IsVoid() bool    { return t.kind == Void }
func (t *Type) IsBool() bool    { return t.kind == Bool }
func (t *Type) IsByte() bool    { return t.kind == Byte }

// Equal reports whether two types are the same canonical type. Since all
// Types are interned, this is pointer equality — Equal exists only so call
// sites read clearly and so a future non-interned corner case (there are
// none by design) would fail loudly rather than silently.
func (t *Type) Equal(other *Type) bool {
	return t == other
}

// Registry constructs and canonicalizes Types by their String() name
// (§4.1). One Registry exists per compilation (§5 "singleton
// collaborators"); the driver owns it and threads it through the resolver.
type Registry struct {
	mu    sync.Mutex
	byName map[string]*Type

	voidT *Type
	boolT *Type
	byteT *Type
	anyT  *Type
	unsizedT *Type

	// sized integer types, keyed by "u8","s8",...,"u64","s64","usize","ssize"
	ints map[string]*Type
}

// PointerWidth is the target's machine pointer width in bits, fixed at 64
// for the x86-64 back-end this front-end feeds (§1).
const PointerWidth = 64

// NewRegistry builds a Registry with all scalar and fixed-width integer
// types pre-registered, matching §4.1's "bounds computed once at
// initialization for each width".
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]*Type),
		ints:   make(map[string]*Type),
	}
	r.voidT = r.publish(&Type{kind: Void, name: "void", size: 0, align: 1})
	r.boolT = r.publish(&Type{kind: Bool, name: "bool", size: 1, align: 1})
	r.byteT = r.publish(&Type{kind: Byte, name: "byte", size: 1, align: 1})
	r.anyT = r.publish(&Type{kind: Any, name: "any", size: 0, align: 1})
	r.unsizedT = r.publish(makeIntegerType("integer", UnsizedWidth, true))

	for _, width := range []uint64{8, 16, 32, 64} {
		r.registerIntPair(width)
	}
	r.registerSizeIntPair()
	return r
}

func (r *Registry) registerIntPair(width uint64) {
	u := fmt.Sprintf("u%d", width)
	s := fmt.Sprintf("s%d", width)
	r.ints[u] = r.publish(makeIntegerType(u, width, false))
	r.ints[s] = r.publish(makeIntegerType(s, width, true))
}

func (r *Registry) registerSizeIntPair() {
	r.ints["usize"] = r.publish(makeIntegerType("usize", PointerWidth, false))
	r.ints["ssize"] = r.publish(makeIntegerType("ssize", PointerWidth, true))
}

func makeIntegerType(name string, width uint64, signed bool) *Type {
	t := &Type{kind: Integer, name: name, intWidth: width, intSigned: signed}
	if width == UnsizedWidth {
		// Unsized integer literals are losslessly arbitrary precision
		// until a context requires a sized type; bounds are unconstrained.
		t.size = UnsizedWidth
		t.align = 0
		t.intMin = nil
		t.intMax = nil
		return t
	}
	t.size = width / 8
	t.align = t.size
	if signed {
		// [-2^(width-1), 2^(width-1)-1]
		max := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
		min := new(big.Int).Neg(max)
		t.intMax = new(big.Int).Sub(max, big.NewInt(1))
		t.intMin = min
	} else {
		max := new(big.Int).Lsh(big.NewInt(1), uint(width))
		t.intMax = new(big.Int).Sub(max, big.NewInt(1))
		t.intMin = big.NewInt(0)
	}
	return t
}

// publish registers t under its canonical name unconditionally. Used only
// for the built-in scalars/integers at Registry construction, where the
// name is known not to collide.
func (r *Registry) publish(t *Type) *Type {
	r.byName[t.name] = t
	return t
}

// probe returns the existing type for name if already registered, else nil.
func (r *Registry) probe(name string) *Type {
	if t, ok := r.byName[name]; ok {
		return t
	}
	return nil
}

// Void, Bool, Byte, Any, UnsizedInteger return the singleton scalar types.
func (r *Registry) VoidType() *Type     { return r.voidT }
func (r *Registry) BoolType() *Type     { return r.boolT }
func (r *Registry) ByteType() *Type     { return r.byteT }
func (r *Registry) AnyType() *Type      { return r.anyT }
func (r *Registry) UnsizedInteger() *Type { return r.unsizedT }

// IntegerType returns a pre-registered fixed-width integer type by name
// ("u8".."u64","s8".."s64","usize","ssize"). Panics on an unknown name —
// these are a closed set fixed by §3, so an unknown name is a resolver bug.
func (r *Registry) IntegerType(name string) *Type {
	t, ok := r.ints[name]
	if !ok {
		panic("types: unknown integer type name " + name)
	}
	return t
}

// UniquePointer returns (creating if necessary) the canonical `*base` type.
func (r *Registry) UniquePointer(base *Type) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := "*" + base.name
	if t := r.probe(name); t != nil {
		return t
	}
	t := &Type{kind: Pointer, name: name, base: base, size: 8, align: 8}
	return r.publish(t)
}

// UniqueSlice returns (creating if necessary) the canonical `[]base` type.
func (r *Registry) UniqueSlice(base *Type) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := "[]" + base.name
	if t := r.probe(name); t != nil {
		return t
	}
	// Laid out as (pointer, count): 8 + 8 bytes, 8-byte aligned (§3).
	t := &Type{kind: Slice, name: name, base: base, size: 16, align: 8}
	return r.publish(t)
}

// UniqueArray returns (creating if necessary) the canonical `[count]base`
// type.
func (r *Registry) UniqueArray(count uint64, base *Type) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := fmt.Sprintf("[%d]%s", count, base.name)
	if t := r.probe(name); t != nil {
		return t
	}
	t := &Type{kind: Array, name: name, base: base, count: count, align: base.align, size: count * base.size}
	return r.publish(t)
}

// UniqueFunction returns (creating if necessary) the canonical
// `func(P1, P2) R` type. All parameter and return types must already be
// canonical (interned) types, per §4.1's "function types always print
// parameter and return types by their already-canonical names".
func (r *Registry) UniqueFunction(params []*Type, ret *Type) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.name
	}
	name := fmt.Sprintf("func(%s) %s", strings.Join(names, ", "), ret.name)
	if t := r.probe(name); t != nil {
		return t
	}
	t := &Type{kind: Function, name: name, params: append([]*Type(nil), params...), ret: ret, size: 8, align: 8}
	return r.publish(t)
}

// DeclareStruct returns (creating if necessary) an incomplete struct type
// named fullName (the normalized, prefix-qualified name, e.g. "shapes.Box"
// — see §4.4 "Static symbol naming"). Declaring the same name twice returns
// the same, still-possibly-incomplete, pointer — this is how forward
// references and self-referential members are supported (§9 "Cyclic
// references").
func (r *Registry) DeclareStruct(fullName string) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t := r.probe(fullName); t != nil {
		return t
	}
	t := &Type{kind: Struct, name: fullName, structName: fullName}
	return r.publish(t)
}

// CompleteStruct populates an incomplete struct's member-variable list,
// size, alignment, and inner member table. Panics if called twice on the
// same type, or on a non-struct — both are resolver-internal invariants,
// not user-facing errors (§7 "Internal invariants are asserted").
func (r *Registry) CompleteStruct(t *Type, members []Member, size, align uint64, tbl MemberTable) {
	if t.kind != Struct {
		panic("types: CompleteStruct on non-struct type " + t.name)
	}
	if t.complete {
		panic("types: struct already completed: " + t.name)
	}
	t.members = members
	t.size = size
	t.align = align
	t.memberTbl = tbl
	t.complete = true
}
