// Package symbols implements the lexically nested, freezable symbol tables
// of §4.2: an ordered map from name to Symbol plus a parent pointer, with a
// mutable -> frozen lifecycle.
package symbols

import (
	"github.com/sunder-lang/sunderc/internal/address"
	"github.com/sunder-lang/sunderc/internal/token"
	"github.com/sunder-lang/sunderc/internal/types"
	"github.com/sunder-lang/sunderc/internal/value"
)

// Kind tags which of the six symbol forms §3 enumerates a Symbol is.
type Kind int

const (
	KindType Kind = iota
	KindVariable
	KindConstant
	KindFunction
	KindNamespace
	KindTemplate
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	case KindFunction:
		return "function"
	case KindNamespace:
		return "namespace"
	case KindTemplate:
		return "template"
	default:
		return "<invalid-kind>"
	}
}

// Template carries the memoized-instantiation state a Template symbol owns
// (§4.4 "Templates"): the original declaration CST, the static-address
// prefix instantiations are resolved under, the symbol table instantiations
// capture over, and a memo table keyed by canonicalized instantiation name
// (e.g. "box[[u32]]").
type Template struct {
	CST           interface{} // *ast.FuncDecl or *ast.StructDecl
	CapturePrefix string
	ParentTable   *SymbolTable
	Memo          map[string]*Symbol
}

// Symbol is a tagged record over Kind, carrying name, declaration location,
// and — for Variable/Constant/Function — a Type, an optional Address, and
// an optional frozen compile-time Value (§3 "Symbol").
type Symbol struct {
	Name string
	Kind Kind
	Pos  token.Position

	Type *types.Type

	// Variable/Constant/Function only. Addr is nil until storage is
	// reserved (globals/functions get one immediately; locals may defer
	// until the enclosing block resolves). Value is nil unless this
	// symbol's initializer has been constant-evaluated and frozen
	// (non-extern globals and every constant always have one; extern
	// globals and locals never do).
	Addr  *address.Address
	Value *value.Value

	// Namespace only: the inner table holding the namespace's members.
	Namespace *SymbolTable

	// Template only.
	Template *Template
}

// FunctionRefMarker makes *Symbol satisfy value.FunctionRef, so a Function
// value can carry a pointer back to the symbol that denotes it (§4.4
// "Create a Function with value pointing to itself") without
// internal/value importing internal/symbols.
func (s *Symbol) FunctionRefMarker() {}

// MemberTableMarker makes *SymbolTable satisfy types.MemberTable, so a
// struct Type's member_symbol_table (§3) can be a *SymbolTable without
// internal/types importing internal/symbols.
func (t *SymbolTable) MemberTableMarker() {}

// AsTable recovers the concrete *SymbolTable from a types.MemberTable,
// panicking if mt was not produced by this package — an internal
// consistency error, since every MemberTable the resolver ever constructs
// comes from New in this package.
func AsTable(mt types.MemberTable) *SymbolTable {
	t, ok := mt.(*SymbolTable)
	if !ok {
		panic("symbols: MemberTable was not produced by internal/symbols")
	}
	return t
}
