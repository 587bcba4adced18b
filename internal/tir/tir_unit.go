package tir

import (
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/types"
	"github.com/sunder-lang/sunderc/internal/value"
)

// StaticSymbol is one entry of the back-end contract's static-symbol list
// (§6): a canonical label name and a frozen Value, or nil Value for an
// extern declaration with no compile-time initializer.
type StaticSymbol struct {
	Label string
	Type  *types.Type
	Value *value.Value
}

// Function is one entry of the back-end contract's resolved-function list
// (§6): parameter symbols, the return type (there is no return-value
// symbol), the local-stack low-water mark, the outermost symbol table,
// and the resolved body.
type Function struct {
	Sym    *symbols.Symbol
	Params []*symbols.Symbol
	Return *types.Type

	// LocalStackLowWater is the lowest (most negative) rbp offset any
	// local in this function reached, extended as each local is resolved
	// (§4.4 "extending the enclosing function's low-water mark").
	LocalStackLowWater int32

	Table *symbols.SymbolTable
	Body  *Block
}

// Module is the resolver's output for a single compiled module: the
// functions it resolved and the static symbols it registered. A full
// compilation's back-end contract is the concatenation of every imported
// module's Module, deduplicated by Label (§8: "For any two static symbols
// registered in the same compilation, their canonical label names
// differ").
type Module struct {
	Path      string
	Functions []*Function
	Statics   []*StaticSymbol
}
