// Package address defines the two concrete locations a symbol's storage can
// resolve to (§3 "Address"). It has no dependencies so that both
// internal/symbols and internal/value can depend on it without a cycle.
package address

import "fmt"

// Kind distinguishes the two Address variants.
type Kind int

const (
	Static Kind = iota
	Local
)

// Address is either a Static label+offset (resolved by the assembler) or a
// Local rbp-relative offset (resolved by the function prologue).
type Address struct {
	Kind Kind

	// Static
	Label  string
	Offset uint64

	// Local
	RBPOffset int32
}

// NewStatic builds a Static address.
func NewStatic(label string, offset uint64) Address {
	return Address{Kind: Static, Label: label, Offset: offset}
}

// NewLocal builds a Local address.
func NewLocal(rbpOffset int32) Address {
	return Address{Kind: Local, RBPOffset: rbpOffset}
}

// Rebase returns a new Static address offset by delta bytes. Panics if
// called on a Local address — callers must check Kind first; rebasing a
// frame-relative address by a runtime-dependent delta is a code generation
// concern, not a compile-time one.
func (a Address) Rebase(delta uint64) Address {
	if a.Kind != Static {
		panic("address: Rebase on non-Static address")
	}
	return Address{Kind: Static, Label: a.Label, Offset: a.Offset + delta}
}

func (a Address) String() string {
	switch a.Kind {
	case Static:
		if a.Offset == 0 {
			return a.Label
		}
		return fmt.Sprintf("%s+%d", a.Label, a.Offset)
	case Local:
		return fmt.Sprintf("rbp%+d", a.RBPOffset)
	default:
		return "<invalid-address>"
	}
}

// Equal reports structural equality, used by the evaluator's "=="/"!=" on
// Pointer values (§4.3).
func (a Address) Equal(b Address) bool {
	return a == b
}
