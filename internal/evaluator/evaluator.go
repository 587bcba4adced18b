// Package evaluator implements the compile-time constant-expression
// reducer of §4.3: pure reduction of TIR expressions to Values, enforcing
// compile-time legality (no pointer casts, no syscalls or impure calls, no
// slice indexing, no dereference).
package evaluator

import (
	"fmt"
	"math/big"

	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/token"
	"github.com/sunder-lang/sunderc/internal/types"
	"github.com/sunder-lang/sunderc/internal/value"
)

// Error is a located constant-evaluation failure. The evaluator itself
// does no I/O beyond formatting these (§4.3 "Failure model") — the
// resolver hands Error.Pos/Error() to the shared diagnostics.Sink.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

func errf(pos token.Position, format string, args ...interface{}) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Evaluator reduces TIR expressions to compile-time Values. It holds the
// type registry so it can construct the synthetic pointer/usize types
// that bytes literals and array/slice indexing arithmetic need.
type Evaluator struct {
	Reg *types.Registry
}

// New returns an Evaluator backed by reg.
func New(reg *types.Registry) *Evaluator {
	return &Evaluator{Reg: reg}
}

func (e *Evaluator) usize() *types.Type { return e.Reg.IntegerType("usize") }

func bigFromUint64(n uint64) *big.Int { return new(big.Int).SetUint64(n) }

// EvalRValue reduces expr to a Value, or fails with a source-located
// *Error (§4.3's r-value rules).
func (e *Evaluator) EvalRValue(expr tir.Expr) (value.Value, error) {
	switch n := expr.(type) {
	case *tir.Identifier:
		return e.evalIdentifier(n)
	case *tir.BoolLit:
		return value.NewBool(n.Type(), n.Value), nil
	case *tir.IntegerLit:
		return value.NewInteger(n.Type(), n.Value), nil
	case *tir.BytesLit:
		return e.evalBytesLit(n)
	case *tir.ArrayLit:
		return e.evalArrayLit(n)
	case *tir.SliceLit:
		return e.evalSliceLit(n)
	case *tir.Cast:
		return e.evalCast(n)
	case *tir.Index:
		return e.evalIndex(n)
	case *tir.SliceAccess:
		return e.evalSliceAccess(n)
	case *tir.Sizeof:
		return value.NewInteger(n.Type(), bigFromUint64(n.Operand.Size())), nil
	case *tir.Alignof:
		return value.NewInteger(n.Type(), bigFromUint64(n.Operand.Align())), nil
	case *tir.Unary:
		return e.evalUnary(n)
	case *tir.Binary:
		return e.evalBinary(n)
	case *tir.StructLit:
		return e.evalStructLit(n)
	case *tir.MemberAccess:
		return e.evalMemberAccess(n)
	case *tir.Call:
		return value.Value{}, errf(n.Pos(), "constant expression contains a call")
	case *tir.Syscall:
		return value.Value{}, errf(n.Pos(), "constant expression contains a syscall")
	case *tir.Deref:
		return value.Value{}, errf(n.Pos(), "constant expression dereferences a pointer")
	default:
		panic(fmt.Sprintf("evaluator: unhandled expression node %T", expr))
	}
}

// evalIdentifier implements §4.3 "Identifier: only Constant and Function
// symbols; any other kind fails".
func (e *Evaluator) evalIdentifier(n *tir.Identifier) (value.Value, error) {
	sym := n.Sym
	switch sym.Kind {
	case symbols.KindConstant, symbols.KindFunction:
		if sym.Value == nil {
			panic(fmt.Sprintf("evaluator: %s symbol %q has no frozen value", sym.Kind, sym.Name))
		}
		return *sym.Value, nil
	default:
		return value.Value{}, errf(n.Pos(), "identifier %q is not a constant", sym.Name)
	}
}

func (e *Evaluator) evalBytesLit(n *tir.BytesLit) (value.Value, error) {
	if n.Backing.Addr == nil {
		panic("evaluator: bytes literal backing symbol has no static address")
	}
	ptrType := e.Reg.UniquePointer(e.Reg.ByteType())
	ptr := value.NewPointer(ptrType, *n.Backing.Addr)
	count := value.NewInteger(e.usize(), bigFromUint64(n.Length))
	return value.NewSlice(n.Type(), ptr, count), nil
}

// evalArrayLit implements §4.3 "Literal array: each element is evaluated;
// if an ellipsis tail is present, the ellipsis expression is evaluated
// once and cloned into the remaining slots up to the array's declared
// count."
func (e *Evaluator) evalArrayLit(n *tir.ArrayLit) (value.Value, error) {
	base := n.Type().Base()
	count := n.Type().Count()
	elems := make([]value.Value, 0, count)

	for _, el := range n.Elements {
		if !el.IsEllipsis {
			v, err := e.EvalRValue(el.Value)
			if err != nil {
				return value.Value{}, err
			}
			elems = append(elems, v)
			continue
		}
		fill, err := e.EvalRValue(el.Value)
		if err != nil {
			return value.Value{}, err
		}
		for uint64(len(elems)) < count {
			elems = append(elems, fill.Clone())
		}
	}
	_ = base
	return value.NewArray(n.Type(), elems), nil
}

func (e *Evaluator) evalSliceLit(n *tir.SliceLit) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := e.EvalRValue(el)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}
	if n.Backing.Addr == nil {
		panic("evaluator: slice literal backing symbol has no static address")
	}
	base := n.Type().Base()
	ptrType := e.Reg.UniquePointer(base)
	ptr := value.NewPointer(ptrType, *n.Backing.Addr)
	count := value.NewInteger(e.usize(), bigFromUint64(uint64(len(elems))))
	return value.NewSlice(n.Type(), ptr, count), nil
}
