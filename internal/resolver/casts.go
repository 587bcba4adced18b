package resolver

import (
	"fmt"
	"math/big"

	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/types"
)

// implicitCast implements §4.4 "Implicit shallow casts": at most one
// value-preserving cast is ever inserted automatically, covering untyped
// integer literals widening into a sized integer or byte type, and a
// pointer-to-concrete widening into a pointer-to-any. Returns the
// (possibly rewrapped) expression, or an error if no implicit cast
// applies — callers report that error at their own call site, since the
// wording differs by context (variable initializer, call argument,
// binary operand, return value, ...).
func (r *Resolver) implicitCast(e tir.Expr, want *types.Type) (tir.Expr, error) {
	if e.Type().Equal(want) {
		return e, nil
	}

	if e.Type().IsUnsized() {
		lit, ok := e.(*tir.IntegerLit)
		if !ok {
			return nil, fmt.Errorf("internal: unsized-typed expression is not an integer literal")
		}
		if want.IsByte() {
			if !fitsRange(lit.Value, big.NewInt(0), big.NewInt(255)) {
				return nil, fmt.Errorf("%s does not fit in byte", lit.Value)
			}
			return tir.NewIntegerLit(e.Pos(), want, lit.Value), nil
		}
		if want.IsInteger() && !want.IsUnsized() {
			if !fitsRange(lit.Value, want.IntMin(), want.IntMax()) {
				return nil, fmt.Errorf("%s does not fit in %s", lit.Value, want)
			}
			return tir.NewIntegerLit(e.Pos(), want, lit.Value), nil
		}
		return nil, fmt.Errorf("cannot implicitly cast an untyped integer to %s", want)
	}

	if e.Type().IsPointer() && want.IsPointer() && want.Base().IsAny() && !e.Type().Base().IsAny() {
		return tir.NewCast(e.Pos(), want, e), nil
	}

	return nil, fmt.Errorf("cannot implicitly cast %s to %s", e.Type(), want)
}

func fitsRange(n, min, max *big.Int) bool {
	return n.Cmp(min) >= 0 && n.Cmp(max) <= 0
}

// mustImplicitCast applies implicitCast and reports a fatal diagnostic
// through context if it fails.
func (r *Resolver) mustImplicitCast(e tir.Expr, want *types.Type, context string) tir.Expr {
	out, err := r.implicitCast(e, want)
	if err != nil {
		r.Sink.Fatal(e.Pos(), "%s: %s", context, err)
	}
	return out
}

// unifyOperands implements the binary-operator typing rule shared by
// arithmetic, bitwise, relational, and equality operators: the operands
// must already match, or one must implicitly cast to the other's type.
func (r *Resolver) unifyOperands(lhs, rhs tir.Expr, context string) (tir.Expr, tir.Expr, *types.Type) {
	if lhs.Type().Equal(rhs.Type()) {
		return lhs, rhs, lhs.Type()
	}
	if cast, err := r.implicitCast(rhs, lhs.Type()); err == nil {
		return lhs, cast, lhs.Type()
	}
	if cast, err := r.implicitCast(lhs, rhs.Type()); err == nil {
		return cast, rhs, rhs.Type()
	}
	r.Sink.Fatal(lhs.Pos(), "%s: mismatched operand types %s and %s", context, lhs.Type(), rhs.Type())
	return nil, nil, nil
}
