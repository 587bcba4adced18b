package value

import "math/big"

// mask returns a big.Int holding width 1-bits: 2^width - 1. width == 0
// yields 0, used for byte/integer types with UnsizedWidth never reaching
// here (callers only call these helpers for sized source/destination
// types, per §4.3's cast rule applying to "any fixed-width integer").
func mask(width uint64) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

// truncateBits returns the low width bits of n's two's-complement
// representation as an unsigned value in [0, 2^width). math/big's bitwise
// operators treat negative operands as infinite two's-complement, so a
// plain bitwise AND against the width-bit mask is exactly the serialize
// step §4.3 describes ("source value is serialized to a bit array of
// source size").
func truncateBits(n *big.Int, width uint64) *big.Int {
	return new(big.Int).And(n, mask(width))
}

// extendBits widens a raw (unsigned, width-bit) bit pattern to destWidth
// bits, sign-extending when srcSigned is true and the pattern's top bit is
// set, zero-extending otherwise. destWidth must be >= width.
func extendBits(raw *big.Int, width, destWidth uint64, srcSigned bool) *big.Int {
	if destWidth == width {
		return new(big.Int).Set(raw)
	}
	topBit := new(big.Int).Rsh(raw, uint(width-1))
	if srcSigned && topBit.Bit(0) == 1 {
		fill := new(big.Int).Sub(mask(destWidth), mask(width))
		return new(big.Int).Add(raw, fill)
	}
	return new(big.Int).Set(raw)
}

// reinterpretSigned maps an unsigned width-bit pattern to its signed
// two's-complement value when signed is true, otherwise returns it
// unchanged.
func reinterpretSigned(raw *big.Int, width uint64, signed bool) *big.Int {
	if !signed {
		return new(big.Int).Set(raw)
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	if raw.Cmp(half) < 0 {
		return new(big.Int).Set(raw)
	}
	full := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return new(big.Int).Sub(raw, full)
}

// ReinterpretWidth implements the general bit-array cast rule of §4.3:
// serialize n (an instance of a srcWidth-bit, srcSigned source) to its raw
// bit pattern, extend or truncate to destWidth bits, then reinterpret the
// result as signed iff destSigned. Used directly by explicit integer casts
// and, with destWidth fixed at 8 (unsigned), by the "to byte" cast rule;
// the "to bool" cast rule tests the source for non-zero instead.
func ReinterpretWidth(n *big.Int, srcWidth uint64, srcSigned bool, destWidth uint64, destSigned bool) *big.Int {
	raw := truncateBits(n, srcWidth)
	if destWidth > srcWidth {
		raw = extendBits(raw, srcWidth, destWidth, srcSigned)
	} else {
		raw = truncateBits(raw, destWidth)
	}
	return reinterpretSigned(raw, destWidth, destSigned)
}

// BitwiseNot inverts the low width bits of n and reinterprets per signed
// (§4.3 unary `~`: "serializes to a bit array of the type's width, inverts
// it, and reassembles").
func BitwiseNot(n *big.Int, width uint64, signed bool) *big.Int {
	raw := truncateBits(n, width)
	inv := new(big.Int).Xor(raw, mask(width))
	return reinterpretSigned(inv, width, signed)
}

// bitwiseBinary applies op to the width-bit serializations of a and b and
// reinterprets the result per signed, backing the `|`, `^`, `&` binary
// operators on same-typed integer operands (§4.3).
func bitwiseBinary(a, b *big.Int, width uint64, signed bool, op func(z, x, y *big.Int) *big.Int) *big.Int {
	ra := truncateBits(a, width)
	rb := truncateBits(b, width)
	raw := op(new(big.Int), ra, rb)
	raw.And(raw, mask(width))
	return reinterpretSigned(raw, width, signed)
}

func BitwiseOr(a, b *big.Int, width uint64, signed bool) *big.Int {
	return bitwiseBinary(a, b, width, signed, (*big.Int).Or)
}

func BitwiseXor(a, b *big.Int, width uint64, signed bool) *big.Int {
	return bitwiseBinary(a, b, width, signed, (*big.Int).Xor)
}

func BitwiseAnd(a, b *big.Int, width uint64, signed bool) *big.Int {
	return bitwiseBinary(a, b, width, signed, (*big.Int).And)
}
