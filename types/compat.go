package types

import "math/big"

// MinWidth returns the minimum number of bits needed to represent the given
// non-negative value as an unsigned vector.  Zero still occupies one bit.
func MinWidth(v *big.Int) int {
	if w := v.BitLen(); w > 0 {
		return w
	}

	return 1
}

// FitsIn reports whether the exact value v fits in a vector of the given
// width and signedness.  For signed vectors the legal range is
// [-2^(width-1), 2^(width-1)-1]; for unsigned vectors it is [0, 2^width-1].
func FitsIn(v *big.Int, width int, signed bool) bool {
	if width <= 0 {
		return false
	}

	if signed {
		lo := new(big.Int).Lsh(big.NewInt(-1), uint(width-1))
		hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width-1)), big.NewInt(1))
		return v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0
	}

	if v.Sign() < 0 {
		return false
	}

	return v.BitLen() <= width
}

// Truncate narrows v to the given width, keeping the low bits, mirroring a
// hardware bus narrowing.  For signed destinations the kept bits are
// reinterpreted as two's complement.
func Truncate(v *big.Int, width int, signed bool) *big.Int {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1))
	out := new(big.Int).And(v, mask)

	if signed && out.Bit(width-1) == 1 {
		out.Sub(out, new(big.Int).Lsh(big.NewInt(1), uint(width)))
	}

	return out
}

// -----------------------------------------------------------------------------

// Reconcile combines two bit-vector operand types into the type of an
// arithmetic result: the wider of the two widths, signed only when both
// operands are signed.
func Reconcile(a, b *BitsType) *BitsType {
	width := a.Width
	if b.Width > width {
		width = b.Width
	}

	return &BitsType{Width: width, Signed: a.Signed && b.Signed}
}

// OperandBits returns the bit-vector view of a type used as an arithmetic
// operand, or nil if the type has no such view.  Enums participate in integer
// contexts at their backing width; bitfields at their declared width.
func OperandBits(t Type) *BitsType {
	switch v := t.(type) {
	case *BitsType:
		return v
	case *EnumType:
		return &BitsType{Width: v.BackingWidth()}
	case *BitfieldType:
		return &BitsType{Width: v.Width}
	default:
		return nil
	}
}

// Assignable reports whether a source type can flow into a fixed destination
// type under the project's widening/truncation rule.  It answers the
// non-constant case only: narrowing is allowed (the value truncates at
// runtime).  Constant sources are instead checked for exact fit by the
// caller, which has the folded value in hand.
func Assignable(dest, src Type) bool {
	if Equals(dest, src) {
		return true
	}

	// Enums assign only to themselves or to integer destinations.
	if _, ok := src.(*EnumType); ok {
		_, destIsBits := dest.(*BitsType)
		return destIsBits
	}

	db, sb := OperandBits(dest), OperandBits(src)
	if db != nil && sb != nil {
		return true
	}

	return false
}
