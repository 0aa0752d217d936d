package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Value is a compile-time-known value attached to a constant, a configuration
// parameter, or a folded expression.  Bit-vector values are held as exact
// arbitrary-precision integers: constant arithmetic is never truncated to an
// operand width, only checked for fit (or truncated) at the point it flows
// into a fixed-width destination.
type Value interface {
	// String renders the value for diagnostics.
	String() string

	// Clone produces an independent copy of the value.
	Clone() Value
}

// IntValue is an integer (bit vector) value.
type IntValue struct {
	V *big.Int
}

// NewIntValue wraps a big integer as a value.
func NewIntValue(v *big.Int) IntValue { return IntValue{V: v} }

// NewInt64Value wraps an int64 as a value.
func NewInt64Value(v int64) IntValue { return IntValue{V: big.NewInt(v)} }

func (iv IntValue) String() string { return iv.V.String() }

func (iv IntValue) Clone() Value { return IntValue{V: new(big.Int).Set(iv.V)} }

// BoolValue is a boolean value.
type BoolValue bool

func (bv BoolValue) String() string { return fmt.Sprint(bool(bv)) }

func (bv BoolValue) Clone() Value { return bv }

// StringValue is a string value.
type StringValue string

func (sv StringValue) String() string { return fmt.Sprintf("%q", string(sv)) }

func (sv StringValue) Clone() Value { return sv }

// ArrayValue is an array of values.
type ArrayValue []Value

func (av ArrayValue) String() string {
	sb := strings.Builder{}
	sb.WriteRune('[')

	for i, v := range av {
		sb.WriteString(v.String())

		if i < len(av)-1 {
			sb.WriteString(", ")
		}
	}

	sb.WriteRune(']')
	return sb.String()
}

func (av ArrayValue) Clone() Value {
	clone := make(ArrayValue, len(av))
	for i, v := range av {
		clone[i] = v.Clone()
	}

	return clone
}

// -----------------------------------------------------------------------------

// Reserved sentinel values meaning "any value is architecturally legal here,
// left unspecified".  They are seeded into every symbol table and rendered
// symbolically (never numerically) by the documentation passes.
var (
	UndefinedLegal              = big.NewInt(0x1ADACEFA)
	UndefinedLegalDeterministic = big.NewInt(0x1ADACEFB)
)
