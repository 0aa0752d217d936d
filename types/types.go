package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Type is the parent interface for all IDL value types.
type Type interface {
	// Repr returns a representative string of the type for purposes of error
	// reporting.
	Repr() string

	// equals is the internal, type-specific implementation of Equals.  It
	// should never be called directly except by Equals.
	equals(Type) bool
}

// Equals returns whether two types are exactly equal.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.equals(b)
}

// -----------------------------------------------------------------------------

// BoolType represents the Boolean type.
type BoolType struct{}

func (bt BoolType) Repr() string { return "Boolean" }

func (bt BoolType) equals(other Type) bool {
	_, ok := other.(BoolType)
	return ok
}

// StringType represents the String type.
type StringType struct{}

func (st StringType) Repr() string { return "String" }

func (st StringType) equals(other Type) bool {
	_, ok := other.(StringType)
	return ok
}

// -----------------------------------------------------------------------------

// BitsType represents a fixed-width bit vector.  The width is always fully
// resolved by the time the type is constructed: width expressions tied to
// configuration parameters (eg. `Bits<XLEN>`) are constant-folded during
// freezing before the type is built.
type BitsType struct {
	// The width of the vector in bits.  Always > 0 for a valid type.
	Width int

	// Whether the vector is interpreted as two's complement signed.
	Signed bool
}

func (bt *BitsType) Repr() string {
	if bt.Signed {
		return fmt.Sprintf("SignedBits<%d>", bt.Width)
	}

	return fmt.Sprintf("Bits<%d>", bt.Width)
}

func (bt *BitsType) equals(other Type) bool {
	if obt, ok := other.(*BitsType); ok {
		return bt.Width == obt.Width && bt.Signed == obt.Signed
	}

	return false
}

// -----------------------------------------------------------------------------

// ArrayType represents a fixed-length array.
type ArrayType struct {
	// The element type of the array.
	Elem Type

	// The number of elements.
	Len int
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("%s[%d]", at.Elem.Repr(), at.Len)
}

func (at *ArrayType) equals(other Type) bool {
	if oat, ok := other.(*ArrayType); ok {
		return at.Len == oat.Len && Equals(at.Elem, oat.Elem)
	}

	return false
}

// -----------------------------------------------------------------------------

// EnumType represents a closed, ordered set of named integer values.  Two
// enum types are equal only if they are the same declaration: enums are never
// silently interchangeable with unrelated enums.
type EnumType struct {
	// The declared name of the enumeration.
	Name string

	// The member names in declaration order.
	Members []string

	// The member values, parallel to Members.
	Values []*big.Int
}

func (et *EnumType) Repr() string { return et.Name }

func (et *EnumType) equals(other Type) bool {
	if oet, ok := other.(*EnumType); ok {
		return et == oet
	}

	return false
}

// MemberValue returns the value of the named member and whether it exists.
func (et *EnumType) MemberValue(name string) (*big.Int, bool) {
	for i, m := range et.Members {
		if m == name {
			return et.Values[i], true
		}
	}

	return nil, false
}

// BackingWidth returns the width of the bit vector backing the enum: the
// minimum width that can represent its largest member value.
func (et *EnumType) BackingWidth() int {
	width := 1
	for _, v := range et.Values {
		if w := v.BitLen(); w > width {
			width = w
		}
	}

	return width
}

// -----------------------------------------------------------------------------

// BitfieldField is a single named bit range within a bitfield.  Hi and Lo are
// inclusive bit positions with Hi >= Lo.
type BitfieldField struct {
	Name   string
	Hi, Lo int
}

// Width returns the width of the field in bits.
func (bf BitfieldField) Width() int { return bf.Hi - bf.Lo + 1 }

// BitfieldType represents a fixed-width vector subdivided into named bit
// ranges.
type BitfieldType struct {
	// The declared name of the bitfield.
	Name string

	// The total width of the bitfield in bits.
	Width int

	// The named bit ranges.
	Fields []BitfieldField
}

func (bt *BitfieldType) Repr() string { return bt.Name }

func (bt *BitfieldType) equals(other Type) bool {
	if obt, ok := other.(*BitfieldType); ok {
		return bt == obt
	}

	return false
}

// Field returns the named field and whether it exists.
func (bt *BitfieldType) Field(name string) (BitfieldField, bool) {
	for _, f := range bt.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return BitfieldField{}, false
}

// -----------------------------------------------------------------------------

// StructField is a single typed field within a struct type.
type StructField struct {
	Name string
	Type Type
}

// StructType represents a named aggregate of typed fields.
type StructType struct {
	// The declared name of the struct.
	Name string

	// Fields enumerates the fields of the struct in order.
	Fields []StructField
}

func (st *StructType) Repr() string { return st.Name }

func (st *StructType) equals(other Type) bool {
	if ost, ok := other.(*StructType); ok {
		return st == ost
	}

	return false
}

// Field returns the named field and whether it exists.
func (st *StructType) Field(name string) (StructField, bool) {
	for _, f := range st.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return StructField{}, false
}

// -----------------------------------------------------------------------------

// FuncParam is a single parameter of a function type.
type FuncParam struct {
	Name string
	Type Type
}

// FuncType represents a function signature.  Return is nil for functions
// that return nothing.
type FuncType struct {
	Params []FuncParam
	Return Type
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}

	sb.WriteRune('(')

	for i, param := range ft.Params {
		sb.WriteString(param.Type.Repr())

		if i < len(ft.Params)-1 {
			sb.WriteString(", ")
		}
	}

	sb.WriteString(") -> ")

	if ft.Return == nil {
		sb.WriteString("void")
	} else {
		sb.WriteString(ft.Return.Repr())
	}

	return sb.String()
}

func (ft *FuncType) equals(other Type) bool {
	oft, ok := other.(*FuncType)
	if !ok || len(ft.Params) != len(oft.Params) {
		return false
	}

	for i, param := range ft.Params {
		if !Equals(param.Type, oft.Params[i].Type) {
			return false
		}
	}

	return Equals(ft.Return, oft.Return)
}
