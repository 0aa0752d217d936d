package ast

import (
	"fmt"
	"math/big"
	"strings"
)

// IntLit is an integer (bit vector) literal.
type IntLit struct {
	ExprBase

	// Val is the exact literal value as parsed from the digits.
	Val *big.Int

	// Width is the declared width in bits.  Zero when the literal carries no
	// explicit width (see Sized/Unsized below).
	Width int

	// Sized is set for `N'...` literals with an explicit width.
	Sized bool

	// Unsized is set for `'...` literals whose width is the architecture's
	// register width.
	Unsized bool

	// Signed is set for `'s` literals.  Bare-digit literals are unsigned.
	Signed bool

	// Radix is one of 'b', 'o', 'd', 'h'.  Bare-digit literals are 'd'.
	Radix byte

	// Digits is the digit text as written, underscores included.
	Digits string
}

func (il *IntLit) Text() string {
	switch {
	case il.Sized:
		return fmt.Sprintf("%d'%s%c%s", il.Width, signMarker(il.Signed), il.Radix, il.Digits)
	case il.Unsized:
		return fmt.Sprintf("'%s%s", signMarker(il.Signed), il.Digits)
	default:
		return il.Digits
	}
}

func signMarker(signed bool) string {
	if signed {
		return "s"
	}

	return ""
}

// BoolLit is a boolean literal.
type BoolLit struct {
	ExprBase

	Val bool
}

func (bl *BoolLit) Text() string { return fmt.Sprint(bl.Val) }

// StringLit is a string literal.
type StringLit struct {
	ExprBase

	Val string
}

func (sl *StringLit) Text() string { return fmt.Sprintf("%q", sl.Val) }

// -----------------------------------------------------------------------------

// Ident is a reference to a named binding.  The name is resolved against the
// symbol table at type-check time; an unresolved name is a type error.
type Ident struct {
	ExprBase

	Name string

	// Decode is set during type checking when the name resolved to a decode
	// variable, for formatting in generated documentation.
	Decode bool
}

func (id *Ident) Text() string { return id.Name }

// -----------------------------------------------------------------------------

// BinaryExpr is a binary operator application.  Chains of same-precedence
// operators are built left-associatively by the parser.
type BinaryExpr struct {
	ExprBase

	Op       string
	Lhs, Rhs Expr
}

func (be *BinaryExpr) Text() string {
	return fmt.Sprintf("(%s %s %s)", be.Lhs.Text(), be.Op, be.Rhs.Text())
}

// UnaryExpr is a unary operator application.
type UnaryExpr struct {
	ExprBase

	Op      string
	Operand Expr
}

func (ue *UnaryExpr) Text() string {
	if _, ok := ue.Operand.(*BinaryExpr); ok {
		return fmt.Sprintf("%s%s", ue.Op, ue.Operand.Text())
	}

	switch ue.Operand.(type) {
	case *TernaryExpr:
		return fmt.Sprintf("%s(%s)", ue.Op, ue.Operand.Text())
	default:
		return fmt.Sprintf("%s%s", ue.Op, ue.Operand.Text())
	}
}

// TernaryExpr is a conditional expression `cond ? then : else`.
type TernaryExpr struct {
	ExprBase

	Cond, Then, Else Expr
}

func (te *TernaryExpr) Text() string {
	return fmt.Sprintf("%s ? %s : %s", te.Cond.Text(), te.Then.Text(), te.Else.Text())
}

// -----------------------------------------------------------------------------

// IndexExpr is an array element access or a bit slice.  For a single-element
// access Lo is nil; for a slice `value[hi:lo]` both bounds are present and the
// result width is the slice width.
type IndexExpr struct {
	ExprBase

	Root Expr
	Hi   Expr
	Lo   Expr
}

func (ie *IndexExpr) Text() string {
	if ie.Lo == nil {
		return fmt.Sprintf("%s[%s]", ie.Root.Text(), ie.Hi.Text())
	}

	return fmt.Sprintf("%s[%s:%s]", ie.Root.Text(), ie.Hi.Text(), ie.Lo.Text())
}

// FieldExpr is a field access: a bitfield or struct field, or an enum member
// reference when the root names an enum type.
type FieldExpr struct {
	ExprBase

	Root  Expr
	Field string
}

func (fe *FieldExpr) Text() string {
	return fmt.Sprintf("%s.%s", fe.Root.Text(), fe.Field)
}

// CallExpr is a named call against a user-defined function or a builtin.
type CallExpr struct {
	ExprBase

	Name string
	Args []Expr
}

func (ce *CallExpr) Text() string {
	sb := strings.Builder{}
	sb.WriteString(ce.Name)
	sb.WriteRune('(')

	for i, arg := range ce.Args {
		sb.WriteString(arg.Text())

		if i < len(ce.Args)-1 {
			sb.WriteString(", ")
		}
	}

	sb.WriteRune(')')
	return sb.String()
}
