package ast

import "udbc/symtab"

// comparisonComplement maps each comparison operator to its complement.
var comparisonComplement = map[string]string{
	"==": "!=",
	"!=": "==",
	"<":  ">=",
	">=": "<",
	">":  "<=",
	"<=": ">",
}

// Invert produces the logical negation of a boolean condition.  Comparison
// operators are inverted operator-wise (`==` becomes `!=`, `<` becomes `>=`,
// and so on) so that generated documentation reads naturally; only conditions
// with no operator-wise complement are wrapped in a negation.  The returned
// expression shares the operand subtrees of the input: it is meant for
// rendering, not for further freezing.
func Invert(e Expr) Expr {
	switch v := e.(type) {
	case *BinaryExpr:
		if complement, ok := comparisonComplement[v.Op]; ok {
			return &BinaryExpr{
				ExprBase: NewExprBase(v.Span()),
				Op:       complement,
				Lhs:      v.Lhs,
				Rhs:      v.Rhs,
			}
		}
	case *UnaryExpr:
		if v.Op == "!" {
			return v.Operand
		}
	case *BoolLit:
		return &BoolLit{ExprBase: NewExprBase(v.Span()), Val: !v.Val}
	case *Ident:
		// A bare boolean name reads best as `!name`.
		return &UnaryExpr{ExprBase: NewExprBase(v.Span()), Op: "!", Operand: v}
	}

	return &UnaryExpr{ExprBase: NewExprBase(e.Span()), Op: "!", Operand: parenthesized(e)}
}

// parenthesized wraps an expression so the negation binds over the whole
// condition when rendered.  Binary expressions already render parenthesized.
func parenthesized(e Expr) Expr {
	if _, ok := e.(*BinaryExpr); ok {
		return e
	}

	return &groupExpr{ExprBase: NewExprBase(e.Span()), inner: e}
}

// groupExpr is a rendering-only wrapper that parenthesizes its operand.
type groupExpr struct {
	ExprBase

	inner Expr
}

func (ge *groupExpr) Text() string { return "(" + ge.inner.Text() + ")" }

func (ge *groupExpr) Freeze(st *symtab.Table) error { return nil }
