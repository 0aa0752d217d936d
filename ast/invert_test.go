package ast_test

import (
	"testing"

	"udbc/ast"
	"udbc/syntax"

	"github.com/stretchr/testify/require"
)

func TestInvert(t *testing.T) {
	tests := []struct {
		src      string
		inverted string
	}{
		// Comparisons complement operator-wise instead of wrapping.
		{"a == b", "(a != b)"},
		{"a != b", "(a == b)"},
		{"a < b", "(a >= b)"},
		{"a >= b", "(a < b)"},
		{"a > b", "(a <= b)"},
		{"a <= b", "(a > b)"},
		{"mstatus.TW == 1", "(mstatus.TW != 1)"},

		// Negations unwrap, literals flip, names negate.
		{"!a", "a"},
		{"true", "false"},
		{"false", "true"},
		{"a", "!a"},

		// Everything else wraps in a negation over the whole condition.
		{"a && b", "!(a && b)"},
		{"a || b == c", "!(a || (b == c))"},
		{"f(x)", "!(f(x))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := syntax.ParseExpr("test", tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.inverted, ast.Invert(e).Text())
		})
	}
}

func TestInvertSharesOperands(t *testing.T) {
	e, err := syntax.ParseExpr("test", "a < b")
	require.NoError(t, err)

	be := e.(*ast.BinaryExpr)
	inv := ast.Invert(e).(*ast.BinaryExpr)

	require.Same(t, be.Lhs, inv.Lhs)
	require.Same(t, be.Rhs, inv.Rhs)
}
