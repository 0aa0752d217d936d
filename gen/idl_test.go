package gen

import (
	"testing"

	"udbc/syntax"

	"github.com/stretchr/testify/require"
)

func TestIdlExpr(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{"4-3-1", "((4 - 3) - 1)"},
		{"4 + 5'd3 * 2", "(4 + (5'd3 * 2))"},
		{"a?b:c", "a ? b : c"},
		{"~x[7:0]", "~x[7:0]"},
		{"-8'sd13", "-8'sd13"},
		{"'s13", "'s13"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := syntax.ParseExpr("test", tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.text, Idl(e))
		})
	}
}

func TestIdlStmts(t *testing.T) {
	stmts, err := syntax.ParseStmts("test", "Bits<4> x = 5;x = x+1;x++;", 0)
	require.NoError(t, err)

	require.Equal(t, "Bits<4> x = 5;\nx = (x + 1);\nx++;", IdlStmts(stmts))
}

func TestIdlIfChain(t *testing.T) {
	stmts, err := syntax.ParseStmts("test", "if(a==1){x=1;}else{x=2;}", 0)
	require.NoError(t, err)

	require.Equal(t,
		"if ((a == 1)) {\n  x = 1;\n} else {\n  x = 2;\n}",
		IdlStmts(stmts))
}

func TestIdlRoundTrip(t *testing.T) {
	// The canonical rendering reparses to an identical rendering.
	srcs := []string{
		"for (Bits<8> i = 0; i < 4; i++) { X[i] = 0; }",
		"if (a == 1) { x = 1; } else if (a == 2) { x = 2; }",
		"XReg entry = (1 << 12) | 8'hff;",
	}

	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			stmts, err := syntax.ParseStmts("test", src, 0)
			require.NoError(t, err)

			rendered := IdlStmts(stmts)
			again, err := syntax.ParseStmts("test", rendered, 0)
			require.NoError(t, err)
			require.Equal(t, rendered, IdlStmts(again))
		})
	}
}
