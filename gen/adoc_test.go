package gen

import (
	"testing"

	"udbc/arch"
	"udbc/ast"
	"udbc/compile"
	"udbc/symtab"
	"udbc/syntax"
	"udbc/types"

	"github.com/stretchr/testify/require"
)

// parseStmts builds an unfrozen statement list; the documentation passes work
// from source shape alone unless decode formatting is under test.
func parseStmts(t *testing.T, src string) []ast.Stmt {
	t.Helper()

	stmts, err := syntax.ParseStmts("test", src, 0)
	require.NoError(t, err)

	return stmts
}

func TestOptionAdocIfWithoutElse(t *testing.T) {
	out := OptionAdocStmts(parseStmts(t, "if (mode == 1) { x = 1; }"))

	require.Equal(t, "* When `mode` == `1`:\n"+
		"** `x` is set to `1`.\n"+
		"* When `mode` != `1`: no effect.", out)
}

func TestOptionAdocIfElseChain(t *testing.T) {
	out := OptionAdocStmts(parseStmts(t,
		"if (a == 1) { x = 1; } else if (a < 2) { x = 2; } else { x = 3; }"))

	require.Equal(t, "* When `a` == `1`:\n"+
		"** `x` is set to `1`.\n"+
		"* When `a` < `2`:\n"+
		"** `x` is set to `2`.\n"+
		"* When `a` >= `2`:\n"+
		"** `x` is set to `3`.", out)
}

func TestOptionAdocBareBooleanCondition(t *testing.T) {
	out := OptionAdocStmts(parseStmts(t, "if (enabled) { x = 1; }"))

	require.Equal(t, "* When `enabled`:\n"+
		"** `x` is set to `1`.\n"+
		"* When !`enabled`: no effect.", out)
}

func TestOptionAdocNestedIf(t *testing.T) {
	out := OptionAdocStmts(parseStmts(t, "if (a == 1) { if (b == 2) { x = 1; } }"))

	require.Equal(t, "* When `a` == `1`:\n"+
		"** When `b` == `2`:\n"+
		"*** `x` is set to `1`.\n"+
		"** When `b` != `2`: no effect.\n"+
		"* When `a` != `1`: no effect.", out)
}

func TestOptionAdocTernaryAssign(t *testing.T) {
	out := OptionAdocStmts(parseStmts(t, "x = mode == 1 ? 4 : 8;"))

	require.Equal(t, "* When `mode` == `1`, `x` is set to `4`.\n"+
		"* When `mode` != `1`, `x` is set to `8`.", out)
}

func TestOptionAdocSentinels(t *testing.T) {
	out := OptionAdocStmts(parseStmts(t, "x = 32'h1ada_cefa;"))
	require.Equal(t, "* `x` is set to UNDEFINED_LEGAL.", out)

	out = OptionAdocStmts(parseStmts(t, "x = 32'h1ada_cefb;"))
	require.Equal(t, "* `x` is set to UNDEFINED_LEGAL_DETERMINISTIC.", out)
}

func TestOptionAdocReturn(t *testing.T) {
	out := OptionAdocStmts(parseStmts(t, "return 4'hf;"))
	require.Equal(t, "* the value is `4'hf`.", out)
}

func TestOptionAdocFallbackStmt(t *testing.T) {
	out := OptionAdocStmts(parseStmts(t, "Bits<4> x = 1;"))
	require.Equal(t, "* `Bits<4> x = 1;`", out)
}

func TestOptionAdocDecodeVariables(t *testing.T) {
	c, err := compile.NewFromConfig(&arch.Config{Name: "test", XLen: 64, Extensions: []string{"I"}})
	require.NoError(t, err)

	rd := &symtab.Var{Name: "rd", Type: &types.BitsType{Width: 5}, Decode: true}
	stmts, err := c.CompileFunctionBody("test", "X[rd] = 1;", compile.BodyOptions{
		ExtraSyms: []*symtab.Var{rd},
	})
	require.NoError(t, err)

	require.Equal(t, "* `X`[_rd_] is set to `1`.", OptionAdocStmts(stmts))
}

func TestOptionAdocExprNode(t *testing.T) {
	e, err := syntax.ParseExpr("test", "a + 1")
	require.NoError(t, err)

	require.Equal(t, "`a` + `1`", OptionAdoc(e))
}
