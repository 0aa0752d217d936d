package syntax

import (
	"testing"

	"udbc/ast"
	"udbc/report"

	"github.com/stretchr/testify/require"
)

func TestParseLeftAssociativity(t *testing.T) {
	e, err := ParseExpr("test", "4 - 3 - 1")
	require.NoError(t, err)
	require.Equal(t, "((4 - 3) - 1)", e.Text())
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{"4 + 5'd3 * 2", "(4 + (5'd3 * 2))"},
		{"1 << 2 + 3", "(1 << (2 + 3))"},
		{"a & b == c", "(a & (b == c))"},
		{"a | b & c", "(a | (b & c))"},
		{"a || b && c", "(a || (b && c))"},
		{"a == b < c", "(a == (b < c))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := ParseExpr("test", tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.text, e.Text())
		})
	}
}

func TestParseIntLit(t *testing.T) {
	tests := []struct {
		src     string
		width   int
		sized   bool
		unsized bool
		signed  bool
		radix   byte
		value   int64
	}{
		{"13", 0, false, false, false, 'd', 13},
		{"8'd13", 8, true, false, false, 'd', 13},
		{"8'sd13", 8, true, false, true, 'd', 13},
		{"16'hd", 16, true, false, false, 'h', 13},
		{"12'o15", 12, true, false, false, 'o', 13},
		{"4'b1101", 4, true, false, false, 'b', 13},
		{"'13", 0, false, true, false, 'd', 13},
		{"'s13", 0, false, true, true, 'd', 13},
		{"32'h1ada_cefa", 32, true, false, false, 'h', 0x1adacefa},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := ParseExpr("test", tt.src)
			require.NoError(t, err)

			lit, ok := e.(*ast.IntLit)
			require.True(t, ok)
			require.Equal(t, tt.width, lit.Width)
			require.Equal(t, tt.sized, lit.Sized)
			require.Equal(t, tt.unsized, lit.Unsized)
			require.Equal(t, tt.signed, lit.Signed)
			require.Equal(t, tt.radix, lit.Radix)
			require.Equal(t, tt.value, lit.Val.Int64())
		})
	}
}

func TestParseIntLitBadDigits(t *testing.T) {
	for _, src := range []string{"4'b1102", "8'o18", "8'd1f"} {
		t.Run(src, func(t *testing.T) {
			_, err := ParseExpr("test", src)
			requireKind(t, err, report.KindSyntax)
		})
	}
}

func TestParseExprShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		text string
	}{
		{"ternary", "a ? b : c", "a ? b : c"},
		{"index", "X[3]", "X[3]"},
		{"slice", "x[7:0]", "x[7:0]"},
		{"field", "mstatus.TW", "mstatus.TW"},
		{"call", "foo(1, 2)", "foo(1, 2)"},
		{"query call", "implemented?(ExtensionName.M)", "implemented?(ExtensionName.M)"},
		{"unary", "-8'sd13", "-8'sd13"},
		{"complement", "~x", "~x"},
		{"paren drop", "(a + b) * c", "((a + b) * c)"},
		{"nested trailers", "csr.FIELD[3:0]", "csr.FIELD[3:0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ParseExpr("test", tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.text, e.Text())
		})
	}
}

func TestParseExprErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"dangling operator", "4 +"},
		{"trailing input", "4 5"},
		{"unclosed paren", "(4 + 3"},
		{"unclosed bracket", "x[3"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpr("test", tt.src)
			requireKind(t, err, report.KindSyntax)
		})
	}
}

// requireKind asserts that err is a compilation error of the given kind.
func requireKind(t *testing.T, err error, kind report.Kind) {
	t.Helper()

	require.Error(t, err)

	cerr, ok := err.(*report.Error)
	require.True(t, ok, "expected a *report.Error, got %T: %s", err, err)
	require.Equal(t, kind, cerr.Kind, "wrong kind: %s", cerr)
}

// -----------------------------------------------------------------------------

func TestParseStmtForms(t *testing.T) {
	stmts, err := ParseStmts("test", "Bits<4> x = 5; x = x + 1; x++; foo(x);", 0)
	require.NoError(t, err)
	require.Len(t, stmts, 4)

	require.IsType(t, &ast.DeclStmt{}, stmts[0])
	require.IsType(t, &ast.AssignStmt{}, stmts[1])
	require.IsType(t, &ast.IncDecStmt{}, stmts[2])
	require.IsType(t, &ast.ExprStmt{}, stmts[3])

	decl := stmts[0].(*ast.DeclStmt)
	require.Equal(t, "x", decl.Name)
	require.Equal(t, "Bits<4>", decl.Spec.Text())
}

func TestParseDeclDisambiguation(t *testing.T) {
	stmts, err := ParseStmts("test", "XReg value = 0; value = value + 1;", 0)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	require.IsType(t, &ast.DeclStmt{}, stmts[0])
	require.IsType(t, &ast.AssignStmt{}, stmts[1])
}

func TestParseIfElseChain(t *testing.T) {
	src := `
if (a == 1) {
  x = 1;
} else if (a == 2) {
  x = 2;
} else {
  x = 3;
}`

	stmts, err := ParseStmts("test", src, 0)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	is := stmts[0].(*ast.IfStmt)
	require.Equal(t, "(a == 1)", is.Cond.Text())
	require.Len(t, is.Else, 1)

	elif := is.Else[0].(*ast.IfStmt)
	require.Equal(t, "(a == 2)", elif.Cond.Text())
	require.Len(t, elif.Else, 1)
	require.IsType(t, &ast.AssignStmt{}, elif.Else[0])
}

func TestParseForLoop(t *testing.T) {
	loop, err := ParseForLoop("test", "for (Bits<8> i = 0; i < 4; i++) { X[i] = 0; }")
	require.NoError(t, err)

	require.IsType(t, &ast.DeclStmt{}, loop.Init)
	require.Equal(t, "(i < 4)", loop.Cond.Text())
	require.IsType(t, &ast.IncDecStmt{}, loop.Update)
	require.Len(t, loop.Body, 1)
}

func TestParseFunctionDecl(t *testing.T) {
	src := `
function sext {
  returns XReg
  arguments XReg value, Bits<6> first_extended_bit
  description {
    Sign extend from the given bit position.
  }
  body {
    return value;
  }
}`

	stmts, err := ParseStmts("test", src, 0)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	fd := stmts[0].(*ast.FuncDecl)
	require.Equal(t, "sext", fd.Name)
	require.Equal(t, "XReg", fd.ReturnSpec.Text())
	require.Len(t, fd.Params, 2)
	require.Equal(t, "value", fd.Params[0].Name)
	require.Equal(t, "Bits<6>", fd.Params[1].Spec.Text())
	require.Contains(t, fd.Description, "Sign extend")
	require.Len(t, fd.Body, 1)
}

func TestParseFunctionRequiresBody(t *testing.T) {
	_, err := ParseStmts("test", "function f { returns XReg }", 0)
	requireKind(t, err, report.KindSyntax)
}

func TestParseEnumDecl(t *testing.T) {
	stmts, err := ParseStmts("test", "enum PrivilegeMode { U 0 S 1 M 3 }", 0)
	require.NoError(t, err)

	ed := stmts[0].(*ast.EnumDecl)
	require.Equal(t, "PrivilegeMode", ed.Name)
	require.Equal(t, []string{"U", "S", "M"}, ed.Members)
	require.Len(t, ed.Values, 3)
}

func TestParseBitfieldDecl(t *testing.T) {
	stmts, err := ParseStmts("test", "bitfield (8) Flags { EN 0 MODE 3-1 RES 7-4 }", 0)
	require.NoError(t, err)

	bd := stmts[0].(*ast.BitfieldDecl)
	require.Equal(t, "Flags", bd.Name)
	require.Len(t, bd.Fields, 3)
	require.Nil(t, bd.Fields[0].Lo)
	require.NotNil(t, bd.Fields[1].Lo)
}

func TestParseStructDecl(t *testing.T) {
	stmts, err := ParseStmts("test", "struct TranslationResult { XReg paddr; Boolean valid; }", 0)
	require.NoError(t, err)

	sd := stmts[0].(*ast.StructDecl)
	require.Equal(t, "TranslationResult", sd.Name)
	require.Len(t, sd.Fields, 2)
	require.Equal(t, "paddr", sd.Fields[0].Name)
}

func TestParseInclude(t *testing.T) {
	stmts, err := ParseStmts("test", `include "common.idl"`, 0)
	require.NoError(t, err)

	inc := stmts[0].(*ast.IncludeStmt)
	require.Equal(t, "common.idl", inc.Path)
}

func TestParseLineOffset(t *testing.T) {
	stmts, err := ParseStmts("test", "x = 1;", 10)
	require.NoError(t, err)
	require.Equal(t, 10, stmts[0].Span().StartLine)
}
