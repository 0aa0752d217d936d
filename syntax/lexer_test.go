package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// lexAll drains the lexer, returning every token including the EOF.
func lexAll(t *testing.T, src string) []*Token {
	l := NewLexer(src, 0)

	var toks []*Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)

		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

func kindsOf(toks []*Token) []int {
	kinds := make([]int, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestLexTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []int
	}{
		{"arith", "a + b * 2", []int{TOK_IDENT, TOK_PLUS, TOK_IDENT, TOK_STAR, TOK_INTLIT, TOK_EOF}},
		{"shifts", "x << 1 >> 2", []int{TOK_IDENT, TOK_LSHIFT, TOK_INTLIT, TOK_RSHIFT, TOK_INTLIT, TOK_EOF}},
		{"compare", "a <= b == c", []int{TOK_IDENT, TOK_LTEQ, TOK_IDENT, TOK_EQ, TOK_IDENT, TOK_EOF}},
		{"logic", "!a && b || c", []int{TOK_NOT, TOK_IDENT, TOK_AND, TOK_IDENT, TOK_OR, TOK_IDENT, TOK_EOF}},
		{"incdec", "i++; j--;", []int{TOK_IDENT, TOK_INC, TOK_SEMI, TOK_IDENT, TOK_DEC, TOK_SEMI, TOK_EOF}},
		{"keywords", "if else for return", []int{TOK_IF, TOK_ELSE, TOK_FOR, TOK_RETURN, TOK_EOF}},
		{"decls", "function enum bitfield struct", []int{TOK_FUNCTION, TOK_ENUM, TOK_BITFIELD, TOK_STRUCT, TOK_EOF}},
		{"sections", "arguments returns description body include", []int{TOK_ARGUMENTS, TOK_RETURNS, TOK_DESCRIPTION, TOK_BODY, TOK_INCLUDE, TOK_EOF}},
		{"bools", "true false", []int{TOK_TRUE, TOK_FALSE, TOK_EOF}},
		{"slice", "x[7:0]", []int{TOK_IDENT, TOK_LBRACKET, TOK_INTLIT, TOK_COLON, TOK_INTLIT, TOK_RBRACKET, TOK_EOF}},
		{"ternary", "a ? b : c", []int{TOK_IDENT, TOK_QUESTION, TOK_IDENT, TOK_COLON, TOK_IDENT, TOK_EOF}},
		{"comment", "a # trailing comment\nb", []int{TOK_IDENT, TOK_IDENT, TOK_EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.kinds, kindsOf(lexAll(t, tt.src)))
		})
	}
}

func TestLexIntLitForms(t *testing.T) {
	tests := []struct {
		src   string
		value string
	}{
		{"13", "13"},
		{"1_000", "1_000"},
		{"8'd13", "8'd13"},
		{"8'sd13", "8'sd13"},
		{"16'hd", "16'hd"},
		{"12'o15", "12'o15"},
		{"4'b1101", "4'b1101"},
		{"'13", "'13"},
		{"'s13", "'s13"},
		{"32'h1ada_cefa", "32'h1ada_cefa"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			require.Len(t, toks, 2)
			require.Equal(t, TOK_INTLIT, toks[0].Kind)
			require.Equal(t, tt.value, toks[0].Value)
		})
	}
}

func TestLexIdentifiers(t *testing.T) {
	toks := lexAll(t, "$pc implemented? mstatus _x")
	require.Equal(t,
		[]int{TOK_IDENT, TOK_IDENT, TOK_IDENT, TOK_IDENT, TOK_EOF},
		kindsOf(toks),
	)
	require.Equal(t, "$pc", toks[0].Value)
	require.Equal(t, "implemented?", toks[1].Value)
}

func TestLexStringLit(t *testing.T) {
	toks := lexAll(t, `include "sub/common.idl"`)
	require.Equal(t, []int{TOK_INCLUDE, TOK_STRINGLIT, TOK_EOF}, kindsOf(toks))
	require.Equal(t, "sub/common.idl", toks[1].Value)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed string", `"abc`},
		{"newline in string", "\"ab\nc\""},
		{"unknown rune", "a @ b"},
		{"missing radix", "8'x13"},
		{"bare quote", "' "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.src, 0)

			var err error
			for err == nil {
				var tok *Token
				tok, err = l.NextToken()
				if err == nil && tok.Kind == TOK_EOF {
					t.Fatal("expected a lexical error")
				}
			}
		})
	}
}

func TestLexSpans(t *testing.T) {
	toks := lexAll(t, "ab\n  cd")
	require.Equal(t, 0, toks[0].Span.StartLine)
	require.Equal(t, 0, toks[0].Span.StartCol)
	require.Equal(t, 1, toks[1].Span.StartLine)
	require.Equal(t, 2, toks[1].Span.StartCol)
}

func TestLexLineOffset(t *testing.T) {
	l := NewLexer("x", 41)
	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, 41, tok.Span.StartLine)
}

func TestReadRawBlock(t *testing.T) {
	l := NewLexer(" { free {nested} text } after", 0)
	body, err := l.ReadRawBlock()
	require.NoError(t, err)
	require.Equal(t, " free {nested} text ", body)

	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, "after", tok.Value)
}
