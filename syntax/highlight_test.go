package syntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHighlightCoversInput(t *testing.T) {
	src := `# comment
if (implemented?(ExtensionName.M)) {
  X[rd] = 8'hff + $pc;
}`

	toks := Highlight(src)

	sb := strings.Builder{}
	for _, tok := range toks {
		sb.WriteString(tok.Text)
	}

	require.Equal(t, src, sb.String())
}

func TestHighlightClassification(t *testing.T) {
	tests := []struct {
		src  string
		kind HighlightKind
	}{
		{"# note", HL_COMMENT},
		{"if", HL_KEYWORD},
		{"description", HL_KEYWORD},
		{"Bits", HL_TYPENAME},
		{"ExtensionName", HL_TYPENAME},
		{"$pc", HL_BUILTIN},
		{"rd", HL_IDENT},
		{"implemented?", HL_IDENT},
		{"8'hff", HL_NUMBER},
		{"'13", HL_NUMBER},
		{`"acme"`, HL_STRING},
		{"<<", HL_OPERATOR},
		{"(", HL_PUNCT},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := Highlight(tt.src)
			require.NotEmpty(t, toks)
			require.Equal(t, tt.kind, toks[0].Kind)
			require.Equal(t, tt.src, toks[0].Text)
		})
	}
}

func TestHighlightNeverFails(t *testing.T) {
	// Inputs the compiling lexer rejects still tokenize.
	for _, src := range []string{"@", `"unclosed`, "8'x", "'"} {
		toks := Highlight(src)

		sb := strings.Builder{}
		for _, tok := range toks {
			sb.WriteString(tok.Text)
		}

		require.Equal(t, src, sb.String())
	}
}
