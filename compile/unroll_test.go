package compile

import (
	"math/big"
	"testing"

	"udbc/ast"
	"udbc/report"
	"udbc/symtab"
	"udbc/syntax"

	"github.com/stretchr/testify/require"
)

// frozenLoop parses and freezes a for loop against a clone of the compiler's
// seeded table, returning both.
func frozenLoop(t *testing.T, src string) (loop *ast.ForStmt, table *symtab.Table) {
	t.Helper()

	parsed, err := syntax.ParseForLoop("test", src)
	require.NoError(t, err)

	table = testCompiler(t).Table().DeepClone(false)
	require.NoError(t, parsed.Freeze(table))

	return parsed, table
}

func steps(values []*big.Int) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = v.Int64()
	}

	return out
}

func TestUnrollFor(t *testing.T) {
	loop, table := frozenLoop(t, "for (Bits<8> i = 0; i < 4; i++) { X[i] = 0; }")

	values, err := UnrollFor(loop, table)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 2, 3}, steps(values))
}

func TestUnrollForDownward(t *testing.T) {
	loop, table := frozenLoop(t, "for (Bits<8> i = 3; i > 0; i--) { X[i] = 0; }")

	values, err := UnrollFor(loop, table)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 2, 1}, steps(values))
}

func TestUnrollForAssignUpdate(t *testing.T) {
	loop, table := frozenLoop(t, "for (Bits<8> i = 1; i < 16; i = i * 2) { X[0] = i; }")

	values, err := UnrollFor(loop, table)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 4, 8}, steps(values))
}

func TestUnrollForConfigBound(t *testing.T) {
	// Bounds fold against seeded configuration constants.
	loop, table := frozenLoop(t, "for (Bits<8> i = 0; i < XLEN / 8; i++) { X[0] = i; }")

	values, err := UnrollFor(loop, table)
	require.NoError(t, err)
	require.Len(t, values, 8)
}

func TestUnrollForEmpty(t *testing.T) {
	loop, table := frozenLoop(t, "for (Bits<8> i = 4; i < 4; i++) { X[0] = i; }")

	values, err := UnrollFor(loop, table)
	require.NoError(t, err)
	require.Empty(t, values)
}

func TestUnrollForNonTerminating(t *testing.T) {
	loop, table := frozenLoop(t, "for (Bits<8> i = 0; i >= 0; i++) { X[0] = i; }")

	_, err := UnrollFor(loop, table)
	requireKind(t, err, report.KindValue)
	require.Contains(t, err.Error(), "did not terminate")
}

func TestUnrollForErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"init is not a declaration", "for (x = 0; x < 4; x++) { X[0] = x; }"},
		{"no initializer", "for (Bits<8> i; i < 4; i++) { X[0] = i; }"},
		{"non-constant bound", "for (Bits<8> i = 0; i < $pc; i++) { X[0] = i; }"},
		{"update touches another name", "for (Bits<8> i = 0; i < 4; j++) { X[0] = i; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop, table := frozenLoop(t, tt.src)

			_, err := UnrollFor(loop, table)
			requireKind(t, err, report.KindValue)
		})
	}
}
