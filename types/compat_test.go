package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinWidth(t *testing.T) {
	tests := []struct {
		value int64
		width int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{13, 4},
		{255, 8},
		{256, 9},
	}

	for _, tt := range tests {
		require.Equal(t, tt.width, MinWidth(big.NewInt(tt.value)), "MinWidth(%d)", tt.value)
	}
}

func TestFitsIn(t *testing.T) {
	tests := []struct {
		value  int64
		width  int
		signed bool
		fits   bool
	}{
		{15, 4, false, true},
		{16, 4, false, false},
		{15, 4, true, false},
		{7, 4, true, true},
		{-8, 4, true, true},
		{-9, 4, true, false},
		{-1, 4, false, false},
		{1, 0, false, false},
	}

	for _, tt := range tests {
		require.Equal(
			t, tt.fits, FitsIn(big.NewInt(tt.value), tt.width, tt.signed),
			"FitsIn(%d, %d, %v)", tt.value, tt.width, tt.signed,
		)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		value  int64
		width  int
		signed bool
		out    int64
	}{
		{0x10, 4, false, 0},
		{0x1f, 4, false, 0xf},
		{0xf, 4, true, -1},
		{0x7, 4, true, 7},
		{-13, 8, false, 243},
	}

	for _, tt := range tests {
		out := Truncate(big.NewInt(tt.value), tt.width, tt.signed)
		require.Equal(t, tt.out, out.Int64(), "Truncate(%#x, %d, %v)", tt.value, tt.width, tt.signed)
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		a, b *BitsType
		out  *BitsType
	}{
		{&BitsType{Width: 4}, &BitsType{Width: 5}, &BitsType{Width: 5}},
		{&BitsType{Width: 8, Signed: true}, &BitsType{Width: 8, Signed: true}, &BitsType{Width: 8, Signed: true}},
		{&BitsType{Width: 8, Signed: true}, &BitsType{Width: 8}, &BitsType{Width: 8}},
		{&BitsType{Width: 64}, &BitsType{Width: 32, Signed: true}, &BitsType{Width: 64}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.out, Reconcile(tt.a, tt.b))
	}
}

func TestEnumEquality(t *testing.T) {
	a := &EnumType{Name: "Mode", Members: []string{"U", "M"}, Values: []*big.Int{big.NewInt(0), big.NewInt(3)}}
	b := &EnumType{Name: "Mode", Members: []string{"U", "M"}, Values: []*big.Int{big.NewInt(0), big.NewInt(3)}}

	// Structurally identical enums are still distinct declarations.
	require.True(t, Equals(a, a))
	require.False(t, Equals(a, b))
	require.Equal(t, 2, a.BackingWidth())
}

func TestAssignable(t *testing.T) {
	mode := &EnumType{Name: "Mode", Members: []string{"U"}, Values: []*big.Int{big.NewInt(0)}}
	other := &EnumType{Name: "Other", Members: []string{"A"}, Values: []*big.Int{big.NewInt(0)}}

	tests := []struct {
		name string
		dest Type
		src  Type
		ok   bool
	}{
		{"identical", &BitsType{Width: 8}, &BitsType{Width: 8}, true},
		{"narrowing", &BitsType{Width: 4}, &BitsType{Width: 8}, true},
		{"widening", &BitsType{Width: 16}, &BitsType{Width: 8}, true},
		{"bool to bits", &BitsType{Width: 1}, BoolType{}, false},
		{"enum to same enum", mode, mode, true},
		{"enum to other enum", other, mode, false},
		{"enum to bits", &BitsType{Width: 8}, mode, true},
		{"string to bits", &BitsType{Width: 8}, StringType{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.ok, Assignable(tt.dest, tt.src))
		})
	}
}
