package symtab

import (
	"math/big"
	"testing"

	"udbc/report"
	"udbc/types"

	"github.com/stretchr/testify/require"
)

func intVar(name string, value int64) *Var {
	bv := big.NewInt(value)
	return &Var{
		Name:  name,
		Type:  &types.BitsType{Width: types.MinWidth(bv)},
		Value: types.NewIntValue(bv),
		Const: true,
	}
}

func TestAddOverwrites(t *testing.T) {
	table := NewTable()

	table.Add(intVar("x", 1))
	table.Add(intVar("x", 2))

	v := table.Get("x")
	require.NotNil(t, v)
	require.Equal(t, "2", v.Value.String())
}

func TestAddStrictRejectsVisible(t *testing.T) {
	table := NewTable()

	require.NoError(t, table.AddStrict(intVar("x", 1)))

	err := table.AddStrict(intVar("x", 2))
	require.Error(t, err)
	require.Equal(t, report.KindDuplicateSym, err.(*report.Error).Kind)

	// Shadowed names are still visible, so a strict add in an inner scope
	// also fails.
	table.Push()
	err = table.AddStrict(intVar("x", 3))
	require.Error(t, err)
}

func TestShadowing(t *testing.T) {
	table := NewTable()
	table.Add(intVar("x", 1))

	table.Push()
	table.Add(intVar("x", 2))
	require.Equal(t, "2", table.Get("x").Value.String())

	table.Pop()
	require.Equal(t, "1", table.Get("x").Value.String())
}

func TestPopGlobalPanics(t *testing.T) {
	table := NewTable()

	table.Push()
	table.Push()
	table.Pop()
	table.Pop()

	require.Panics(t, func() { table.Pop() })
}

func TestGetMiss(t *testing.T) {
	table := NewTable()
	require.Nil(t, table.Get("missing"))
	require.False(t, table.Has("missing"))
}

func TestAddAboveAndAt(t *testing.T) {
	table := NewTable()
	table.Push()

	require.NoError(t, table.AddAbove(intVar("g", 1)))
	table.Pop()
	require.NotNil(t, table.Get("g"))

	table.Push()
	require.Error(t, table.AddAt(0, intVar("g", 2)))
	require.NoError(t, table.AddAt(1, intVar("h", 3)))
	require.Panics(t, func() { table.AddAt(5, intVar("i", 4)) })
}

func TestDeepCloneIndependence(t *testing.T) {
	table := NewTable()
	table.Add(intVar("x", 1))
	table.Push()
	table.Add(intVar("y", 2))

	clone := table.DeepClone(false)
	clone.Add(intVar("y", 99))
	clone.Pop()

	require.Equal(t, "2", table.Get("y").Value.String())
	require.Equal(t, 2, table.Depth())
	require.Equal(t, 1, clone.Depth())
}

func TestDeepCloneValues(t *testing.T) {
	table := NewTable()
	table.Add(intVar("x", 1))

	shared := table.DeepClone(false)
	require.Same(t,
		table.Get("x").Value.(types.IntValue).V,
		shared.Get("x").Value.(types.IntValue).V,
	)

	copied := table.DeepClone(true)
	require.NotSame(t,
		table.Get("x").Value.(types.IntValue).V,
		copied.Get("x").Value.(types.IntValue).V,
	)
	require.Equal(t, "1", copied.Get("x").Value.String())
}
