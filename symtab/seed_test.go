package symtab

import (
	"testing"

	"udbc/arch"
	"udbc/types"

	"github.com/stretchr/testify/require"
)

func testConfig() *arch.Config {
	return &arch.Config{
		Name:       "test",
		XLen:       64,
		Extensions: []string{"I", "M", "C"},
		Params:     map[string]interface{}{},
	}
}

func TestSeedBuiltins(t *testing.T) {
	table, err := FromConfig(testConfig())
	require.NoError(t, err)
	require.Same(t, table.Config(), table.cfg)

	xlen := table.Get("XLEN")
	require.NotNil(t, xlen)
	require.True(t, xlen.Const)
	require.Equal(t, "64", xlen.Value.String())
	require.Equal(t, &types.BitsType{Width: 7}, xlen.Type)

	x := table.Get("X")
	require.NotNil(t, x)
	require.Equal(t, &types.ArrayType{Elem: &types.BitsType{Width: 64}, Len: 32}, x.Type)

	pc := table.Get("$pc")
	require.NotNil(t, pc)
	require.Equal(t, &types.BitsType{Width: 64}, pc.Type)
	require.False(t, pc.Const)

	enc := table.Get("$encoding")
	require.NotNil(t, enc)
	require.True(t, enc.Decode)
	require.Equal(t, &types.BitsType{Width: 32}, enc.Type)

	require.Equal(t, types.BoolValue(true), table.Get("true").Value)
	require.Equal(t, types.BoolValue(false), table.Get("false").Value)
}

func TestSeedSentinels(t *testing.T) {
	table, err := FromConfig(testConfig())
	require.NoError(t, err)

	ul := table.Get("UNDEFINED_LEGAL")
	require.NotNil(t, ul)
	require.True(t, ul.Const)
	require.Equal(t, types.UndefinedLegal, ul.Value.(types.IntValue).V)

	uld := table.Get("UNDEFINED_LEGAL_DETERMINISTIC")
	require.NotNil(t, uld)
	require.Equal(t, types.UndefinedLegalDeterministic, uld.Value.(types.IntValue).V)
}

func TestSeedExtensionEnum(t *testing.T) {
	table, err := FromConfig(testConfig())
	require.NoError(t, err)

	v := table.Get("ExtensionName")
	require.NotNil(t, v)
	require.True(t, v.IsType)

	et, ok := v.Type.(*types.EnumType)
	require.True(t, ok)
	require.Equal(t, []string{"I", "M", "C"}, et.Members)
	require.Equal(t, "1", et.Values[1].String())
}

func TestSeedParams(t *testing.T) {
	cfg := testConfig()
	cfg.Params = map[string]interface{}{
		"CACHE_BLOCK_SIZE": int64(64),
		"MUTABLE_MISA":     true,
		"HPM_EVENTS":       []int64{0, 3, 256},
		"NAME":             "acme-core",
	}

	table, err := FromConfig(cfg)
	require.NoError(t, err)

	cbs := table.Get("CACHE_BLOCK_SIZE")
	require.NotNil(t, cbs)
	require.True(t, cbs.Const)
	require.Equal(t, &types.BitsType{Width: 7}, cbs.Type)
	require.Equal(t, "64", cbs.Value.String())

	mm := table.Get("MUTABLE_MISA")
	require.Equal(t, types.BoolType{}, mm.Type)
	require.Equal(t, types.BoolValue(true), mm.Value)

	// Array element width follows the widest element.
	he := table.Get("HPM_EVENTS")
	require.Equal(t, &types.ArrayType{Elem: &types.BitsType{Width: 9}, Len: 3}, he.Type)
	require.Equal(t, "[0, 3, 256]", he.Value.String())

	name := table.Get("NAME")
	require.Equal(t, types.StringType{}, name.Type)
	require.Equal(t, `"acme-core"`, name.Value.String())
}

func TestSeedRejectsUnlistedStringParam(t *testing.T) {
	cfg := testConfig()
	cfg.Params = map[string]interface{}{"MODEL": "acme"}

	_, err := FromConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "MODEL")
}

func TestSeedRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.XLen = 48

	_, err := FromConfig(cfg)
	require.Error(t, err)
}
