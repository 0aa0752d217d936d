package arch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[config]
name = "rv64"
xlen = 64
extensions = ["I", "M", "C"]

[params]
CACHE_BLOCK_SIZE = 64
MUTABLE_MISA = true
HPM_EVENTS = [0, 3, 256]
NAME = "acme-core"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "rv64", cfg.Name)
	require.Equal(t, 64, cfg.XLen)
	require.Equal(t, []string{"I", "M", "C"}, cfg.Extensions)

	require.Equal(t, int64(64), cfg.Params["CACHE_BLOCK_SIZE"])
	require.Equal(t, true, cfg.Params["MUTABLE_MISA"])
	require.Equal(t, []int64{0, 3, 256}, cfg.Params["HPM_EVENTS"])
	require.Equal(t, "acme-core", cfg.Params["NAME"])
}

func TestLoadConfigBoolArray(t *testing.T) {
	path := writeConfig(t, `
[config]
name = "rv32"
xlen = 32

[params]
FLAGS = [true, false, true]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true}, cfg.Params["FLAGS"])
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing config section", `[params]` + "\nA = 1\n"},
		{"bad xlen", "[config]\nname = \"x\"\nxlen = 48\n"},
		{"no name", "[config]\nxlen = 64\n"},
		{"empty array param", "[config]\nname = \"x\"\nxlen = 64\n\n[params]\nA = []\n"},
		{"mixed array param", "[config]\nname = \"x\"\nxlen = 64\n\n[params]\nA = [1, true]\n"},
		{"float param", "[config]\nname = \"x\"\nxlen = 64\n\n[params]\nA = 1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, (&Config{Name: "a", XLen: 32}).Validate())
	require.NoError(t, (&Config{Name: "a", XLen: 64}).Validate())
	require.Error(t, (&Config{Name: "a", XLen: 16}).Validate())
	require.Error(t, (&Config{XLen: 64}).Validate())
}
