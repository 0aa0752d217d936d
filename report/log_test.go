package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeLogLevels(t *testing.T) {
	defer Initialize("verbose")

	tests := []struct {
		name  string
		level int
	}{
		{"silent", LogLevelSilent},
		{"error", LogLevelError},
		{"warn", LogLevelWarning},
		{"verbose", LogLevelVerbose},
		{"bogus", LogLevelVerbose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Initialize(tt.name)
			require.Equal(t, tt.level, logLevel)
		})
	}
}

func TestLogLevelGating(t *testing.T) {
	defer Initialize("verbose")

	Initialize("error")
	require.True(t, logEnabled(LogLevelError))
	require.False(t, logEnabled(LogLevelWarning))
	require.False(t, logEnabled(LogLevelVerbose))

	Initialize("silent")
	require.False(t, logEnabled(LogLevelError))
}
