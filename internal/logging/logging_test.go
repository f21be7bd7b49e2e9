package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestInitialize_JSONAndLevelFiltering(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev; slog.SetDefault(prev) })

	var buf bytes.Buffer
	Initialize(&buf, "warn", true)

	For("thumbnail").Info("dropped")
	For("thumbnail").Warn("kept", "slide", "abc")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.Contains(t, out, `"component":"thumbnail"`)
}

func TestOpenFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "thumbview.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)

	_, err = OpenFile("  ")
	assert.Error(t, err)
}
