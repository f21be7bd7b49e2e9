package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thumbview.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func TestRead(t *testing.T) {
	var all []string
	for i := 1; i <= 10; i++ {
		all = append(all, fmt.Sprintf("level=INFO msg=\"line %d\"", i))
	}
	path := writeLog(t, all)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, all},
		{"read all (negative)", -1, all},
		{"read partial (5)", 5, all[5:]},
		{"read partial (3)", 3, all[7:]},
		{"read exactly all (10)", 10, all},
		{"read more than exists (20)", 20, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines, slog.LevelDebug)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if g := texts(got); strings.Join(g, "|") != strings.Join(tt.expected, "|") {
				t.Fatalf("Read() = %v, want %v", g, tt.expected)
			}
		})
	}
}

func TestRead_FiltersByLevel(t *testing.T) {
	path := writeLog(t, []string{
		`level=DEBUG msg="loading slide"`,
		`level=WARN msg="image load failed"`,
		`{"level":"INFO","msg":"starting"}`,
		`{"level":"ERROR","msg":"boom"}`,
		``,
		`plain line`,
	})

	got, err := Read(path, 0, slog.LevelWarn)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Read() = %v, want 2 entries", texts(got))
	}
	if got[0].Level != slog.LevelWarn || got[1].Level != slog.LevelError {
		t.Fatalf("levels = %v, %v", got[0].Level, got[1].Level)
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10, slog.LevelInfo)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		line string
		want slog.Level
	}{
		{`time=x level=DEBUG msg=a`, slog.LevelDebug},
		{`level=WARN msg=a`, slog.LevelWarn},
		{`{"level":"ERROR"}`, slog.LevelError},
		{`{"level":"bogus"}`, slog.LevelInfo},
		{`no level here`, slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.line); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
