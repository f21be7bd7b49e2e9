package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.BackgroundHint != "" {
		t.Fatalf("BackgroundHint = %q, want empty", p.BackgroundHint)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "thumbview")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("background_hint = \" #1e1e2e \"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.BackgroundHint != "#1e1e2e" {
		t.Fatalf("BackgroundHint = %q, want %q", p.BackgroundHint, "#1e1e2e")
	}
}

func TestLoad_InvalidTOMLDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("background_hint = ["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != (Prefs{}) {
		t.Fatalf("Load = %+v, want zero Prefs", p)
	}
}

func TestSave_RoundTripsAndCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.toml")

	if err := Save(path, Prefs{BackgroundHint: "#ffffff", Theme: "Slate"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.BackgroundHint != "#ffffff" {
		t.Fatalf("BackgroundHint = %q, want %q", p.BackgroundHint, "#ffffff")
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestNextHint_Cycles(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"#000000", "#1e1e2e"},
		{"#FFFFFF", "#000000"},
		{"#abcdef", hintPalette[0]},
		{"", hintPalette[0]},
	}
	for _, tt := range tests {
		if got := NextHint(tt.current); got != tt.want {
			t.Errorf("NextHint(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestDefaultPath(t *testing.T) {
	if got := DefaultPath(); got != "~/.config/thumbview/prefs.toml" {
		t.Fatalf("DefaultPath = %q, want %q", got, "~/.config/thumbview/prefs.toml")
	}
}
