// Package prefs handles thumbview user preferences persistence.
// Preferences are stored in ~/.config/thumbview/prefs.toml.
package prefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences that override config at runtime.
type Prefs struct {
	// BackgroundHint is the color painted behind rounded thumbnail corners.
	// Empty means "use the config value".
	BackgroundHint string `toml:"background_hint"`
	// Theme is the UI color theme name.
	Theme string `toml:"theme"`
}

const defaultPrefsPath = "~/.config/thumbview/prefs.toml"

// hintPalette is the cycle order for the background hint toggle.
var hintPalette = []string{"#000000", "#1e1e2e", "#282a36", "#ffffff"}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// NextHint returns the palette entry after current, wrapping around.
// Unknown values restart the cycle.
func NextHint(current string) string {
	for i, h := range hintPalette {
		if strings.EqualFold(h, strings.TrimSpace(current)) {
			return hintPalette[(i+1)%len(hintPalette)]
		}
	}
	return hintPalette[0]
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	var prefs Prefs

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{}, nil // Graceful degradation
	}
	prefs.BackgroundHint = strings.TrimSpace(prefs.BackgroundHint)
	prefs.Theme = strings.TrimSpace(prefs.Theme)

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
