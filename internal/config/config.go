package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything thumbview needs to boot.
type Config struct {
	DatabasePath   string
	MediaDir       string
	LogPath        string
	LogLevel       string
	LogJSON        bool
	CornerRadius   int
	BackgroundHint string
	PollInterval   time.Duration
	MasterKeyHex   string
	// MetricsAddr serves Prometheus metrics when set, e.g. "127.0.0.1:9090".
	MetricsAddr string
}

const (
	defaultConfigPath     = "~/.config/thumbview/config.toml"
	defaultDataDir        = "~/.local/share/thumbview"
	defaultLogLevel       = "info"
	defaultCornerRadius   = 2
	defaultBackgroundHint = "#000000"
	defaultPollInterval   = 2 * time.Second
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DatabasePath   string `toml:"database_path"`
		MediaDir       string `toml:"media_dir"`
		LogPath        string `toml:"log_path"`
		LogLevel       string `toml:"log_level"`
		LogJSON        bool   `toml:"log_json"`
		CornerRadius   *int   `toml:"corner_radius"`
		BackgroundHint string `toml:"background_hint"`
		PollSeconds    int    `toml:"poll_seconds"`
		MasterKey      string `toml:"master_key"`
		MetricsAddr    string `toml:"metrics_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.DatabasePath); v != "" {
		cfg.DatabasePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.MediaDir); v != "" {
		cfg.MediaDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.LogJSON = raw.LogJSON
	if raw.CornerRadius != nil {
		if *raw.CornerRadius < 0 {
			return Config{}, fmt.Errorf("parse config: corner_radius must be >= 0, got %d", *raw.CornerRadius)
		}
		cfg.CornerRadius = *raw.CornerRadius
	}
	if v := strings.TrimSpace(raw.BackgroundHint); v != "" {
		cfg.BackgroundHint = v
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	cfg.MasterKeyHex = strings.TrimSpace(raw.MasterKey)
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	return cfg, nil
}

func defaults() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		DatabasePath:   filepath.Join(dataDir, "attachments.db"),
		MediaDir:       filepath.Join(dataDir, "media"),
		LogPath:        filepath.Join(dataDir, "thumbview.log"),
		LogLevel:       defaultLogLevel,
		CornerRadius:   defaultCornerRadius,
		BackgroundHint: defaultBackgroundHint,
		PollInterval:   defaultPollInterval,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
