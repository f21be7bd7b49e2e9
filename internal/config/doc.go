// Package config loads thumbview's TOML configuration.
//
// # Overview
//
// Load resolves the config path, falls back to defaults when the file is
// missing, and fills any empty field from the defaults. Paths accept a
// leading tilde.
//
// # File Resolution
//
//  1. An explicit path (the -config flag)
//  2. ~/.config/thumbview/config.toml
//
// A missing file is not an error: the defaults describe a working setup
// under ~/.local/share/thumbview.
//
// # Example config.toml
//
//	database_path   = "~/.local/share/thumbview/attachments.db"
//	media_dir       = "~/.local/share/thumbview/media"
//	log_path        = "~/.local/share/thumbview/thumbview.log"
//	log_level       = "debug"
//	log_json        = false
//	corner_radius   = 2
//	background_hint = "#1e1e2e"
//	poll_seconds    = 2
//	master_key      = "<64 hex chars>"
//	metrics_addr    = "127.0.0.1:9090"
//
// # Fields
//
//   - database_path: SQLite attachment database
//   - media_dir: where downloaded media lives; downloads are picked up from
//     its incoming/ subdirectory
//   - log_path, log_level, log_json: the slog log file (the TUI owns stdout)
//   - corner_radius: thumbnail corner radius in pixels, must be >= 0
//   - background_hint: color painted behind rounded corners; prefs override it
//   - poll_seconds: database refresh interval
//   - master_key: optional; when set, media files are expected to be sealed
//     with it (see package imageload)
//   - metrics_addr: optional; when set, Prometheus metrics are served on
//     /metrics at this address
//
// # Validation
//
// Strings are trimmed and blank values fall back to defaults. A negative
// corner_radius or malformed TOML is returned as an error.
package config
