package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/thumbview/internal/attachment"
	"github.com/five82/thumbview/internal/config"
	"github.com/five82/thumbview/internal/imageload"
	"github.com/five82/thumbview/internal/logging"
	"github.com/five82/thumbview/internal/prefs"
	"github.com/five82/thumbview/internal/state"
	"github.com/five82/thumbview/internal/ui"
)

// Options configure the thumbview application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/thumbview/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
}

// Run boots the thumbview TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := logging.OpenFile(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logging.Initialize(logFile, cfg.LogLevel, cfg.LogJSON)
	log := logging.For("app")

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Warn("load prefs", "error", err)
	}

	key, err := imageload.ParseMasterKey(cfg.MasterKeyHex)
	if err != nil {
		return fmt.Errorf("parse master key: %w", err)
	}

	db, err := attachment.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open attachment database: %w", err)
	}
	defer db.Close()

	if cfg.MetricsAddr != "" {
		bound, err := startMetricsServer(ctx, cfg.MetricsAddr, logging.For("metrics"))
		if err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		log.Info("serving metrics", "addr", bound)
	}

	store := &state.Store{}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Populate the store before the UI starts, then keep it fresh.
	if err := refresh(ctx, store, db); err != nil {
		log.Warn("initial attachment poll failed", "error", err)
	}
	StartPoller(ctx, store, db, interval, logging.For("poller"))

	transfers := NewTransfers(ctx, db, cfg.MediaDir, logging.For("transfers"))
	defer transfers.Wait()

	hint := cfg.BackgroundHint
	if userPrefs.BackgroundHint != "" {
		hint = userPrefs.BackgroundHint
	}

	log.Info("starting thumbview", "database", cfg.DatabasePath, "media", cfg.MediaDir, "poll", interval)
	return ui.Run(ui.Options{
		Context:        ctx,
		Store:          store,
		Attachments:    db,
		Actions:        transfers,
		MediaDir:       cfg.MediaDir,
		MasterKey:      key,
		CornerRadius:   cfg.CornerRadius,
		BackgroundHint: hint,
		PollTick:       interval,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
		LogPath:        cfg.LogPath,
	})
}
