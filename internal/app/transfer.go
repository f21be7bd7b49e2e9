package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/five82/thumbview/internal/attachment"
)

// TransferStore is the persistence a Transfers needs.
type TransferStore interface {
	SetTransferState(ctx context.Context, id string, state attachment.TransferState) error
	SetDataPath(ctx context.Context, id, path string) error
	Delete(ctx context.Context, id string) error
}

// Transfers moves attachment bytes from the incoming directory into the media
// directory and records progress on the attachment.
//
// A download looks for <media>/incoming/<id>. When present it is moved to
// <media>/<id> and the attachment is marked done; otherwise it is marked failed.
type Transfers struct {
	ctx      context.Context
	store    TransferStore
	mediaDir string
	log      *slog.Logger

	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// NewTransfers builds a Transfers bound to ctx.
func NewTransfers(ctx context.Context, store TransferStore, mediaDir string, logger *slog.Logger) *Transfers {
	return &Transfers{
		ctx:      ctx,
		store:    store,
		mediaDir: mediaDir,
		log:      logger,
		running:  make(map[string]struct{}),
	}
}

// Download starts fetching id in the background. A second call for an id
// that is still being fetched is ignored.
func (t *Transfers) Download(id string) {
	t.mu.Lock()
	if _, ok := t.running[id]; ok {
		t.mu.Unlock()
		return
	}
	t.running[id] = struct{}{}
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			t.mu.Lock()
			delete(t.running, id)
			t.mu.Unlock()
		}()
		if err := t.fetch(t.ctx, id); err != nil {
			t.log.Warn("attachment download failed", "attachment", id, "error", err)
		}
	}()
}

// Remove deletes the attachment record. The media file is left in place.
func (t *Transfers) Remove(id string) {
	if err := t.store.Delete(t.ctx, id); err != nil {
		t.log.Warn("remove attachment", "attachment", id, "error", err)
	}
}

// Wait blocks until every started download has finished.
func (t *Transfers) Wait() {
	t.wg.Wait()
}

func (t *Transfers) fetch(ctx context.Context, id string) error {
	if err := t.store.SetTransferState(ctx, id, attachment.TransferInProgress); err != nil {
		return fmt.Errorf("mark in progress: %w", err)
	}

	src := filepath.Join(t.mediaDir, "incoming", id)
	dst := filepath.Join(t.mediaDir, id)
	if err := moveFile(src, dst); err != nil {
		if stateErr := t.store.SetTransferState(ctx, id, attachment.TransferFailed); stateErr != nil {
			return errors.Join(err, fmt.Errorf("mark failed: %w", stateErr))
		}
		return err
	}

	if err := t.store.SetDataPath(ctx, id, id); err != nil {
		return fmt.Errorf("record data path: %w", err)
	}
	if err := t.store.SetTransferState(ctx, id, attachment.TransferDone); err != nil {
		return fmt.Errorf("mark done: %w", err)
	}
	t.log.Info("attachment downloaded", "attachment", id)
	return nil
}

func moveFile(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("stat incoming file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move incoming file: %w", err)
	}
	return nil
}
