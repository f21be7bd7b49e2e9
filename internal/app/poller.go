package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/thumbview/internal/attachment"
	"github.com/five82/thumbview/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// MessageSource lists messages and their attachments.
type MessageSource interface {
	MessageIDs(ctx context.Context) ([]string, error)
	ListByMessage(ctx context.Context, messageID string) ([]attachment.Attachment, error)
}

// StartPoller launches a background goroutine that refreshes the store. Each
// consecutive failure doubles the wait, up to maxBackoff. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, src MessageSource, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if err := refresh(ctx, store, src); err != nil && ctx.Err() == nil {
				logger.Warn("attachment poll failed", "error", err)
			}
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, src MessageSource) error {
	ids, err := src.MessageIDs(ctx)
	if err != nil {
		err = fmt.Errorf("list messages: %w", err)
		store.Update(nil, err)
		return err
	}
	messages := make([]state.Message, 0, len(ids))
	for _, id := range ids {
		atts, err := src.ListByMessage(ctx, id)
		if err != nil {
			err = fmt.Errorf("list attachments for %s: %w", id, err)
			store.Update(nil, err)
			return err
		}
		messages = append(messages, state.Message{ID: id, Attachments: atts})
	}
	store.Update(messages, nil)
	return nil
}

func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures && d < maxBackoff; i++ {
		d *= 2
	}
	return min(d, maxBackoff)
}
