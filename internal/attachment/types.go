package attachment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when no attachment matches the requested id.
var ErrNotFound = errors.New("attachment not found")

// TransferState tracks how far an attachment's bytes have been fetched.
type TransferState int

const (
	TransferPending TransferState = iota
	TransferInProgress
	TransferDone
	TransferFailed
)

func (s TransferState) String() string {
	switch s {
	case TransferPending:
		return "pending"
	case TransferInProgress:
		return "in_progress"
	case TransferDone:
		return "done"
	case TransferFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ParseTransferState accepts the String form of a state.
func ParseTransferState(s string) (TransferState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return TransferPending, nil
	case "in_progress", "in-progress", "progress":
		return TransferInProgress, nil
	case "done":
		return TransferDone, nil
	case "failed":
		return TransferFailed, nil
	default:
		return 0, fmt.Errorf("unknown transfer state %q", s)
	}
}

// Attachment is the durable record behind a slide.
type Attachment struct {
	ID            string
	MessageID     string
	ContentType   string
	DataPath      string // empty until the bytes exist locally
	ThumbnailPath string
	TransferState TransferState
	Thumbnail     []byte // cached decoded thumbnail, PNG encoded
	CreatedAt     time.Time
}

// Store is the slice of attachment persistence the viewer depends on.
type Store interface {
	Get(ctx context.Context, id string) (Attachment, error)
	ListByMessage(ctx context.Context, messageID string) ([]Attachment, error)
	SetThumbnail(ctx context.Context, id string, png []byte) error
	SetTransferState(ctx context.Context, id string, state TransferState) error
}
