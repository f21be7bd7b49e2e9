package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/thumbview/internal/attachment"
	"github.com/five82/thumbview/internal/slide"
)

// Message is one message and its attachments in display order.
type Message struct {
	ID          string
	Attachments []attachment.Attachment
}

// Deck builds the message's slide deck.
func (m Message) Deck() *slide.Deck {
	return slide.NewDeck(m.Attachments)
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Messages            []Message
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the attachment database has failed repeated polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Find returns the message with the given id.
func (s Snapshot) Find(id string) (Message, bool) {
	for _, m := range s.Messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// Attachment finds an attachment by id across all messages.
func (s Snapshot) Attachment(id string) (attachment.Attachment, bool) {
	for _, m := range s.Messages {
		for _, a := range m.Attachments {
			if a.ID == id {
				return a, true
			}
		}
	}
	return attachment.Attachment{}, false
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(messages []Message, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Messages = cloneMessages(messages)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Messages = cloneMessages(s.snapshot.Messages)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneMessages(msgs []Message) []Message {
	if len(msgs) == 0 {
		return nil
	}
	dup := make([]Message, len(msgs))
	for i, m := range msgs {
		dup[i] = Message{ID: m.ID, Attachments: cloneAttachments(m.Attachments)}
	}
	return dup
}

func cloneAttachments(atts []attachment.Attachment) []attachment.Attachment {
	if len(atts) == 0 {
		return nil
	}
	dup := make([]attachment.Attachment, len(atts))
	copy(dup, atts)
	for i := range dup {
		if dup[i].Thumbnail != nil {
			dup[i].Thumbnail = append([]byte(nil), dup[i].Thumbnail...)
		}
	}
	return dup
}
