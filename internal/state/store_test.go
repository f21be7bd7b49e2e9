package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/thumbview/internal/attachment"
)

func sampleMessages() []Message {
	return []Message{
		{ID: "m1", Attachments: []attachment.Attachment{
			{ID: "a1", MessageID: "m1", ContentType: "image/png", Thumbnail: []byte{1, 2}},
			{ID: "a2", MessageID: "m1", ContentType: "video/mp4"},
		}},
		{ID: "m2", Attachments: []attachment.Attachment{
			{ID: "a3", MessageID: "m2", ContentType: "audio/ogg"},
		}},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(sampleMessages(), nil)

	snap := s.Snapshot()
	if len(snap.Messages) != 2 || snap.Messages[0].ID != "m1" {
		t.Fatalf("snapshot messages = %#v, want 2 messages", snap.Messages)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Messages[0].Attachments[0].ID = "changed"
	snap.Messages[0].Attachments[0].Thumbnail[0] = 9
	snap2 := s.Snapshot()
	if got := snap2.Messages[0].Attachments[0]; got.ID != "a1" || got.Thumbnail[0] != 1 {
		t.Fatalf("Snapshot should deep clone attachments; got %#v", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(sampleMessages(), nil)

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if len(snap.Messages) != 2 {
		t.Fatalf("messages changed on error: got %#v", snap.Messages)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("cloned error should still wrap the original")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(nil, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestSnapshot_Lookups(t *testing.T) {
	var s Store
	s.Update(sampleMessages(), nil)
	snap := s.Snapshot()

	m, ok := snap.Find("m2")
	if !ok || len(m.Attachments) != 1 {
		t.Fatalf("Find(m2) = %#v, %v", m, ok)
	}
	if _, ok := snap.Find("missing"); ok {
		t.Fatal("Find(missing) should fail")
	}

	a, ok := snap.Attachment("a2")
	if !ok || a.MessageID != "m1" {
		t.Fatalf("Attachment(a2) = %#v, %v", a, ok)
	}

	deck := m.Deck()
	if s := deck.ThumbnailSlide(); s == nil || s.ID() != "a3" {
		t.Fatalf("deck thumbnail slide = %v, want a3", s)
	}
}
