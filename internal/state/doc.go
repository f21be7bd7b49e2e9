// Package state provides thread-safe state management for thumbview.
//
// The Store is the meeting point between the background poller, which reads
// messages and their attachments from the database, and the UI, which reads
// snapshots on its own schedule:
//
//	Producer (Poller):              Consumer (UI):
//	┌─────────────────┐            ┌──────────────────┐
//	│ MessageIDs()    │            │                  │
//	│ ListByMessage() │            │                  │
//	│      ↓          │            │                  │
//	│ store.Update()  │───────────→│ store.Snapshot() │
//	│      ↓          │  (mutex)   │      ↓           │
//	│  repeat...      │            │  reconcile view  │
//	└─────────────────┘            └──────────────────┘
//
// Update replaces the whole message list on success. On failure the previous
// messages are kept and the error is recorded, so the UI keeps showing the
// last good data while reporting the problem.
//
// Snapshot returns deep copies; callers may mutate what they get back.
//
// The zero Store is ready to use.
package state
