// Package attachment persists message attachments in SQLite.
//
// # Overview
//
// An attachment is the durable record behind a slide: where its bytes and
// preview live on disk, how far its transfer has progressed, and an optional
// cached thumbnail written back after a successful decode. Ids are random
// UUIDs assigned on insert.
//
// # Schema
//
//	attachments(
//	    id             TEXT PRIMARY KEY,
//	    message_id     TEXT NOT NULL,  -- indexed with seq
//	    seq            INTEGER,        -- order within the message
//	    content_type   TEXT,
//	    data_path      TEXT,           -- empty until downloaded
//	    thumbnail_path TEXT,
//	    transfer_state INTEGER,        -- Pending, InProgress, Done, Failed
//	    thumbnail      BLOB,           -- PNG cache, last writer wins
//	    created_at     INTEGER
//	)
//
// The database runs in WAL mode so the poller can read while a transfer or
// thumbnail write is in progress.
//
// # Interfaces
//
// Store is the subset the thumbnail surface and UI need: lookups, thumbnail
// write-back and transfer state. *DB implements it along with the write paths used by the
// poller and the transfer service.
//
// # Errors
//
// Lookups and updates of an unknown id return ErrNotFound; compare with
// errors.Is. Everything else is wrapped with the failing operation:
//
//	if _, err := db.Get(ctx, id); errors.Is(err, attachment.ErrNotFound) {
//		// removed since the last poll
//	}
package attachment
