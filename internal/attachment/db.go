package attachment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
)

const defaultTimeout = 5 * time.Second

// DB is a SQLite-backed Store.
type DB struct {
	db *sql.DB
}

var _ Store = (*DB)(nil)

// Open opens (creating if needed) the attachment database at path.
func Open(ctx context.Context, path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	d := &DB{db: db}
	if err := d.initialize(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return d, nil
}

func (d *DB) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS attachments (
		id TEXT PRIMARY KEY,
		message_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		content_type TEXT NOT NULL,
		data_path TEXT NOT NULL DEFAULT '',
		thumbnail_path TEXT NOT NULL DEFAULT '',
		transfer_state INTEGER NOT NULL DEFAULT 0,
		thumbnail BLOB,
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_attachments_message ON attachments(message_id, seq);
	`
	_, err := d.db.ExecContext(ctx, schema)
	return err
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// Insert stores a new attachment, assigning an id when a is missing one.
// Attachments of a message keep their insertion order.
func (d *DB) Insert(ctx context.Context, a Attachment) (Attachment, error) {
	if a.MessageID == "" {
		return Attachment{}, fmt.Errorf("insert attachment: message id is empty")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO attachments (id, message_id, seq, content_type, data_path, thumbnail_path, transfer_state, thumbnail, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM attachments WHERE message_id = ?), ?, ?, ?, ?, ?, ?)`,
		a.ID, a.MessageID, a.MessageID, a.ContentType, a.DataPath, a.ThumbnailPath,
		int(a.TransferState), a.Thumbnail, a.CreatedAt.Unix())
	if err != nil {
		return Attachment{}, fmt.Errorf("insert attachment: %w", err)
	}
	return a, nil
}

// Get returns the attachment with the given id.
func (d *DB) Get(ctx context.Context, id string) (Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := d.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	a, err := scanAttachment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Attachment{}, fmt.Errorf("get attachment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Attachment{}, fmt.Errorf("get attachment %s: %w", id, err)
	}
	return a, nil
}

// ListByMessage returns a message's attachments in insertion order.
func (d *DB) ListByMessage(ctx context.Context, messageID string) ([]Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, selectColumns+` WHERE message_id = ? ORDER BY seq`, messageID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var out []Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return out, nil
}

// MessageIDs returns every message id that has attachments, oldest first.
func (d *DB) MessageIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT message_id FROM attachments
		GROUP BY message_id
		ORDER BY MIN(created_at), message_id`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan message id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetThumbnail overwrites the cached thumbnail bitmap. Last writer wins.
func (d *DB) SetThumbnail(ctx context.Context, id string, png []byte) error {
	return d.update(ctx, "set thumbnail", `UPDATE attachments SET thumbnail = ? WHERE id = ?`, png, id)
}

// SetTransferState records a new transfer state.
func (d *DB) SetTransferState(ctx context.Context, id string, state TransferState) error {
	return d.update(ctx, "set transfer state", `UPDATE attachments SET transfer_state = ? WHERE id = ?`, int(state), id)
}

// SetDataPath records where the attachment's bytes live locally.
func (d *DB) SetDataPath(ctx context.Context, id, path string) error {
	return d.update(ctx, "set data path", `UPDATE attachments SET data_path = ? WHERE id = ?`, path, id)
}

// Delete removes an attachment.
func (d *DB) Delete(ctx context.Context, id string) error {
	return d.update(ctx, "delete attachment", `DELETE FROM attachments WHERE id = ?`, id)
}

func (d *DB) update(ctx context.Context, op, query string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

const selectColumns = `
	SELECT id, message_id, content_type, data_path, thumbnail_path, transfer_state, thumbnail, created_at
	FROM attachments`

type scanner interface {
	Scan(dest ...any) error
}

func scanAttachment(s scanner) (Attachment, error) {
	var (
		a       Attachment
		state   int
		created int64
	)
	if err := s.Scan(&a.ID, &a.MessageID, &a.ContentType, &a.DataPath, &a.ThumbnailPath, &state, &a.Thumbnail, &created); err != nil {
		return Attachment{}, err
	}
	a.TransferState = TransferState(state)
	a.CreatedAt = time.Unix(created, 0)
	return a, nil
}
