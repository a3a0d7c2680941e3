// Package sqldb persists a processing audit trail: one row per webhook
// invocation with its outcome. The trail is operational tooling only; the
// durable handoff to publication lives in the staging store.
package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/event"
)

// Store is a SQLite implementation of event.AuditRecorder.
type Store struct {
	db *sqlx.DB
}

var _ event.AuditRecorder = (*Store)(nil)

// New opens (or creates) the audit database at path.
func New(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS processed_events (
id TEXT PRIMARY KEY,
message_id TEXT NOT NULL,
product_id TEXT,
event_type TEXT,
outcome TEXT NOT NULL,
reason TEXT,
duration_ms INTEGER NOT NULL,
created_at TIMESTAMP NOT NULL
)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_processed_events_message_id
ON processed_events (message_id)`)
	return err
}

// Record inserts one audit row.
func (s *Store) Record(ctx context.Context, entry event.AuditEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processed_events
(id, message_id, product_id, event_type, outcome, reason, duration_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		entry.MessageID,
		entry.ProductID,
		entry.EventType,
		entry.Outcome,
		entry.Reason,
		entry.Duration.Milliseconds(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// ByMessageID returns the audit rows for a message id, newest first.
func (s *Store) ByMessageID(ctx context.Context, messageID string) ([]event.AuditEntry, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT message_id, product_id, event_type, outcome, reason, duration_ms
FROM processed_events WHERE message_id = ? ORDER BY created_at DESC`,
		messageID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []event.AuditEntry
	for rows.Next() {
		var (
			entry      event.AuditEntry
			durationMS int64
		)
		if err := rows.Scan(&entry.MessageID, &entry.ProductID, &entry.EventType,
			&entry.Outcome, &entry.Reason, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
