// Package storage holds the client's local persisted state: a small sqlite
// key/value table whose only well-known key is the resolved user identifier.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/decentrix/decentrix/internal/dbx"
)

const identifierKey = "user_id"

const schema = `
CREATE TABLE IF NOT EXISTS profile (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the local profile database at dsn.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("profile db open error: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("profile db init error: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Identifier(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM profile WHERE key = ?`, identifierKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read profile[%s]: %w", identifierKey, err)
	}
	return value, nil
}

// SetIdentifier stores id unless one is already present. The check and the
// insert run in one transaction, so two concurrent resolves cannot overwrite
// each other.
func (s *SQLiteStore) SetIdentifier(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var existing string
		err := tx.QueryRowContext(ctx, `SELECT value FROM profile WHERE key = ?`, identifierKey).Scan(&existing)
		if err == nil && existing != "" {
			return nil
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to read profile[%s]: %w", identifierKey, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profile (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, identifierKey, id); err != nil {
			return fmt.Errorf("failed to set profile[%s]: %w", identifierKey, err)
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profile WHERE key = ?`, identifierKey)
	if err != nil {
		return fmt.Errorf("failed to clear profile[%s]: %w", identifierKey, err)
	}
	return nil
}
