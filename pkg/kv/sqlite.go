package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	getValueStatement = `
	SELECT value
	FROM kv
	WHERE key = ?
	`

	putValueStatement = `
	INSERT INTO kv (key, value, revision, updated_at)
	VALUES (?, ?, ?, unixepoch('subsec'))
	ON CONFLICT(key) DO UPDATE
	SET value = excluded.value, revision = excluded.revision, updated_at = excluded.updated_at
	`

	getRevisionStatement = `
	SELECT revision, updated_at
	FROM kv
	WHERE key = ?
	`
)

// Revision identifies one write of a key.
type Revision struct {
	ID        uuid.UUID `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SQLite stores values in the kv table created by the db package schema.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open, schema-initialized database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getValueStatement, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key '%s': %w", key, err)
	}
	return []byte(value), true, nil
}

// Put writes value under key and stamps a fresh revision.
func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, putValueStatement, key, string(value), uuid.New())
	if err != nil {
		return fmt.Errorf("failed to write key '%s': %w", key, err)
	}
	return nil
}

// Revision reports the revision of the last write to key.
func (s *SQLite) Revision(ctx context.Context, key string) (Revision, bool, error) {
	var (
		rev       Revision
		updatedAt float64
	)
	err := s.db.QueryRowContext(ctx, getRevisionStatement, key).Scan(&rev.ID, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Revision{}, false, nil
		}
		return Revision{}, false, fmt.Errorf("failed to read revision of key '%s': %w", key, err)
	}
	rev.UpdatedAt = unixFloatToTime(updatedAt)
	return rev, true, nil
}

func unixFloatToTime(ts float64) time.Time {
	sec := int64(ts)
	return time.Unix(sec, int64((ts-float64(sec))*1e9))
}
