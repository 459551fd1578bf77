package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/actionconsole/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/actionconsole/internal/services/console/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed session values.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a session store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get loads one session value.
func (s *Store) Get(ctx context.Context, sessionID, key string) ([]byte, bool, error) {
	if err := s.check(sessionID, key); err != nil {
		return nil, false, err
	}
	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM session_values WHERE session_id = ? AND value_key = ?`,
		sessionID, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get session value: %w", err)
	}
	return payload, true, nil
}

// Set upserts one session value.
func (s *Store) Set(ctx context.Context, sessionID, key string, value []byte) error {
	if err := s.check(sessionID, key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO session_values (session_id, value_key, payload, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(session_id, value_key) DO UPDATE SET
		   payload = excluded.payload,
		   updated_at = excluded.updated_at`,
		sessionID, key, value, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("set session value: %w", err)
	}
	return nil
}

// Delete removes one session value. Missing values are not an error.
func (s *Store) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.check(sessionID, key); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM session_values WHERE session_id = ? AND value_key = ?`,
		sessionID, key,
	); err != nil {
		return fmt.Errorf("delete session value: %w", err)
	}
	return nil
}

// DeleteOlderThan removes values last written before cutoff and reports how
// many were removed.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM session_values WHERE updated_at < ?`,
		cutoff.UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("prune session values: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune session values: %w", err)
	}
	return removed, nil
}

func (s *Store) check(sessionID, key string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("session key is required")
	}
	return nil
}
