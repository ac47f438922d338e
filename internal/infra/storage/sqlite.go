package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	config "github.com/inference-gateway/envkeys/config"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	migrations "github.com/inference-gateway/envkeys/internal/infra/storage/migrations"
	_ "modernc.org/sqlite"
)

// SQLiteStorage implements JournalStorage using SQLite
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLite journal and applies pending migrations
func NewSQLiteStorage(cfg config.SQLiteConfig) (*SQLiteStorage, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite journal requires a path")
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runner := migrations.NewRunner(db, migrations.DialectSQLite)
	if _, err := runner.Migrate(ctx, migrations.SQLiteJournal()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}

	return &SQLiteStorage{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Append inserts one entry
func (s *SQLiteStorage) Append(ctx context.Context, entry domain.JournalEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, kind, environment, token, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, string(entry.Kind), entry.Environment, entry.Token, entry.Message,
		entry.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first
func (s *SQLiteStorage) List(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, environment, token, message, created_at
		FROM journal_entries
		ORDER BY seq DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// Close closes the database
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Health pings the database
func (s *SQLiteStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// scanEntries reads journal rows selected as
// id, kind, environment, token, message, created_at
func scanEntries(rows *sql.Rows) ([]domain.JournalEntry, error) {
	entries := make([]domain.JournalEntry, 0)

	for rows.Next() {
		var (
			entry     domain.JournalEntry
			kind      string
			createdAt string
		)

		if err := rows.Scan(&entry.ID, &kind, &entry.Environment, &entry.Token, &entry.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid journal timestamp %q: %w", createdAt, err)
		}

		entry.Kind = domain.JournalKind(kind)
		entry.Timestamp = ts
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
