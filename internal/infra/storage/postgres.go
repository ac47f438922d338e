package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	config "github.com/inference-gateway/envkeys/config"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	migrations "github.com/inference-gateway/envkeys/internal/infra/storage/migrations"
	_ "github.com/lib/pq"
)

// PostgresStorage implements JournalStorage using PostgreSQL
type PostgresStorage struct {
	db *sql.DB
}

func postgresDSN(cfg config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, cfg.SSLMode)
}

// NewPostgresStorage connects to PostgreSQL and applies pending migrations
func NewPostgresStorage(cfg config.PostgresConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", postgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("PostgreSQL connection test failed: %w\n\n"+
			"Failed to connect to PostgreSQL. Verify:\n"+
			"  - PostgreSQL server is running at %s:%d\n"+
			"  - Database '%s' exists\n"+
			"  - User '%s' has proper permissions", err, cfg.Host, cfg.Port, cfg.Database, cfg.Username)
	}

	runner := migrations.NewRunner(db, migrations.DialectPostgres)
	if _, err := runner.Migrate(ctx, migrations.PostgresJournal()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}

	return &PostgresStorage{db: db}, nil
}

// Append inserts one entry
func (s *PostgresStorage) Append(ctx context.Context, entry domain.JournalEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, kind, environment, token, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, string(entry.Kind), entry.Environment, entry.Token, entry.Message, entry.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first
func (s *PostgresStorage) List(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	query := `
		SELECT id, kind, environment, token, message, created_at
		FROM journal_entries
		ORDER BY seq DESC`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+" LIMIT $1", limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// Close closes the connection pool
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// Health pings the database
func (s *PostgresStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
