package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"
)

// Dialect selects the SQL flavour of a migration runner
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Migration is one versioned schema change
type Migration struct {
	Version     string
	Description string
	UpSQL       string
}

// MigrationStatus reports whether a known migration has been applied
type MigrationStatus struct {
	Version     string
	Description string
	Applied     bool
}

// Runner applies migrations and tracks them in schema_migrations
type Runner struct {
	db      *sql.DB
	dialect Dialect
}

// NewRunner creates a migration runner for db
func NewRunner(db *sql.DB, dialect Dialect) *Runner {
	return &Runner{db: db, dialect: dialect}
}

// EnsureTable creates the schema_migrations table if it does not exist
func (r *Runner) EnsureTable(ctx context.Context) error {
	var timestampType string
	switch r.dialect {
	case DialectSQLite:
		timestampType = "DATETIME"
	case DialectPostgres:
		timestampType = "TIMESTAMP WITH TIME ZONE"
	default:
		return fmt.Errorf("unsupported dialect: %s", r.dialect)
	}

	createSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at %s NOT NULL
		)`, timestampType)

	if _, err := r.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}

	return nil
}

// Applied returns the set of applied migration versions
func (r *Runner) Applied(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// Apply runs one migration and records it in a single transaction
func (r *Runner) Apply(ctx context.Context, migration Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, migration.UpSQL); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
	}

	recordSQL := "INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)"
	if r.dialect == DialectPostgres {
		recordSQL = "INSERT INTO schema_migrations (version, description, applied_at) VALUES ($1, $2, $3)"
	}

	if _, err := tx.ExecContext(ctx, recordSQL, migration.Version, migration.Description, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Version, err)
	}

	return nil
}

// Migrate applies every pending migration in version order and returns how
// many were applied
func (r *Runner) Migrate(ctx context.Context, migrations []Migration) (int, error) {
	if err := r.EnsureTable(ctx); err != nil {
		return 0, err
	}

	applied, err := r.Applied(ctx)
	if err != nil {
		return 0, err
	}

	pending := sortedByVersion(migrations)

	count := 0
	for _, migration := range pending {
		if applied[migration.Version] {
			continue
		}

		if err := r.Apply(ctx, migration); err != nil {
			return count, fmt.Errorf("migration %s failed: %w", migration.Version, err)
		}
		count++
	}

	return count, nil
}

// Status reports the applied state of every known migration
func (r *Runner) Status(ctx context.Context, migrations []Migration) ([]MigrationStatus, error) {
	if err := r.EnsureTable(ctx); err != nil {
		return nil, err
	}

	applied, err := r.Applied(ctx)
	if err != nil {
		return nil, err
	}

	status := make([]MigrationStatus, 0, len(migrations))
	for _, migration := range sortedByVersion(migrations) {
		status = append(status, MigrationStatus{
			Version:     migration.Version,
			Description: migration.Description,
			Applied:     applied[migration.Version],
		})
	}

	return status, nil
}

func sortedByVersion(migrations []Migration) []Migration {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})
	return sorted
}
