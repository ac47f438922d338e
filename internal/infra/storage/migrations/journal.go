package migrations

// SQLiteJournal returns the journal schema migrations for SQLite
func SQLiteJournal() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "Journal entries table",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS journal_entries (
					seq INTEGER PRIMARY KEY AUTOINCREMENT,
					id TEXT NOT NULL UNIQUE,
					kind TEXT NOT NULL,
					environment TEXT NOT NULL,
					token TEXT NOT NULL DEFAULT '',
					message TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL
				);
				CREATE INDEX IF NOT EXISTS idx_journal_entries_created_at ON journal_entries(created_at DESC);
			`,
		},
		{
			Version:     "002",
			Description: "Index journal entries by environment",
			UpSQL: `
				CREATE INDEX IF NOT EXISTS idx_journal_entries_environment ON journal_entries(environment);
			`,
		},
	}
}

// PostgresJournal returns the journal schema migrations for PostgreSQL
func PostgresJournal() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "Journal entries table",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS journal_entries (
					seq BIGSERIAL PRIMARY KEY,
					id VARCHAR(64) NOT NULL UNIQUE,
					kind VARCHAR(32) NOT NULL,
					environment TEXT NOT NULL,
					token TEXT NOT NULL DEFAULT '',
					message TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMP WITH TIME ZONE NOT NULL
				);
				CREATE INDEX IF NOT EXISTS idx_journal_entries_created_at ON journal_entries(created_at DESC);
			`,
		},
		{
			Version:     "002",
			Description: "Index journal entries by environment",
			UpSQL: `
				CREATE INDEX IF NOT EXISTS idx_journal_entries_environment ON journal_entries(environment);
			`,
		},
	}
}
