package storage

import (
	"fmt"

	config "github.com/inference-gateway/envkeys/config"
)

// NewStorage creates a new journal storage based on the provided configuration
func NewStorage(cfg config.JournalConfig) (JournalStorage, error) {
	switch cfg.Type {
	case config.JournalMemory, "":
		return NewMemoryStorage(0), nil
	case config.JournalJSONL:
		return NewJsonlStorage(cfg.JSONL)
	case config.JournalSQLite:
		return NewSQLiteStorage(cfg.SQLite)
	case config.JournalPostgres:
		return NewPostgresStorage(cfg.Postgres)
	case config.JournalRedis:
		return NewRedisStorage(cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported journal type: %s", cfg.Type)
	}
}
