package storage

import (
	"context"
	"errors"

	domain "github.com/inference-gateway/envkeys/internal/domain"
)

// ErrClosed is returned by a journal storage used after Close
var ErrClosed = errors.New("journal storage closed")

// JournalStorage persists activity journal entries
type JournalStorage interface {
	// Append records a single entry
	Append(ctx context.Context, entry domain.JournalEntry) error

	// List returns up to limit entries, newest first. A limit of zero or
	// less returns every entry.
	List(ctx context.Context, limit int) ([]domain.JournalEntry, error)

	// Close closes the storage connection
	Close() error

	// Health checks if the storage is healthy and reachable
	Health(ctx context.Context) error
}
