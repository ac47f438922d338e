package storage

import (
	"context"
	"sync"

	domain "github.com/inference-gateway/envkeys/internal/domain"
)

// MemoryStorage implements JournalStorage in memory.
// Entries are lost when the process exits.
type MemoryStorage struct {
	entries  []domain.JournalEntry
	capacity int
	closed   bool
	mutex    sync.RWMutex
}

// NewMemoryStorage creates an in-memory journal keeping at most capacity
// entries; zero keeps everything
func NewMemoryStorage(capacity int) *MemoryStorage {
	return &MemoryStorage{
		entries:  make([]domain.JournalEntry, 0),
		capacity: capacity,
	}
}

// Append records a single entry, dropping the oldest one when full
func (m *MemoryStorage) Append(_ context.Context, entry domain.JournalEntry) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.entries = append(m.entries, entry)
	if m.capacity > 0 && len(m.entries) > m.capacity {
		m.entries = m.entries[len(m.entries)-m.capacity:]
	}

	return nil
}

// List returns up to limit entries, newest first
func (m *MemoryStorage) List(_ context.Context, limit int) ([]domain.JournalEntry, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	return newestFirst(m.entries, limit), nil
}

// Close drops every entry
func (m *MemoryStorage) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.closed = true
	m.entries = nil
	return nil
}

// Health always succeeds for an open memory storage
func (m *MemoryStorage) Health(_ context.Context) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.closed {
		return ErrClosed
	}
	return nil
}

// newestFirst returns a reversed copy of the last limit entries of an
// oldest-first slice
func newestFirst(entries []domain.JournalEntry, limit int) []domain.JournalEntry {
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]domain.JournalEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, entries[i])
	}
	return result
}
