package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	config "github.com/inference-gateway/envkeys/config"
	domain "github.com/inference-gateway/envkeys/internal/domain"
)

// maxJSONLLine bounds a single journal line
const maxJSONLLine = 1024 * 1024

// JsonlStorage implements JournalStorage as an append-only JSONL file
type JsonlStorage struct {
	path   string
	file   *os.File
	mu     sync.RWMutex
	closed bool
}

// NewJsonlStorage opens (or creates) the JSONL journal file
func NewJsonlStorage(cfg config.JSONLConfig) (*JsonlStorage, error) {
	path := cfg.Path
	if path == "" {
		return nil, fmt.Errorf("jsonl journal requires a path")
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("journal file not writable: %w", err)
	}

	return &JsonlStorage{
		path: path,
		file: file,
	}, nil
}

// Path returns the resolved journal file path
func (s *JsonlStorage) Path() string {
	return s.path
}

// Append writes one entry as a single JSON line
func (s *JsonlStorage) Append(_ context.Context, entry domain.JournalEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}

	return nil
}

// List reads the file and returns up to limit entries, newest first.
// Malformed lines are skipped.
func (s *JsonlStorage) List(_ context.Context, limit int) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}
	defer func() { _ = file.Close() }()

	entries := make([]domain.JournalEntry, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLLine)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry domain.JournalEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}

	return newestFirst(entries, limit), nil
}

// Close closes the journal file
func (s *JsonlStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

// Health checks that the journal file is still present
func (s *JsonlStorage) Health(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("journal file unavailable: %w", err)
	}
	return nil
}
