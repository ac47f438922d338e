// Package journal records environment switches and hotkey invocations to a
// storage backend without blocking the input path.
package journal

import (
	"context"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	storage "github.com/inference-gateway/envkeys/internal/infra/storage"
	zap "go.uber.org/zap"
)

// DefaultBufferSize is the number of entries queued before new ones are dropped
const DefaultBufferSize = 128

const writeTimeout = 5 * time.Second

// Writer is an ActivationListener and HotkeyObserver that appends journal
// entries from a single background goroutine
type Writer struct {
	store storage.JournalStorage
	log   *zap.Logger
	now   func() time.Time

	entries chan domain.JournalEntry
	done    chan struct{}

	mutex   sync.RWMutex
	closed  bool
	dropped int
}

var (
	_ domain.ActivationListener = (*Writer)(nil)
	_ domain.HotkeyObserver     = (*Writer)(nil)
)

// NewWriter starts a writer draining into store
func NewWriter(store storage.JournalStorage, bufferSize int, log *zap.Logger) *Writer {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &Writer{
		store:   store,
		log:     log,
		now:     time.Now,
		entries: make(chan domain.JournalEntry, bufferSize),
		done:    make(chan struct{}),
	}

	go w.run()
	return w
}

// OnEnvironmentActivated records an activation entry
func (w *Writer) OnEnvironmentActivated(previous, current string) {
	message := ""
	if previous != "" {
		message = "from " + previous
	}
	w.enqueue(domain.JournalEntry{
		Kind:        domain.JournalActivation,
		Environment: current,
		Message:     message,
	})
}

// OnHotkeyInvoked records a hotkey entry, or a hotkey_error entry when the
// action failed
func (w *Writer) OnHotkeyInvoked(environment string, shortcut domain.Shortcut, err error) {
	entry := domain.JournalEntry{
		Kind:        domain.JournalHotkey,
		Environment: environment,
		Token:       shortcut.Token,
	}
	if err != nil {
		entry.Kind = domain.JournalHotkeyError
		entry.Message = err.Error()
	}
	w.enqueue(entry)
}

// Dropped returns how many entries were discarded because the queue was full
func (w *Writer) Dropped() int {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dropped
}

// Close stops accepting entries, drains the queue and closes the storage
func (w *Writer) Close() error {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return nil
	}
	w.closed = true
	close(w.entries)
	w.mutex.Unlock()

	<-w.done
	return w.store.Close()
}

func (w *Writer) enqueue(entry domain.JournalEntry) {
	entry.ID = uuid.New().String()
	entry.Timestamp = w.now().UTC()

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return
	}

	select {
	case w.entries <- entry:
	default:
		w.dropped++
		w.log.Warn("journal queue full, dropping entry",
			zap.String("kind", string(entry.Kind)),
			zap.String("environment", entry.Environment))
	}
}

func (w *Writer) run() {
	defer close(w.done)

	for entry := range w.entries {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := w.store.Append(ctx, entry); err != nil {
			w.log.Error("failed to write journal entry",
				zap.String("id", entry.ID),
				zap.String("kind", string(entry.Kind)),
				zap.Error(err))
		}
		cancel()
	}
}
