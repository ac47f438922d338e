package notify

import (
	"sync"
	"time"

	truncate "github.com/muesli/reflow/truncate"
)

// DefaultToastDuration is how long a toast stays visible
const DefaultToastDuration = 3 * time.Second

// Toast holds the latest message for a UI to render until it expires
type Toast struct {
	duration time.Duration
	now      func() time.Time

	mutex   sync.RWMutex
	message string
	expires time.Time
}

// NewToast creates a toast whose messages last for duration
func NewToast(duration time.Duration) *Toast {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toast{
		duration: duration,
		now:      time.Now,
	}
}

// Show replaces the current message and restarts its lifetime
func (t *Toast) Show(message string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.message = message
	t.expires = t.now().Add(t.duration)
}

// Current returns the visible message, or false once it has expired
func (t *Toast) Current() (string, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if t.message == "" || !t.now().Before(t.expires) {
		return "", false
	}
	return t.message, true
}

// Render returns the visible message cut to width cells, or ""
func (t *Toast) Render(width int) string {
	message, ok := t.Current()
	if !ok {
		return ""
	}
	if width <= 0 {
		return message
	}
	return truncate.StringWithTail(message, uint(width), "…")
}

// Duration returns the lifetime of a message
func (t *Toast) Duration() time.Duration {
	return t.duration
}
