package ui

import (
	"fmt"
	"sync"
	"time"

	domain "github.com/inference-gateway/envkeys/internal/domain"
)

// DefaultActivitySize is how many lines the activity feed keeps
const DefaultActivitySize = 5

// Activity keeps the most recent switches and hotkey invocations for display
type Activity struct {
	size int
	now  func() time.Time

	mutex sync.Mutex
	lines []string
}

var (
	_ domain.ActivationListener = (*Activity)(nil)
	_ domain.HotkeyObserver     = (*Activity)(nil)
)

// NewActivity creates a feed holding up to size lines
func NewActivity(size int) *Activity {
	if size <= 0 {
		size = DefaultActivitySize
	}
	return &Activity{size: size, now: time.Now}
}

// OnEnvironmentActivated records an environment switch
func (a *Activity) OnEnvironmentActivated(previous, current string) {
	if previous == "" {
		a.add(fmt.Sprintf("activated %s", current))
		return
	}
	a.add(fmt.Sprintf("switched %s -> %s", previous, current))
}

// OnHotkeyInvoked records a hotkey invocation
func (a *Activity) OnHotkeyInvoked(env string, shortcut domain.Shortcut, err error) {
	if err != nil {
		a.add(fmt.Sprintf("%s in %s failed: %v", shortcut.Token, env, err))
		return
	}
	a.add(fmt.Sprintf("%s in %s", shortcut.Token, env))
}

// Lines returns the feed, oldest first
func (a *Activity) Lines() []string {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	lines := make([]string, len(a.lines))
	copy(lines, a.lines)
	return lines
}

func (a *Activity) add(line string) {
	stamped := a.now().Format("15:04:05") + " " + line

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.lines = append(a.lines, stamped)
	if over := len(a.lines) - a.size; over > 0 {
		a.lines = append(a.lines[:0], a.lines[over:]...)
	}
}
