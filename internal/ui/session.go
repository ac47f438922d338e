// Package ui runs the envkeys terminal interface on bubbletea or tcell.
package ui

import (
	"fmt"
	"sync"
	"time"

	domain "github.com/inference-gateway/envkeys/internal/domain"
	notify "github.com/inference-gateway/envkeys/internal/notify"
)

// RefreshInterval is how often the views redraw to pick up timer-driven
// changes such as buffer expiry and toast timeouts
const RefreshInterval = 250 * time.Millisecond

// Host is the part of the environments manager the views read
type Host interface {
	GetCurrentEnvironmentName() (string, bool)
	Environments() []domain.Environment
	Buffer() string
}

// Quitter lets actions and views end the session exactly once
type Quitter struct {
	once sync.Once
	done chan struct{}
}

// NewQuitter creates an open quitter
func NewQuitter() *Quitter {
	return &Quitter{done: make(chan struct{})}
}

// Quit ends the session. Later calls do nothing.
func (q *Quitter) Quit() {
	q.once.Do(func() { close(q.done) })
}

// Done is closed once Quit has been called
func (q *Quitter) Done() <-chan struct{} {
	return q.done
}

// Session is everything a view renders
type Session struct {
	Host       Host
	Toast      *notify.Toast
	Activity   *Activity
	Quitter    *Quitter
	ShowBuffer bool
}

// Snapshot is the state shown by one frame
type Snapshot struct {
	Active       string
	Environments []domain.Environment
	Buffer       string
	Toast        string
	Activity     []string
}

// Snapshot captures the current state of the session
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{}
	if s.Host != nil {
		snap.Active, _ = s.Host.GetCurrentEnvironmentName()
		snap.Environments = s.Host.Environments()
		if s.ShowBuffer {
			snap.Buffer = s.Host.Buffer()
		}
	}
	if s.Toast != nil {
		snap.Toast, _ = s.Toast.Current()
	}
	if s.Activity != nil {
		snap.Activity = s.Activity.Lines()
	}
	return snap
}

// Lines renders snap as plain text, one entry per screen row
func (snap Snapshot) Lines() []string {
	lines := []string{"envkeys"}

	if len(snap.Environments) == 0 {
		lines = append(lines, "  no environments configured")
	}
	for _, env := range snap.Environments {
		marker := "○"
		if env.IsActive {
			marker = "●"
		}
		lines = append(lines, fmt.Sprintf("  %s %s [%s] %d hotkeys", marker, env.Name, env.Tag, len(env.Shortcuts)))
	}

	lines = append(lines, "")
	if snap.Buffer != "" {
		lines = append(lines, "buffer: "+snap.Buffer)
	}
	if snap.Toast != "" {
		lines = append(lines, snap.Toast)
	}
	for _, line := range snap.Activity {
		lines = append(lines, "  "+line)
	}
	return lines
}
