// Package notify provides the Notifier implementations shown when an
// environment is activated.
package notify

import (
	domain "github.com/inference-gateway/envkeys/internal/domain"
	zap "go.uber.org/zap"
)

// AppName titles desktop and chat notifications
const AppName = "envkeys"

// Nop discards every message
type Nop struct{}

// Show does nothing
func (Nop) Show(string) {}

// LogNotifier writes messages to a zap logger at info level
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a notifier that logs through log
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

// Show logs message
func (n *LogNotifier) Show(message string) {
	n.log.Info("notification", zap.String("message", message))
}

// Multi fans a message out to several notifiers in order
type Multi []domain.Notifier

// NewMulti drops nil notifiers and returns Nop when none remain
func NewMulti(notifiers ...domain.Notifier) domain.Notifier {
	multi := make(Multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			multi = append(multi, n)
		}
	}

	switch len(multi) {
	case 0:
		return Nop{}
	case 1:
		return multi[0]
	default:
		return multi
	}
}

// Show forwards message to every notifier
func (m Multi) Show(message string) {
	for _, n := range m {
		n.Show(message)
	}
}

var (
	_ domain.Notifier = Nop{}
	_ domain.Notifier = (*LogNotifier)(nil)
	_ domain.Notifier = Multi(nil)
)
