package notify

import (
	beeep "github.com/gen2brain/beeep"
	truncate "github.com/muesli/reflow/truncate"
	zap "go.uber.org/zap"
)

// maxDesktopMessage caps the display width of a desktop notification body
const maxDesktopMessage = 100

// DesktopNotifier shows system notifications through the OS notification
// service
type DesktopNotifier struct {
	log  *zap.Logger
	send func(title, message, icon string) error
}

// NewDesktopNotifier creates a desktop notifier. Failures are logged at
// debug level and otherwise ignored.
func NewDesktopNotifier(log *zap.Logger) *DesktopNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &DesktopNotifier{
		log:  log,
		send: beeep.Notify,
	}
}

// Show sends message without waiting for the notification service
func (n *DesktopNotifier) Show(message string) {
	message = truncate.StringWithTail(message, maxDesktopMessage, "...")

	go func() {
		if err := n.send(AppName, message, ""); err != nil {
			n.log.Debug("desktop notification failed", zap.Error(err))
		}
	}()
}
