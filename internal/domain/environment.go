package domain

import "time"

// Action is the work bound to a shortcut. Arguments, if any, are captured
// when the action is built.
type Action func() error

// BindArgs captures a fixed argument list for fn
func BindArgs(fn func(args ...any) error, args ...any) Action {
	if fn == nil {
		return nil
	}
	bound := make([]any, len(args))
	copy(bound, args)
	return func() error {
		return fn(bound...)
	}
}

// Shortcut is a key combination bound to an action inside one environment
type Shortcut struct {
	Spec   string
	Token  string
	Action Action
}

// Environment is a named, independently activatable set of shortcuts
type Environment struct {
	Name      string
	Tag       string
	Shortcuts []Shortcut
	IsActive  bool
}

// Clone returns a copy whose shortcut slice can be modified freely
func (e *Environment) Clone() Environment {
	shortcuts := make([]Shortcut, len(e.Shortcuts))
	copy(shortcuts, e.Shortcuts)
	return Environment{
		Name:      e.Name,
		Tag:       e.Tag,
		Shortcuts: shortcuts,
		IsActive:  e.IsActive,
	}
}

// Notifier shows a short, user-visible message. Implementations must not block.
//
//counterfeiter:generate . Notifier
type Notifier interface {
	Show(message string)
}

// ActivationListener is told about every effective environment switch
type ActivationListener interface {
	OnEnvironmentActivated(previous, current string)
}

// HotkeyObserver is told about every shortcut invocation. err is nil on success.
type HotkeyObserver interface {
	OnHotkeyInvoked(environment string, shortcut Shortcut, err error)
}

// JournalKind classifies activity journal entries
type JournalKind string

const (
	JournalActivation  JournalKind = "activation"
	JournalHotkey      JournalKind = "hotkey"
	JournalHotkeyError JournalKind = "hotkey_error"
)

// JournalEntry is one recorded activity event
type JournalEntry struct {
	ID          string      `json:"id"`
	Kind        JournalKind `json:"kind"`
	Environment string      `json:"environment"`
	Token       string      `json:"token,omitempty"`
	Message     string      `json:"message,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}
