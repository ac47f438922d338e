// Package desktop reaches outside the terminal: it writes to the system
// clipboard and types text or key combinations into the focused window.
package desktop

import "errors"

// ErrUnavailable is returned when the build or the session has no backend
// for the requested operation
var ErrUnavailable = errors.New("desktop backend not available")

// Clipboard copies text to the system clipboard
type Clipboard interface {
	WriteText(text string) error
}

// Keyboard synthesizes key presses in the focused window
type Keyboard interface {
	TypeText(text string) error

	// SendCombo presses a canonical token such as "Control+Shift+T"
	SendCombo(token string) error
}

// SystemClipboard returns the clipboard backend compiled into this build
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

// SystemKeyboard returns the keyboard backend compiled into this build
func SystemKeyboard() Keyboard {
	return newSystemKeyboard()
}
