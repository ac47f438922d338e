//go:build !darwin || test

package desktop

import (
	"fmt"
	"os"

	clipboard "github.com/atotto/clipboard"
)

type systemClipboard struct{}

func (systemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func newSystemKeyboard() Keyboard {
	if X11Available() {
		return NewX11Keyboard(os.Getenv("DISPLAY"))
	}
	return unavailableKeyboard{}
}

type unavailableKeyboard struct{}

func (unavailableKeyboard) TypeText(string) error  { return ErrUnavailable }
func (unavailableKeyboard) SendCombo(string) error { return ErrUnavailable }
