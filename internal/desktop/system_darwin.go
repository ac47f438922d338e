//go:build darwin && !test

package desktop

import (
	"fmt"
	"sync"

	robotgo "github.com/go-vgo/robotgo"
	clipboard "golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

type systemClipboard struct{}

func (systemClipboard) WriteText(text string) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, clipboardErr)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

type robotgoKeyboard struct{}

func newSystemKeyboard() Keyboard {
	return robotgoKeyboard{}
}

func (robotgoKeyboard) TypeText(text string) error {
	robotgo.Type(text)
	return nil
}

func (robotgoKeyboard) SendCombo(token string) error {
	mainKey, mods, ok := robotgoCombo(token)
	if !ok {
		return fmt.Errorf("cannot send %q: no key for it", token)
	}

	args := make([]any, 0, len(mods))
	for _, mod := range mods {
		args = append(args, mod)
	}
	return robotgo.KeyTap(mainKey, args...)
}
