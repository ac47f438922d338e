package desktop

import (
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	xgb "github.com/BurntSushi/xgb"
	xproto "github.com/BurntSushi/xgb/xproto"
	xtest "github.com/BurntSushi/xgb/xtest"
	xgbutil "github.com/BurntSushi/xgbutil"
	keybind "github.com/BurntSushi/xgbutil/keybind"

	keys "github.com/inference-gateway/envkeys/internal/keys"
	logger "github.com/inference-gateway/envkeys/internal/logger"
)

// KeyDelay is the pause between synthesized key events
const KeyDelay = 5 * time.Millisecond

// X11Available reports whether an X11 session without Wayland is reachable
func X11Available() bool {
	return os.Getenv("DISPLAY") != "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// X11Keyboard drives the focused X11 window through the XTEST extension.
// The display connection is opened on first use.
type X11Keyboard struct {
	display string
	delay   time.Duration

	once    sync.Once
	initErr error
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	root    xproto.Window
}

// NewX11Keyboard returns a keyboard for display, e.g. ":0"
func NewX11Keyboard(display string) *X11Keyboard {
	return &X11Keyboard{display: display, delay: KeyDelay}
}

func (k *X11Keyboard) connect() error {
	k.once.Do(func() {
		oldStderr := os.Stderr
		devNull, devErr := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if devErr == nil {
			os.Stderr = devNull
		}

		xu, err := xgbutil.NewConnDisplay(k.display)

		if devErr == nil {
			os.Stderr = oldStderr
			_ = devNull.Close()
		}

		if err != nil {
			k.initErr = fmt.Errorf("failed to connect to X11 display %s: %w", k.display, err)
			return
		}
		if err := xtest.Init(xu.Conn()); err != nil {
			k.initErr = fmt.Errorf("failed to initialize XTEST extension: %w", err)
			return
		}

		keybind.Initialize(xu)
		k.xu = xu
		k.conn = xu.Conn()
		k.root = xproto.Setup(k.conn).DefaultScreen(k.conn).Root
	})
	return k.initErr
}

func (k *X11Keyboard) keycode(name string) (xproto.Keycode, bool) {
	keycodes := keybind.StrToKeycodes(k.xu, name)
	if len(keycodes) == 0 {
		return 0, false
	}
	return keycodes[0], true
}

// keyEvent is one synthesized press or release
type keyEvent struct {
	eventType byte
	keycode   xproto.Keycode
}

// comboEvents presses mods in order, taps main and releases mods in reverse
func comboEvents(mods []xproto.Keycode, main xproto.Keycode) []keyEvent {
	events := make([]keyEvent, 0, 2*len(mods)+2)
	for _, mod := range mods {
		events = append(events, keyEvent{xproto.KeyPress, mod})
	}
	events = append(events, keyEvent{xproto.KeyPress, main}, keyEvent{xproto.KeyRelease, main})
	for i := len(mods) - 1; i >= 0; i-- {
		events = append(events, keyEvent{xproto.KeyRelease, mods[i]})
	}
	return events
}

// playEvents sends events in order. On the first failure it releases every
// key still held and returns the error.
func playEvents(events []keyEvent, send func(keyEvent) error) error {
	held := make([]xproto.Keycode, 0, len(events)/2)
	for _, ev := range events {
		if err := send(ev); err != nil {
			for i := len(held) - 1; i >= 0; i-- {
				if releaseErr := send(keyEvent{xproto.KeyRelease, held[i]}); releaseErr != nil {
					logger.Debug("failed to release key", "keycode", held[i], "error", releaseErr)
				}
			}
			return fmt.Errorf("failed to send key event: %w", err)
		}

		switch ev.eventType {
		case xproto.KeyPress:
			held = append(held, ev.keycode)
		case xproto.KeyRelease:
			if i := slices.Index(held, ev.keycode); i >= 0 {
				held = slices.Delete(held, i, i+1)
			}
		}
	}
	return nil
}

func (k *X11Keyboard) send(ev keyEvent) error {
	cookie := xtest.FakeInputChecked(k.conn, ev.eventType, byte(ev.keycode), 0, k.root, 0, 0, 0)
	if err := cookie.Check(); err != nil {
		return err
	}
	time.Sleep(k.delay)
	return nil
}

// TypeText types text one character at a time
func (k *X11Keyboard) TypeText(text string) error {
	if err := k.connect(); err != nil {
		return err
	}

	shift, hasShift := k.keycode(x11Modifiers[keys.ModShift])
	for _, char := range text {
		key := x11CharKey(char)
		keycode, ok := k.keycode(key.name)
		if !ok {
			logger.Debug("no keycode for character", "char", string(char), "keysym", key.name)
			continue
		}

		var mods []xproto.Keycode
		if key.needsShift && hasShift {
			mods = []xproto.Keycode{shift}
		}
		if err := playEvents(comboEvents(mods, keycode), k.send); err != nil {
			return fmt.Errorf("failed to type %q: %w", char, err)
		}
	}

	k.conn.Sync()
	return nil
}

// SendCombo holds the token's modifiers while tapping its main key
func (k *X11Keyboard) SendCombo(token string) error {
	mods, mainKey, ok := x11Combo(token)
	if !ok {
		return fmt.Errorf("cannot send %q: no X11 key for it", token)
	}
	if err := k.connect(); err != nil {
		return err
	}

	modKeycodes := make([]xproto.Keycode, 0, len(mods))
	for _, mod := range mods {
		keycode, ok := k.keycode(mod)
		if !ok {
			return fmt.Errorf("no keycode found for modifier: %s", mod)
		}
		modKeycodes = append(modKeycodes, keycode)
	}
	mainKeycode, ok := k.keycode(mainKey)
	if !ok {
		return fmt.Errorf("no keycode found for key: %s", mainKey)
	}

	if err := playEvents(comboEvents(modKeycodes, mainKeycode), k.send); err != nil {
		return fmt.Errorf("failed to send %s: %w", token, err)
	}

	k.conn.Sync()
	return nil
}
