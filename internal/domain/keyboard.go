package domain

// Surface identifies where a key press originated
type Surface int

const (
	// SurfaceDocument is any non-editable area of the host
	SurfaceDocument Surface = iota
	// SurfaceTextEntry is an input-capable element (prompt, text field)
	SurfaceTextEntry
)

func (s Surface) String() string {
	switch s {
	case SurfaceDocument:
		return "document"
	case SurfaceTextEntry:
		return "text_entry"
	default:
		return "unknown"
	}
}

// KeyEvent is a single key-press notification delivered by an input source
type KeyEvent interface {
	Ctrl() bool
	Alt() bool
	Shift() bool
	Meta() bool

	// Key identifies the pressed key: a single character, or a name such as
	// "Backspace", "Enter", "ArrowUp", "F1", "Control".
	Key() string

	Surface() Surface

	PreventDefault()
	StopPropagation()
}

// KeyHandler consumes key events
type KeyHandler func(ev KeyEvent)

// InputSource delivers key events to a subscribed handler, one at a time
//
//counterfeiter:generate . InputSource
type InputSource interface {
	Subscribe(handler KeyHandler) (unsubscribe func())
}

// KeyPress is the KeyEvent implementation shared by the input sources
type KeyPress struct {
	CtrlKey  bool
	AltKey   bool
	ShiftKey bool
	MetaKey  bool
	Name     string
	Origin   Surface

	defaultPrevented   bool
	propagationStopped bool
}

// Compile-time assertion that KeyPress implements KeyEvent
var _ KeyEvent = (*KeyPress)(nil)

func (k *KeyPress) Ctrl() bool       { return k.CtrlKey }
func (k *KeyPress) Alt() bool        { return k.AltKey }
func (k *KeyPress) Shift() bool      { return k.ShiftKey }
func (k *KeyPress) Meta() bool       { return k.MetaKey }
func (k *KeyPress) Key() string      { return k.Name }
func (k *KeyPress) Surface() Surface { return k.Origin }
func (k *KeyPress) PreventDefault()  { k.defaultPrevented = true }
func (k *KeyPress) StopPropagation() { k.propagationStopped = true }

// DefaultPrevented reports whether a handler claimed the key press
func (k *KeyPress) DefaultPrevented() bool { return k.defaultPrevented }

// PropagationStopped reports whether the key press must not reach other handlers
func (k *KeyPress) PropagationStopped() bool { return k.propagationStopped }

// Handled reports whether the key press was consumed by a hotkey
func (k *KeyPress) Handled() bool {
	return k.defaultPrevented || k.propagationStopped
}
