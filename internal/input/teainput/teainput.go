// Package teainput turns bubbletea key messages into key events.
package teainput

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	input "github.com/inference-gateway/envkeys/internal/input"
	keys "github.com/inference-gateway/envkeys/internal/keys"
)

// namedKeys maps bubbletea key names to key event names
var namedKeys = map[string]string{
	"backspace": keys.KeyBackspace,
	"enter":     keys.KeyEnter,
	"tab":       keys.KeyTab,
	"esc":       keys.KeyEscape,
	"delete":    keys.KeyDelete,
	"insert":    keys.KeyInsert,
	"home":      keys.KeyHome,
	"end":       keys.KeyEnd,
	"pgup":      keys.KeyPageUp,
	"pgdown":    keys.KeyPageDown,
	"up":        keys.KeyArrowUp,
	"down":      keys.KeyArrowDown,
	"left":      keys.KeyArrowLeft,
	"right":     keys.KeyArrowRight,
}

var modifierPrefixes = []string{"alt+", "ctrl+", "shift+"}

// Convert translates msg into a key press. Pasted text and multi-rune
// messages are not key presses and report false.
func Convert(msg tea.KeyMsg, surface domain.Surface) (*domain.KeyPress, bool) {
	press := &domain.KeyPress{
		AltKey: msg.Alt,
		Origin: surface,
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste || len(msg.Runes) != 1 {
			return nil, false
		}
		r := msg.Runes[0]
		press.Name = string(r)
		press.ShiftKey = unicode.IsUpper(r)
		return press, true

	case tea.KeySpace:
		press.Name = " "
		return press, true
	}

	name := msg.String()
	for {
		trimmed := false
		for _, prefix := range modifierPrefixes {
			if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
				continue
			}
			switch prefix {
			case "alt+":
				press.AltKey = true
			case "ctrl+":
				press.CtrlKey = true
			case "shift+":
				press.ShiftKey = true
			}
			name = name[len(prefix):]
			trimmed = true
		}
		if !trimmed {
			break
		}
	}

	switch {
	case name == "":
		return nil, false
	case namedKeys[name] != "":
		press.Name = namedKeys[name]
	case keys.IsFunctionKey(name):
		press.Name = strings.ToUpper(name)
	case utf8.RuneCountInString(name) == 1:
		press.Name = name
	default:
		return nil, false
	}

	return press, true
}

// Source is an InputSource fed by a bubbletea program's Update loop
type Source struct {
	*input.Hub
}

var _ domain.InputSource = (*Source)(nil)

// NewSource creates a source with no subscribers
func NewSource() *Source {
	return &Source{Hub: input.NewHub()}
}

// Feed converts msg and delivers it to every subscriber. It returns nil
// when msg is not a key press.
func (s *Source) Feed(msg tea.KeyMsg, surface domain.Surface) *domain.KeyPress {
	press, ok := Convert(msg, surface)
	if !ok {
		return nil
	}

	s.Dispatch(press)
	return press
}
