// Package tcellinput turns tcell key events into key events.
package tcellinput

import (
	"fmt"
	"unicode"

	tcell "github.com/gdamore/tcell/v2"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	input "github.com/inference-gateway/envkeys/internal/input"
	keys "github.com/inference-gateway/envkeys/internal/keys"
)

var namedKeys = map[tcell.Key]string{
	tcell.KeyBackspace:  keys.KeyBackspace,
	tcell.KeyBackspace2: keys.KeyBackspace,
	tcell.KeyEnter:      keys.KeyEnter,
	tcell.KeyTab:        keys.KeyTab,
	tcell.KeyEscape:     keys.KeyEscape,
	tcell.KeyDelete:     keys.KeyDelete,
	tcell.KeyInsert:     keys.KeyInsert,
	tcell.KeyHome:       keys.KeyHome,
	tcell.KeyEnd:        keys.KeyEnd,
	tcell.KeyPgUp:       keys.KeyPageUp,
	tcell.KeyPgDn:       keys.KeyPageDown,
	tcell.KeyUp:         keys.KeyArrowUp,
	tcell.KeyDown:       keys.KeyArrowDown,
	tcell.KeyLeft:       keys.KeyArrowLeft,
	tcell.KeyRight:      keys.KeyArrowRight,
}

// Convert translates ev into a key press. Keys with no key event name
// report false.
func Convert(ev *tcell.EventKey, surface domain.Surface) (*domain.KeyPress, bool) {
	if ev == nil {
		return nil, false
	}

	mod := ev.Modifiers()
	press := &domain.KeyPress{
		CtrlKey:  mod&tcell.ModCtrl != 0,
		AltKey:   mod&tcell.ModAlt != 0,
		ShiftKey: mod&tcell.ModShift != 0,
		MetaKey:  mod&tcell.ModMeta != 0,
		Origin:   surface,
	}

	key := ev.Key()
	switch {
	case key == tcell.KeyRune:
		r := ev.Rune()
		if !unicode.IsPrint(r) {
			return nil, false
		}
		press.Name = string(r)
		// Shifted characters arrive without ModShift
		if unicode.IsUpper(r) {
			press.ShiftKey = true
		}

	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		press.CtrlKey = true
		press.Name = string(rune('a' + int(key-tcell.KeyCtrlA)))

	case key == tcell.KeyBacktab:
		press.ShiftKey = true
		press.Name = keys.KeyTab

	case namedKeys[key] != "":
		press.Name = namedKeys[key]

	case key >= tcell.KeyF1 && key <= tcell.KeyF64:
		press.Name = fmt.Sprintf("F%d", int(key-tcell.KeyF1)+1)

	case key <= tcell.KeyUS && press.CtrlKey && unicode.IsPrint(ev.Rune()):
		// Other control characters carry the typed character as the rune
		press.Name = string(unicode.ToLower(ev.Rune()))

	default:
		return nil, false
	}

	return press, true
}

// Source is an InputSource fed by a tcell poll loop
type Source struct {
	*input.Hub
}

var _ domain.InputSource = (*Source)(nil)

// NewSource creates a source with no subscribers
func NewSource() *Source {
	return &Source{Hub: input.NewHub()}
}

// Feed converts ev and delivers it to every subscriber. It returns nil when
// ev is not a key press.
func (s *Source) Feed(ev *tcell.EventKey, surface domain.Surface) *domain.KeyPress {
	press, ok := Convert(ev, surface)
	if !ok {
		return nil
	}

	s.Dispatch(press)
	return press
}
