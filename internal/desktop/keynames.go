package desktop

import (
	"strings"
	"unicode"
	"unicode/utf8"

	keys "github.com/inference-gateway/envkeys/internal/keys"
)

// X11 keysym names
var (
	x11Modifiers = map[string]string{
		keys.ModAlt:     "Alt_L",
		keys.ModControl: "Control_L",
		keys.ModMeta:    "Super_L",
		keys.ModShift:   "Shift_L",
	}

	x11NamedKeys = map[string]string{
		"Backspace":  "BackSpace",
		"Enter":      "Return",
		"Tab":        "Tab",
		"Escape":     "Escape",
		"Delete":     "Delete",
		"Insert":     "Insert",
		"Home":       "Home",
		"End":        "End",
		"Pageup":     "Prior",
		"Pagedown":   "Next",
		"Arrowup":    "Up",
		"Arrowdown":  "Down",
		"Arrowleft":  "Left",
		"Arrowright": "Right",
		" ":          "space",
	}

	x11ShiftChars = map[rune]string{
		'!': "exclam", '@': "at", '#': "numbersign", '$': "dollar",
		'%': "percent", '^': "asciicircum", '&': "ampersand", '*': "asterisk",
		'(': "parenleft", ')': "parenright", '_': "underscore", '+': "plus",
		'{': "braceleft", '}': "braceright", '|': "bar", ':': "colon",
		'"': "quotedbl", '<': "less", '>': "greater", '?': "question",
		'~': "asciitilde",
	}

	x11Punctuation = map[rune]string{
		'.': "period", ',': "comma", ';': "semicolon", '\'': "apostrophe",
		'/': "slash", '\\': "backslash", '-': "minus", '=': "equal",
		'[': "bracketleft", ']': "bracketright", '`': "grave",
	}
)

// x11Key is one keysym to press, with or without shift
type x11Key struct {
	name       string
	needsShift bool
}

// x11CharKey maps a typed character to the keysym that produces it
func x11CharKey(char rune) x11Key {
	switch {
	case char >= 'A' && char <= 'Z':
		return x11Key{name: strings.ToLower(string(char)), needsShift: true}
	case x11ShiftChars[char] != "":
		return x11Key{name: x11ShiftChars[char], needsShift: true}
	case x11Punctuation[char] != "":
		return x11Key{name: x11Punctuation[char]}
	case char == '\n':
		return x11Key{name: "Return"}
	case char == '\t':
		return x11Key{name: "Tab"}
	case char == ' ':
		return x11Key{name: "space"}
	default:
		return x11Key{name: string(char)}
	}
}

// x11Combo converts a canonical token into modifier keysyms and a main keysym
func x11Combo(token string) ([]string, string, bool) {
	mods, mainKey := keys.SplitToken(token)
	if mainKey == "" {
		return nil, "", false
	}

	names := make([]string, 0, len(mods))
	for _, mod := range mods {
		name, ok := x11Modifiers[mod]
		if !ok {
			return nil, "", false
		}
		names = append(names, name)
	}

	if named, ok := x11NamedKeys[mainKey]; ok {
		return names, named, true
	}
	if keys.IsFunctionKey(mainKey) {
		return names, mainKey, true
	}
	if utf8.RuneCountInString(mainKey) == 1 {
		r, _ := utf8.DecodeRuneInString(mainKey)
		if unicode.IsLetter(r) {
			return names, strings.ToLower(mainKey), true
		}
		return names, x11CharKey(r).name, true
	}
	return nil, "", false
}

var robotgoModifiers = map[string]string{
	keys.ModAlt:     "alt",
	keys.ModControl: "ctrl",
	keys.ModMeta:    "cmd",
	keys.ModShift:   "shift",
}

var robotgoNamedKeys = map[string]string{
	"Backspace":  "backspace",
	"Enter":      "enter",
	"Tab":        "tab",
	"Escape":     "esc",
	"Delete":     "delete",
	"Insert":     "insert",
	"Home":       "home",
	"End":        "end",
	"Pageup":     "pageup",
	"Pagedown":   "pagedown",
	"Arrowup":    "up",
	"Arrowdown":  "down",
	"Arrowleft":  "left",
	"Arrowright": "right",
	" ":          "space",
}

// robotgoCombo converts a canonical token into robotgo key names
func robotgoCombo(token string) (string, []string, bool) {
	mods, mainKey := keys.SplitToken(token)
	if mainKey == "" {
		return "", nil, false
	}

	names := make([]string, 0, len(mods))
	for _, mod := range mods {
		name, ok := robotgoModifiers[mod]
		if !ok {
			return "", nil, false
		}
		names = append(names, name)
	}

	if named, ok := robotgoNamedKeys[mainKey]; ok {
		return named, names, true
	}
	if keys.IsFunctionKey(mainKey) || utf8.RuneCountInString(mainKey) == 1 {
		return strings.ToLower(mainKey), names, true
	}
	return "", nil, false
}
