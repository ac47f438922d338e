package keys

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	domain "github.com/inference-gateway/envkeys/internal/domain"
)

// Separator joins the parts of a key token
const Separator = "+"

// Canonical modifier names, in token order
const (
	ModAlt     = "Alt"
	ModControl = "Control"
	ModMeta    = "Meta"
	ModShift   = "Shift"
)

var modifierAliases = map[string]string{
	"ctrl":    ModControl,
	"control": ModControl,
	"alt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
}

// IsModifier reports whether name is a recognized modifier, in any case
func IsModifier(name string) bool {
	_, ok := modifierAliases[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// CanonicalModifier maps a modifier alias to its canonical name, or "" when
// name is not a modifier
func CanonicalModifier(name string) string {
	return modifierAliases[strings.ToLower(strings.TrimSpace(name))]
}

// NormalizeSpec converts a user-written shortcut such as "ctrl+shift+a",
// "cmd+k" or "F1" into its canonical token. The empty string means spec
// is not a usable combination.
func NormalizeSpec(spec string) string {
	if strings.TrimSpace(spec) == "" {
		return ""
	}

	parts := strings.Split(strings.ToLower(spec), Separator)
	modifiers := make([]string, 0, len(parts))
	mainKey := ""

	for i, part := range parts {
		part = strings.TrimSpace(part)
		parts[i] = part

		// An empty segment after the main key counts as a second main key
		if part == "" {
			if mainKey != "" {
				return ""
			}
			continue
		}

		if mod := CanonicalModifier(part); mod != "" {
			modifiers = append(modifiers, mod)
			continue
		}

		if mainKey != "" {
			return ""
		}
		mainKey = formatMainKey(part)
	}

	if mainKey == "" {
		if len(modifiers) == 0 || len(parts) == 1 {
			return ""
		}
		// A spec made only of modifiers keeps its last segment as the main
		// key, so "ctrl+shift" becomes "Control+Shift+Shift".
		mainKey = capitalize(parts[len(parts)-1])
		if mainKey == "" {
			return ""
		}
	}

	return join(modifiers, mainKey)
}

// NormalizeEvent converts a live key press into its canonical token. A bare
// modifier press yields the empty token.
func NormalizeEvent(ev domain.KeyEvent) string {
	if ev == nil {
		return ""
	}

	modifiers := make([]string, 0, 4)
	if ev.Ctrl() {
		modifiers = append(modifiers, ModControl)
	}
	if ev.Alt() {
		modifiers = append(modifiers, ModAlt)
	}
	if ev.Shift() {
		modifiers = append(modifiers, ModShift)
	}
	if ev.Meta() {
		modifiers = append(modifiers, ModMeta)
	}

	key := ev.Key()
	if key == "" || IsModifier(key) {
		return ""
	}

	return join(modifiers, formatMainKey(key))
}

// SplitToken returns the modifiers and main key of a canonical token
func SplitToken(token string) ([]string, string) {
	if token == "" {
		return nil, ""
	}
	// The main key may itself be "+", so only split the modifier prefix.
	idx := strings.LastIndex(token[:len(token)-1], Separator)
	if idx < 0 {
		return nil, token
	}
	return strings.Split(token[:idx], Separator), token[idx+1:]
}

func join(modifiers []string, mainKey string) string {
	slices.Sort(modifiers)
	modifiers = slices.Compact(modifiers)
	return strings.Join(append(modifiers, mainKey), Separator)
}

// formatMainKey applies the main-key casing rules: single characters and
// function keys are uppercased, names become "Enter", "Arrowup", ...
func formatMainKey(key string) string {
	if utf8.RuneCountInString(key) == 1 {
		return strings.ToUpper(key)
	}
	return capitalize(key)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	if IsFunctionKey(s) {
		return strings.ToUpper(s)
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

// IsFunctionKey reports whether name looks like "F1", "f12", ...
func IsFunctionKey(name string) bool {
	if len(name) < 2 || (name[0] != 'f' && name[0] != 'F') {
		return false
	}
	for _, r := range name[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
