package keys

import (
	"slices"
	"unicode"
	"unicode/utf8"
)

// Key names emitted by the input sources for non-character keys
const (
	KeyBackspace  = "Backspace"
	KeyEnter      = "Enter"
	KeyTab        = "Tab"
	KeyEscape     = "Escape"
	KeyDelete     = "Delete"
	KeyInsert     = "Insert"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyPageUp     = "PageUp"
	KeyPageDown   = "PageDown"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// NamedKeys lists the non-character main keys in their token form
var NamedKeys = []string{
	"Backspace", "Enter", "Tab", "Escape", "Delete", "Insert",
	"Home", "End", "Pageup", "Pagedown",
	"Arrowup", "Arrowdown", "Arrowleft", "Arrowright",
}

// IsPrintableCharacter checks if a key name is a single printable character
func IsPrintableCharacter(key string) bool {
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return unicode.IsPrint(r)
}

// IsBackspace checks if a key name is the backspace key
func IsBackspace(key string) bool {
	return key == KeyBackspace
}

// IsKnownMainKey checks if the main key of a token can be produced by the
// bundled input sources
func IsKnownMainKey(mainKey string) bool {
	if IsPrintableCharacter(mainKey) || IsFunctionKey(mainKey) {
		return true
	}
	return slices.Contains(NamedKeys, mainKey)
}
