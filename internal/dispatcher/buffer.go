package dispatcher

// TextBuffer accumulates characters typed outside text-entry surfaces
type TextBuffer struct {
	runes []rune
}

// Push appends the characters of s, case preserved
func (b *TextBuffer) Push(s string) {
	b.runes = append(b.runes, []rune(s)...)
}

// Pop removes the last character. Popping an empty buffer is a no-op.
func (b *TextBuffer) Pop() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

// Reset empties the buffer
func (b *TextBuffer) Reset() {
	b.runes = b.runes[:0]
}

// Len returns the number of buffered characters
func (b *TextBuffer) Len() int {
	return len(b.runes)
}

// String returns the buffered characters
func (b *TextBuffer) String() string {
	return string(b.runes)
}
