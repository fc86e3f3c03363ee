// Package textbuf implements the single-line input buffer used by the composer.
//
// The buffer tracks the insertion point twice: as a byte offset into the UTF-8
// text and as a count of characters (Unicode scalar values) before it. Every
// mutation keeps both in sync, and the byte offset never leaves a code-point
// boundary.
package textbuf

import "unicode/utf8"

// Buffer is a UTF-8 text buffer with a dual byte/character cursor.
// The zero value is an empty buffer ready for use.
type Buffer struct {
	text    []byte
	bytePos int
	charPos int
}

// New returns a buffer holding text with the cursor at the end.
func New(text string) *Buffer {
	b := &Buffer{}
	for _, r := range text {
		b.InsertRune(r)
	}
	return b
}

// Text returns the buffer contents.
func (b *Buffer) Text() string { return string(b.text) }

// BytePos returns the insertion point in bytes.
func (b *Buffer) BytePos() int { return b.bytePos }

// CharPos returns the insertion point in characters.
func (b *Buffer) CharPos() int { return b.charPos }

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int { return utf8.RuneCount(b.text) }

// Empty reports whether the buffer holds no text.
func (b *Buffer) Empty() bool { return len(b.text) == 0 }

// InsertRune inserts r at the cursor and advances past it.
// Invalid runes are stored as utf8.RuneError so the text stays valid UTF-8.
func (b *Buffer) InsertRune(r rune) {
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)

	b.text = append(b.text, enc[:n]...)
	copy(b.text[b.bytePos+n:], b.text[b.bytePos:len(b.text)-n])
	copy(b.text[b.bytePos:], enc[:n])

	b.bytePos += n
	b.charPos++
}

// DeleteBeforeCursor removes the character immediately before the cursor.
// It is a no-op at the start of the buffer.
func (b *Buffer) DeleteBeforeCursor() {
	if b.bytePos == 0 {
		return
	}
	start := b.prevBoundary()
	b.text = append(b.text[:start], b.text[b.bytePos:]...)
	b.bytePos = start
	b.charPos--
}

// MoveLeft moves the cursor one character left. No-op at the start.
func (b *Buffer) MoveLeft() {
	if b.bytePos == 0 {
		return
	}
	b.bytePos = b.prevBoundary()
	b.charPos--
}

// MoveRight moves the cursor one character right. No-op at the end.
func (b *Buffer) MoveRight() {
	if b.bytePos >= len(b.text) {
		return
	}
	b.bytePos = b.nextBoundary()
	b.charPos++
}

// MoveHome moves the cursor to the start of the buffer.
func (b *Buffer) MoveHome() {
	b.bytePos = 0
	b.charPos = 0
}

// MoveEnd moves the cursor past the last character.
func (b *Buffer) MoveEnd() {
	b.bytePos = len(b.text)
	b.charPos = utf8.RuneCount(b.text)
}

// Clear empties the buffer and resets both positions.
func (b *Buffer) Clear() {
	b.text = b.text[:0]
	b.bytePos = 0
	b.charPos = 0
}

// prevBoundary scans back from bytePos to the start of the previous code
// point. The scan looks at no more than utf8.UTFMax bytes; if no start byte is
// found in that window (corrupt text) it steps back a single byte.
func (b *Buffer) prevBoundary() int {
	limit := b.bytePos - utf8.UTFMax
	if limit < 0 {
		limit = 0
	}
	for i := b.bytePos - 1; i >= limit; i-- {
		if utf8.RuneStart(b.text[i]) {
			return i
		}
	}
	return b.bytePos - 1
}

// nextBoundary returns the start of the code point after the cursor.
// DecodeRune reports a width of 1 for invalid bytes, so the step is always
// between 1 and utf8.UTFMax.
func (b *Buffer) nextBoundary() int {
	_, size := utf8.DecodeRune(b.text[b.bytePos:])
	if size < 1 {
		size = 1
	}
	return b.bytePos + size
}
